package gamegraph

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

// LoadDescription reads a Description from the given file.
// The format is chosen by extension: .json or .gob, with an optional
// trailing .gz for gzip-compressed files.
func LoadDescription(filename string) (Description, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Description{}, err
	}
	defer f.Close()

	var r io.Reader = f
	name := filename
	if strings.HasSuffix(name, ".gz") {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return Description{}, errors.Wrapf(err, "reading %v", filename)
		}
		defer gzr.Close()

		r = gzr
		name = strings.TrimSuffix(name, ".gz")
	}

	d, err := DecodeDescription(r, filepath.Ext(name))
	if err != nil {
		return Description{}, errors.Wrapf(err, "reading %v", filename)
	}

	return d, nil
}

// SaveDescription writes d to the given file, using the same naming
// rules as LoadDescription.
func SaveDescription(filename string, d Description) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	name := filename
	var gzw *gzip.Writer
	if strings.HasSuffix(name, ".gz") {
		gzw = gzip.NewWriter(f)
		w = gzw
		name = strings.TrimSuffix(name, ".gz")
	}

	if err := EncodeDescription(w, filepath.Ext(name), d); err != nil {
		return errors.Wrapf(err, "writing %v", filename)
	}

	if gzw != nil {
		if err := gzw.Close(); err != nil {
			return errors.Wrapf(err, "writing %v", filename)
		}
	}

	return f.Close()
}

// DecodeDescription decodes a Description in the format given by
// ext (".json" or ".gob").
func DecodeDescription(r io.Reader, ext string) (Description, error) {
	var d Description
	switch ext {
	case ".json":
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return Description{}, errors.Wrap(err, "decoding json")
		}
	case ".gob":
		if err := gob.NewDecoder(r).Decode(&d); err != nil {
			return Description{}, errors.Wrap(err, "decoding gob")
		}
	default:
		return Description{}, fmt.Errorf("unsupported description format: %q", ext)
	}

	return d, nil
}

// EncodeDescription encodes d in the format given by ext.
func EncodeDescription(w io.Writer, ext string, d Description) error {
	switch ext {
	case ".json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&d)
	case ".gob":
		return gob.NewEncoder(w).Encode(&d)
	default:
		return fmt.Errorf("unsupported description format: %q", ext)
	}
}
