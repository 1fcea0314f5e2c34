// Package matrixgame solves two-player zero-sum normal-form games.
package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
)

// FictitiousPlay approximates a Nash equilibrium of the zero-sum game with
// the given payoff matrix, where payoffs[i][j] is the row player's payoff
// when they play i and the column player plays j.
//
// In each iteration both players best respond to the other's empirical
// play, except with probability mixingLambda they explore uniformly at random.
// The returned strategies are the empirical frequencies of play.
func FictitiousPlay(payoffs [][]float64, nIter int, mixingLambda float64, rng *rand.Rand) ([]float32, []float32) {
	if len(payoffs) == 0 || len(payoffs[0]) == 0 || nIter <= 0 {
		return nil, nil
	}

	logEvery := max(nIter/10, 1)
	p0PlayCounts := make([]int, len(payoffs))
	p1PlayCounts := make([]int, len(payoffs[0]))
	for i := 1; i <= nIter; i++ {
		var p0Selected int
		if rng.Float64() < mixingLambda {
			p0Selected = rng.Intn(len(p0PlayCounts))
		} else {
			p0Selected = getP0BestResponse(payoffs, p1PlayCounts, rng)
		}

		var p1Selected int
		if rng.Float64() < mixingLambda {
			p1Selected = rng.Intn(len(p1PlayCounts))
		} else {
			p1Selected = getP1BestResponse(payoffs, p0PlayCounts, rng)
		}
		p0PlayCounts[p0Selected]++
		p1PlayCounts[p1Selected]++

		if i%logEvery == 0 {
			glog.V(1).Infof("After %d iterations, player 0 weights: %v", i, normalize(p0PlayCounts))
			glog.V(1).Infof("After %d iterations, player 1 weights: %v", i, normalize(p1PlayCounts))
		}
	}

	return normalize(p0PlayCounts), normalize(p1PlayCounts)
}

func getP0BestResponse(payoffs [][]float64, p1PlayCounts []int, rng *rand.Rand) int {
	utilities := make([]float64, len(payoffs))
	for j, c := range p1PlayCounts {
		for i := range utilities {
			utilities[i] += float64(c) * payoffs[i][j]
		}
	}

	_, br := argMax(utilities, rng)
	return br
}

func getP1BestResponse(payoffs [][]float64, p0PlayCounts []int, rng *rand.Rand) int {
	utilities := make([]float64, len(payoffs[0]))
	for i, c := range p0PlayCounts {
		for j := range utilities {
			utilities[j] -= float64(c) * payoffs[i][j]
		}
	}

	_, br := argMax(utilities, rng)
	return br
}

func normalize(counts []int) []float32 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float32, len(counts))
	for i, v := range counts {
		result[i] = float32(v) / float32(total)
	}
	return result
}

// argMax returns the largest value and its index, breaking ties
// uniformly at random.
func argMax(vs []float64, rng *rand.Rand) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	nTies := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
			nTies = 1
		} else if v == best {
			nTies++
			if rng.Intn(nTies) == 0 {
				bestIdx = i
			}
		}
	}

	return best, bestIdx
}
