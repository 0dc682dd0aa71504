package index

import (
	"math"
)

// TermFrequencies counts each distinct term and divides by the token
// count. Terms are returned in first-occurrence order alongside the map.
func TermFrequencies(tokens []string) (map[string]float64, []string) {
	if len(tokens) == 0 {
		return map[string]float64{}, nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	total := float64(len(tokens))
	tf := make(map[string]float64, len(counts))
	for _, t := range order {
		tf[t] = float64(counts[t]) / total
	}
	return tf, order
}

// Norm returns the Euclidean norm of the tf values summed in order.
// A zero norm is floored to 1.0.
func Norm(tf map[string]float64, order []string) float64 {
	var sum float64
	for _, t := range order {
		v := tf[t]
		sum += v * v
	}
	n := math.Sqrt(sum)
	if n == 0 {
		return 1.0
	}
	return n
}

// IDF returns the smoothed inverse document frequency of a term seen in
// df of n passages: ln((n+1)/(df+1)) + 1.
func IDF(df, n int) float64 {
	return math.Log(float64(n+1)/float64(df+1)) + 1.0
}
