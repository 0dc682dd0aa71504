package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermFrequencies_RelativeCounts(t *testing.T) {
	tf, order := TermFrequencies([]string{"sepsis", "shock", "sepsis", "lactate"})

	assert.Equal(t, []string{"sepsis", "shock", "lactate"}, order)
	assert.Equal(t, 0.5, tf["sepsis"])
	assert.Equal(t, 0.25, tf["shock"])
	assert.Equal(t, 0.25, tf["lactate"])
}

func TestTermFrequencies_Empty(t *testing.T) {
	tf, order := TermFrequencies(nil)

	assert.Empty(t, tf)
	assert.Empty(t, order)
}

func TestNorm(t *testing.T) {
	tf, order := TermFrequencies([]string{"alpha", "beta", "alpha", "gamma"})

	assert.InDelta(t, math.Sqrt(0.25+0.0625+0.0625), Norm(tf, order), 1e-15)
	assert.Equal(t, 1.0, Norm(map[string]float64{}, nil))
}

func TestIDF(t *testing.T) {
	tests := []struct {
		name string
		df   int
		n    int
		want float64
	}{
		{name: "one of ten", df: 1, n: 10, want: math.Log(11.0/2.0) + 1.0},
		{name: "in every passage", df: 10, n: 10, want: 1.0},
		{name: "single passage corpus", df: 1, n: 1, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, IDF(tt.df, tt.n), 1e-12)
			assert.Greater(t, IDF(tt.df, tt.n), 0.0)
		})
	}

	assert.InDelta(t, 2.705, IDF(1, 10), 0.001)
}
