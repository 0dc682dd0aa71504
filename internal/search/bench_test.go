package search

import (
	"context"
	"strings"
	"testing"

	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

var benchVocabulary = []string{
	"delirium", "screening", "sedation", "ventilation", "mortality",
	"nurses", "protocol", "adherence", "cohort", "outcomes",
	"cognitive", "discharge", "intervention", "workload", "guidelines",
}

func benchTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		words := make([]string, 0, 12)
		for j := 0; j < 12; j++ {
			words = append(words, benchVocabulary[(i*7+j*3)%len(benchVocabulary)])
		}
		texts[i] = strings.Join(words, " ")
	}
	return texts
}

func BenchmarkCosine_1000Passages(b *testing.B) {
	idx := buildIndex(b, benchTexts(1000)...)
	q := NewQuery(tokenize.New().Tokenize("delirium screening protocol adherence"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range idx.Documents {
			_ = Cosine(q, &idx.Documents[j], idx.IDF)
		}
	}
}

func BenchmarkSearch_Cached(b *testing.B) {
	s := New(buildIndex(b, benchTexts(1000)...), tokenize.New(), 64)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Search(ctx, "sedation ventilation outcomes", 5); err != nil {
			b.Fatal(err)
		}
	}
}
