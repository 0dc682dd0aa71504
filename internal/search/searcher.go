// Package search ranks index passages against a free-text query.
//
// A query is tokenized with the index rules, turned into a relative term
// frequency vector, and compared to each passage by cosine similarity
// over idf-weighted vectors:
//
//	score(q, p) = Σ_t tf_q(t)·idf(t) · tf_p(t)·idf(t) / (‖tf_q‖ · norm_p)
//
// norm_p is the norm stored in the index; ‖tf_q‖ is computed the same
// way for the query. Terms absent from the idf table contribute nothing.
package search

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/thesisdash/internal/errors"
	"github.com/Aman-CERP/thesisdash/internal/index"
	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

// Default search configuration values.
const (
	DefaultLimit     = 5
	DefaultCacheSize = 256
)

// Result is one ranked passage.
type Result struct {
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
	ID      string  `json:"id"`
	File    string  `json:"file"`
	Section *string `json:"section"`
	Text    string  `json:"text"`
}

// Searcher scores queries against one loaded index.
// It is safe for concurrent use.
type Searcher struct {
	tokenizer *tokenize.Tokenizer

	mu    sync.RWMutex
	idx   *index.Index
	cache *lru.Cache[string, []Result]
}

// New creates a Searcher over idx. cacheSize <= 0 uses DefaultCacheSize.
func New(idx *index.Index, tok *tokenize.Tokenizer, cacheSize int) *Searcher {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New[string, []Result](cacheSize)
	return &Searcher{
		tokenizer: tok,
		idx:       idx,
		cache:     cache,
	}
}

// Reload swaps in a new index and drops cached results.
func (s *Searcher) Reload(idx *index.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = idx
	s.cache.Purge()
}

// Index returns the index currently in use.
func (s *Searcher) Index() *index.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Search returns up to limit passages with a positive score, best first.
// Equal scores keep document order. limit <= 0 uses DefaultLimit.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	tokens := s.tokenizer.Tokenize(query)
	if len(tokens) == 0 {
		return nil, errors.New(errors.ErrCodeQueryEmpty, "query has no searchable terms", nil).
			WithSuggestion("Use words of three or more letters that are not stopwords")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	key := strconv.Itoa(limit) + "\x00" + strings.Join(tokens, " ")
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	q := NewQuery(tokens)

	type scored struct {
		pos   int
		score float64
	}
	var hits []scored
	for i := range s.idx.Documents {
		if i%512 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		score := Cosine(q, &s.idx.Documents[i], s.idx.IDF)
		if score > 0 {
			hits = append(hits, scored{pos: i, score: score})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]Result, 0, len(hits))
	for rank, h := range hits {
		p := &s.idx.Documents[h.pos]
		results = append(results, Result{
			Rank:    rank + 1,
			Score:   h.score,
			ID:      p.ID,
			File:    p.File,
			Section: p.Section,
			Text:    p.Text,
		})
	}

	s.cache.Add(key, results)
	return results, nil
}

// Query is a tokenized query vector.
type Query struct {
	// Terms are the distinct terms in first-occurrence order.
	Terms []string
	TF    map[string]float64
	Norm  float64
}

// NewQuery builds the relative term frequency vector of tokens.
func NewQuery(tokens []string) Query {
	tf, order := index.TermFrequencies(tokens)
	return Query{Terms: order, TF: tf, Norm: index.Norm(tf, order)}
}

// Cosine scores one passage against q. Terms are summed in query order so
// equal inputs always produce bit-identical scores.
func Cosine(q Query, p *index.Passage, idf map[string]float64) float64 {
	if q.Norm == 0 || p.Norm == 0 {
		return 0
	}

	var dot float64
	for _, term := range q.Terms {
		pv, ok := p.TF[term]
		if !ok {
			continue
		}
		w, ok := idf[term]
		if !ok {
			continue
		}
		dot += (q.TF[term] * w) * (pv * w)
	}
	return dot / (q.Norm * p.Norm)
}
