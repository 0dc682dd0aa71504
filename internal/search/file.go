package search

import (
	"os"
	"sync"
	"time"

	"github.com/Aman-CERP/thesisdash/internal/errors"
	"github.com/Aman-CERP/thesisdash/internal/index"
	"github.com/Aman-CERP/thesisdash/internal/tokenize"
)

// IndexFile serves a Searcher for an index file on disk and reloads it
// when the file's modification time or size changes.
type IndexFile struct {
	path      string
	tokenizer *tokenize.Tokenizer
	cacheSize int

	mu       sync.Mutex
	modTime  time.Time
	size     int64
	searcher *Searcher
}

// OpenIndexFile prepares path for searching. The file is read lazily.
func OpenIndexFile(path string, tok *tokenize.Tokenizer, cacheSize int) *IndexFile {
	return &IndexFile{path: path, tokenizer: tok, cacheSize: cacheSize}
}

// Path returns the index file path.
func (f *IndexFile) Path() string {
	return f.path
}

// Searcher returns a Searcher over the current file contents.
func (f *IndexFile) Searcher() (*Searcher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeIndexNotFound, "no index at "+f.path, err).
				WithSuggestion("Run 'thesisdash index' to build it")
		}
		return nil, errors.New(errors.ErrCodeFileUnreadable, "cannot stat "+f.path, err)
	}

	if f.searcher != nil && info.ModTime().Equal(f.modTime) && info.Size() == f.size {
		return f.searcher, nil
	}

	idx, err := index.Read(f.path)
	if err != nil {
		return nil, err
	}

	if f.searcher == nil {
		f.searcher = New(idx, f.tokenizer, f.cacheSize)
	} else {
		f.searcher.Reload(idx)
	}
	f.modTime = info.ModTime()
	f.size = info.Size()
	return f.searcher, nil
}
