package docindex

import (
	"log"
	"sync"
	"sync/atomic"
)

// Library owns the process-wide document cache and the TF-IDF index built
// over it. Both are built together on first access behind a double-checked
// guard: at most one build happens under concurrent first use, and every
// read after that is lock-free. There is no invalidation; the corpus is
// assumed static for the process lifetime (Reset exists for tests).
type Library struct {
	dir         string
	maxFeatures int
	logger      *log.Logger

	mu      sync.Mutex
	built   atomic.Bool
	docs    []Document
	vec     *Vectorizer
	vectors [][]float64
}

// NewLibrary creates an unbuilt library over dir. Nothing is scanned until
// the first read.
func NewLibrary(dir string, maxFeatures int, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{
		dir:         dir,
		maxFeatures: maxFeatures,
		logger:      logger,
	}
}

func (l *Library) ensure() {
	if l.built.Load() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.built.Load() {
		return
	}

	l.docs = loadAllDocuments(l.dir, l.logger)
	if len(l.docs) > 0 {
		corpus := make([]string, len(l.docs))
		for i, d := range l.docs {
			corpus[i] = d.Content
		}
		l.vec = NewVectorizer(l.maxFeatures)
		l.vec.Fit(corpus)
		l.vectors = make([][]float64, len(corpus))
		for i, text := range corpus {
			l.vectors[i] = l.vec.Transform(text)
		}
		l.logger.Printf("[INFO] Document index built: %d documents, %d terms", len(l.docs), l.vec.VocabularySize())
	}

	l.built.Store(true)
}

// Documents returns the cached corpus, building it on first call. Repeated
// calls return the identical slice, not a rescan.
func (l *Library) Documents() []Document {
	l.ensure()
	return l.docs
}

// Index returns the fitted vectorizer and the per-document TF-IDF matrix.
// Both are nil when the corpus is empty.
func (l *Library) Index() (*Vectorizer, [][]float64) {
	l.ensure()
	return l.vec, l.vectors
}

// Reset drops the cache so the next read rebuilds. Intended for tests; the
// production corpus is static.
func (l *Library) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.built.Store(false)
	l.docs = nil
	l.vec = nil
	l.vectors = nil
}
