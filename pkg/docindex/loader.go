package docindex

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one reference file from the support corpus.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Path    string `json:"path"`
}

var supportedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

// loadAllDocuments scans dir non-recursively for supported files. A file
// that fails extraction is logged and skipped; a partial corpus beats no
// corpus. A missing directory yields an empty corpus, not an error.
func loadAllDocuments(dir string, logger *log.Logger) []Document {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Printf("[WARN] Document directory unavailable: %v", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := extractText(path)
		if err != nil {
			logger.Printf("[WARN] Skipping document %s: %v", name, err)
			continue
		}
		docs = append(docs, Document{
			Title:   strings.TrimSuffix(name, filepath.Ext(name)),
			Content: content,
			Path:    path,
		})
	}

	logger.Printf("[INFO] Loaded %d documents from %s", len(docs), dir)
	return docs
}
