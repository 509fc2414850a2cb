// Package ingest loads resume documents from the local filesystem for batch
// processing.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/extract"
)

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// LoadFile reads a single document.
func LoadFile(path string) (extract.Document, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if ext == "" || !constants.IsAllowedExt(ext) {
		return extract.Document{}, fmt.Errorf("unsupported or missing extension: %q", ext)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return extract.Document{}, err
	}
	return extract.Document{Filename: filepath.Base(path), Content: content}, nil
}

// LoadDirectory reads every supported document directly under dir, in lexical
// filename order. Unsupported and hidden entries are skipped with a log line;
// an unreadable file is skipped the same way so one bad entry does not stop
// the batch from forming.
func LoadDirectory(dir string, logger *slog.Logger) ([]extract.Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []extract.Document
	for _, entry := range entries {
		if entry.IsDir() || IsHidden(entry.Name()) {
			continue
		}
		if !constants.IsAllowedExt(filepath.Ext(entry.Name())) {
			logger.Debug("skipping unsupported file", "name", entry.Name())
			continue
		}
		doc, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("skipping unreadable file", "name", entry.Name(), "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
