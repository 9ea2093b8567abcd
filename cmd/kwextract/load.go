package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

// loadFile reads the text of a paragraph file. PDF and HTML files are converted
// to plain text, anything else is read as-is.
func loadFile(ctx context.Context, name string) (text string, err error) {
	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var loader documentloaders.Loader
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		fi, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("failed to stat file: %w", err)
		}
		loader = documentloaders.NewPDF(f, fi.Size())
	case ".html", ".htm":
		loader = documentloaders.NewHTML(f)
	default:
		loader = documentloaders.NewText(f)
	}

	docs, err := loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", filepath.Base(name), err)
	}
	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(doc.PageContent)
	}
	return strings.TrimSpace(sb.String()), nil
}
