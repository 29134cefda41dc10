// -----------------------------------------------------------------------
// Document Loader - Walk a domain's source directory and load documents
// -----------------------------------------------------------------------

package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// Loader reads the source documents for a domain from disk. PDFs are
// loaded page by page; text files as a single document. Unreadable
// files are skipped with a warning rather than failing the whole run.
type Loader struct {
	root      string
	extractor interfaces.PDFExtractor
	logger    arbor.ILogger
}

func NewLoader(root string, extractor interfaces.PDFExtractor, logger arbor.ILogger) *Loader {
	return &Loader{
		root:      root,
		extractor: extractor,
		logger:    logger,
	}
}

// DomainDir returns the documents directory for a domain.
func (l *Loader) DomainDir(domain string) string {
	return filepath.Join(l.root, domain)
}

// Load returns all documents for a domain in deterministic (sorted
// filename) order. A missing domain directory is not an error; it just
// yields no documents.
func (l *Loader) Load(ctx context.Context, domain string) ([]models.Document, error) {
	dir := l.DomainDir(domain)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn().Str("domain", domain).Str("dir", dir).Msg("Documents directory does not exist")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read documents directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var docs []models.Document
	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path := filepath.Join(dir, name)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			pages, err := l.extractor.ExtractPages(ctx, path)
			if err != nil {
				l.logger.Warn().Err(err).Str("file", name).Str("domain", domain).Msg("Skipping unreadable PDF")
				continue
			}
			for _, page := range pages {
				if strings.TrimSpace(page.Text) == "" {
					continue
				}
				docs = append(docs, models.Document{
					Content: page.Text,
					Source:  name,
					Page:    page.PageNumber,
					Domain:  domain,
				})
			}

		case ".txt":
			content, err := os.ReadFile(path)
			if err != nil {
				l.logger.Warn().Err(err).Str("file", name).Str("domain", domain).Msg("Skipping unreadable text file")
				continue
			}
			if strings.TrimSpace(string(content)) == "" {
				continue
			}
			// Whole-file documents carry no page number.
			docs = append(docs, models.Document{
				Content: string(content),
				Source:  name,
				Domain:  domain,
			})

		default:
			l.logger.Debug().Str("file", name).Str("domain", domain).Msg("Ignoring unsupported file type")
		}
	}

	l.logger.Info().
		Str("domain", domain).
		Int("documents", len(docs)).
		Msg("Loaded source documents")

	return docs, nil
}
