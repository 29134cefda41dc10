// -----------------------------------------------------------------------
// Ingest Service - Coordinates the load -> chunk -> embed -> index pipeline
// -----------------------------------------------------------------------

package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// Service rebuilds per-domain vector indexes from source documents.
// Builds run asynchronously; at most one build per domain is in flight
// at a time, tracked in the running set.
type Service struct {
	loader  *Loader
	chunker *Chunker
	index   interfaces.VectorIndex
	logger  arbor.ILogger

	mu      sync.Mutex
	running map[string]bool
}

// Compile-time interface assertion
var _ interfaces.IngestService = (*Service)(nil)

func NewService(loader *Loader, chunker *Chunker, index interfaces.VectorIndex, logger arbor.ILogger) *Service {
	return &Service{
		loader:  loader,
		chunker: chunker,
		index:   index,
		logger:  logger,
		running: make(map[string]bool),
	}
}

// Trigger starts an asynchronous ingestion for one domain, or fans out
// to every domain when domain is "all". Each domain is claimed before
// its goroutine starts so a second trigger observes ErrIngestRunning
// immediately.
func (s *Service) Trigger(domain string) error {
	domains := []string{domain}
	if domain == "all" {
		domains = models.Domains
	}

	s.mu.Lock()
	for _, d := range domains {
		if s.running[d] {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", interfaces.ErrIngestRunning, d)
		}
	}
	for _, d := range domains {
		s.running[d] = true
	}
	s.mu.Unlock()

	for _, d := range domains {
		dom := d
		common.SafeGo(s.logger, "ingest-"+dom, func() {
			defer s.release(dom)
			s.ingestDomain(dom)
		})
	}

	return nil
}

// Running reports whether a build is in flight for the domain.
func (s *Service) Running(domain string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running[domain]
}

// Upload stores a source file under the domain's documents directory.
// The file takes effect on the next ingestion for that domain.
func (s *Service) Upload(domain, filename string, content io.Reader) error {
	if !models.ValidDomain(domain) {
		return fmt.Errorf("%w: %s", interfaces.ErrBotNotFound, domain)
	}

	filename = filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" && ext != ".txt" {
		return fmt.Errorf("unsupported file type %q: only .pdf and .txt are accepted", ext)
	}

	dir := s.loader.DomainDir(domain)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create documents directory: %w", err)
	}

	dest := filepath.Join(dir, filename)
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", dest, err)
	}
	defer file.Close()

	written, err := io.Copy(file, content)
	if err != nil {
		os.Remove(dest)
		return fmt.Errorf("failed to write file %s: %w", dest, err)
	}

	s.logger.Info().
		Str("domain", domain).
		Str("file", filename).
		Int64("bytes", written).
		Msg("Stored uploaded document")

	return nil
}

func (s *Service) release(domain string) {
	s.mu.Lock()
	delete(s.running, domain)
	s.mu.Unlock()
}

// ingestDomain runs one full rebuild. Errors are logged, not returned;
// the previous index stays live when anything fails.
func (s *Service) ingestDomain(domain string) {
	start := time.Now()
	ctx := context.Background()

	s.logger.Info().Str("domain", domain).Msg("Starting ingestion")

	docs, err := s.loader.Load(ctx, domain)
	if err != nil {
		s.logger.Error().Err(err).Str("domain", domain).Msg("Ingestion failed while loading documents")
		return
	}
	if len(docs) == 0 {
		s.logger.Warn().Str("domain", domain).Msg("No documents to ingest, index left unchanged")
		return
	}

	var chunks []models.Chunk
	for _, doc := range docs {
		chunks = append(chunks, s.chunker.Chunk(doc)...)
	}

	s.logger.Info().
		Str("domain", domain).
		Int("documents", len(docs)).
		Int("chunks", len(chunks)).
		Msg("Chunked documents, building index")

	if err := s.index.Build(ctx, domain, chunks); err != nil {
		s.logger.Error().Err(err).Str("domain", domain).Msg("Ingestion failed while building index")
		return
	}

	s.logger.Info().
		Str("domain", domain).
		Int("chunks", len(chunks)).
		Str("duration", time.Since(start).Round(time.Millisecond).String()).
		Msg("Ingestion complete")
}
