// -----------------------------------------------------------------------
// Vector Index Service - Per-domain persisted embedding collections
// Uses chromem-go for embedded vector storage
// -----------------------------------------------------------------------

package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"
	"github.com/ternarybob/arbor"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

const collectionName = "chunks"

// Service implements VectorIndex on chromem-go. Each domain gets its own
// persistent database at {root}/{domain}_index. Build writes to a staging
// directory and swaps it in on success, so a failed rebuild never clobbers
// the live collection and readers never see a half-written one.
type Service struct {
	root   string
	llm    interfaces.LLMService
	logger arbor.ILogger

	mu          sync.RWMutex
	collections map[string]*chromem.Collection
}

// Compile-time interface assertion
var _ interfaces.VectorIndex = (*Service)(nil)

func NewService(root string, llm interfaces.LLMService, logger arbor.ILogger) (*Service, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vector store root %s: %w", root, err)
	}

	s := &Service{
		root:        root,
		llm:         llm,
		logger:      logger,
		collections: make(map[string]*chromem.Collection),
	}

	// Load whatever collections survived the last run.
	for _, domain := range models.Domains {
		if _, err := os.Stat(s.domainDir(domain)); err != nil {
			continue
		}
		col, err := s.open(s.domainDir(domain))
		if err != nil {
			logger.Warn().Err(err).Str("domain", domain).Msg("Failed to load persisted index, domain starts unavailable")
			continue
		}
		s.collections[domain] = col
		logger.Info().Str("domain", domain).Int("chunks", col.Count()).Msg("Loaded persisted vector index")
	}

	return s, nil
}

func (s *Service) domainDir(domain string) string {
	return filepath.Join(s.root, domain+"_index")
}

// embeddingFunc delegates embedding to the configured LLM service so the
// same model embeds chunks at build time and queries at read time.
func (s *Service) embeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return s.llm.Embed(ctx, text)
	}
}

func (s *Service) open(dir string) (*chromem.Collection, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector db at %s: %w", dir, err)
	}
	col, err := db.GetOrCreateCollection(collectionName, nil, s.embeddingFunc())
	if err != nil {
		return nil, fmt.Errorf("failed to open collection at %s: %w", dir, err)
	}
	return col, nil
}

// Build embeds every chunk into a staging directory, then swaps it into
// place. The previous index keeps serving queries until the swap.
func (s *Service) Build(ctx context.Context, domain string, chunks []models.Chunk) error {
	if !models.ValidDomain(domain) {
		return fmt.Errorf("unknown domain %q", domain)
	}

	final := s.domainDir(domain)
	staging := final + ".staging"

	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("failed to clear staging dir: %w", err)
	}

	col, err := s.open(staging)
	if err != nil {
		return err
	}

	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			os.RemoveAll(staging)
			return ctx.Err()
		default:
		}

		err := col.AddDocument(ctx, chromem.Document{
			ID:      chunk.ID,
			Content: chunk.Content,
			Metadata: map[string]string{
				"source":      chunk.Source,
				"page":        strconv.Itoa(chunk.Page),
				"chunk_index": strconv.Itoa(chunk.ChunkIndex),
				"domain":      chunk.Domain,
			},
		})
		if err != nil {
			os.RemoveAll(staging)
			return fmt.Errorf("failed to embed chunk %s: %w", chunk.ID, err)
		}
	}

	// Swap: retire the old directory, move staging into place, then point
	// queries at a fresh handle on the new directory.
	old := final + ".old"
	os.RemoveAll(old)
	if _, err := os.Stat(final); err == nil {
		if err := os.Rename(final, old); err != nil {
			os.RemoveAll(staging)
			return fmt.Errorf("failed to retire old index: %w", err)
		}
	}
	if err := os.Rename(staging, final); err != nil {
		// Try to restore the previous index before giving up.
		os.Rename(old, final)
		return fmt.Errorf("failed to activate new index: %w", err)
	}
	os.RemoveAll(old)

	live, err := s.open(final)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.collections[domain] = live
	s.mu.Unlock()

	s.logger.Info().
		Str("domain", domain).
		Int("chunks", live.Count()).
		Msg("Vector index rebuilt")

	return nil
}

// Exists reports whether the domain has a live collection.
func (s *Service) Exists(domain string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.collections[domain]
	return ok && col.Count() > 0
}

// Query returns the k nearest chunks for text, ordered by descending
// similarity. k is clamped to the collection size.
func (s *Service) Query(ctx context.Context, domain, text string, k int) ([]models.ScoredChunk, error) {
	s.mu.RLock()
	col, ok := s.collections[domain]
	s.mu.RUnlock()

	if !ok || col.Count() == 0 {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrIndexNotFound, domain)
	}

	if count := col.Count(); k > count {
		k = count
	}

	results, err := col.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query failed for domain %s: %w", domain, err)
	}

	scored := make([]models.ScoredChunk, 0, len(results))
	for _, result := range results {
		page, _ := strconv.Atoi(result.Metadata["page"])
		chunkIndex, _ := strconv.Atoi(result.Metadata["chunk_index"])
		scored = append(scored, models.ScoredChunk{
			Chunk: models.Chunk{
				ID:         result.ID,
				Content:    result.Content,
				Source:     result.Metadata["source"],
				Page:       page,
				ChunkIndex: chunkIndex,
				Domain:     domain,
			},
			Similarity: result.Similarity,
		})
	}

	return scored, nil
}
