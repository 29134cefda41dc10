// -----------------------------------------------------------------------
// Chunker - Deterministic sliding-window text chunking
// -----------------------------------------------------------------------

package ingest

import (
	"fmt"
	"strings"

	"github.com/wedevbytes/nyaya/internal/models"
)

// Chunker splits document text into fixed-size overlapping chunks.
// Windows are measured in runes so multi-byte scripts (Hindi legal
// texts in particular) never get split mid-character.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker. overlap must be smaller than size;
// config validation enforces this before we get here.
func NewChunker(size, overlap int) *Chunker {
	return &Chunker{size: size, overlap: overlap}
}

// Chunk splits a document into overlapping chunks. The same document
// always yields the same chunks with the same IDs, so re-ingesting
// unchanged sources produces an identical index.
func (c *Chunker) Chunk(doc models.Document) []models.Chunk {
	text := strings.TrimSpace(doc.Content)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	step := c.size - c.overlap

	var chunks []models.Chunk
	for start, idx := 0, 0; start < len(runes); start, idx = start+step, idx+1 {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		content := strings.TrimSpace(string(runes[start:end]))
		if content != "" {
			chunks = append(chunks, models.Chunk{
				ID:         chunkID(doc, idx),
				Content:    content,
				Source:     doc.Source,
				Page:       doc.Page,
				ChunkIndex: idx,
				Domain:     doc.Domain,
			})
		}

		if end == len(runes) {
			break
		}
	}

	return chunks
}

// chunkID derives a stable chunk identifier from the source location.
func chunkID(doc models.Document, idx int) string {
	return fmt.Sprintf("%s:%d:%d", doc.Source, doc.Page, idx)
}
