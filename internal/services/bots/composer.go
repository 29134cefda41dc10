package bots

import (
	"fmt"
	"strings"

	"github.com/wedevbytes/nyaya/internal/models"
)

// snippetLimit caps source snippets in citations.
const snippetLimit = 500

// ComposePrompt fills a bot's template with the retrieved context and the
// user's question. Chunks are joined in retrieval order (best first) with
// blank-line separators.
func ComposePrompt(template, question string, chunks []models.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, scored := range chunks {
		parts = append(parts, scored.Chunk.Content)
	}
	context := strings.Join(parts, "\n\n")

	prompt := strings.ReplaceAll(template, "{context}", context)
	prompt = strings.ReplaceAll(prompt, "{question}", question)
	return prompt
}

// DedupeSources collapses retrieved chunks into distinct file/page
// citations, keeping retrieval order and the best-ranked chunk's snippet.
func DedupeSources(chunks []models.ScoredChunk) []models.SourceRef {
	seen := make(map[string]bool, len(chunks))
	refs := make([]models.SourceRef, 0, len(chunks))
	for _, scored := range chunks {
		key := fmt.Sprintf("%s#%d", scored.Chunk.Source, scored.Chunk.Page)
		if seen[key] {
			continue
		}
		seen[key] = true

		refs = append(refs, models.SourceRef{
			Content: snippet(scored.Chunk.Content),
			Metadata: models.SourceMetadata{
				Source: scored.Chunk.Source,
				Page:   scored.Chunk.Page,
			},
		})
	}
	return refs
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLimit {
		return content
	}
	return string(runes[:snippetLimit]) + "..."
}
