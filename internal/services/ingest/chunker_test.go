package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedevbytes/nyaya/internal/models"
)

func TestChunkerSplitsWithOverlap(t *testing.T) {
	chunker := NewChunker(10, 4)
	doc := models.Document{
		Content: "abcdefghijklmnopqrstuvwxyz",
		Source:  "alphabet.txt",
		Page:    1,
		Domain:  models.DomainIPC,
	}

	chunks := chunker.Chunk(doc)
	require.NotEmpty(t, chunks)

	// Windows advance by size-overlap runes.
	assert.Equal(t, "abcdefghij", chunks[0].Content)
	assert.Equal(t, "ghijklmnop", chunks[1].Content)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.Equal(t, "alphabet.txt", chunk.Source)
		assert.Equal(t, models.DomainIPC, chunk.Domain)
		assert.LessOrEqual(t, len([]rune(chunk.Content)), 10)
	}

	// Last chunk ends with the end of the document.
	assert.True(t, strings.HasSuffix(chunks[len(chunks)-1].Content, "z"))
}

func TestChunkerIsDeterministic(t *testing.T) {
	chunker := NewChunker(100, 20)
	doc := models.Document{
		Content: strings.Repeat("Section 378 defines theft under the penal code. ", 50),
		Source:  "ipc.pdf",
		Page:    3,
		Domain:  models.DomainIPC,
	}

	first := chunker.Chunk(doc)
	second := chunker.Chunk(doc)
	assert.Equal(t, first, second)
}

func TestChunkerRuneSafe(t *testing.T) {
	chunker := NewChunker(5, 2)
	doc := models.Document{
		// Devanagari text; every boundary must fall between runes.
		Content: "भारतीय दण्ड संहिता की धारा",
		Source:  "ipc_hi.txt",
		Page:    1,
		Domain:  models.DomainIPC,
	}

	chunks := chunker.Chunk(doc)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk.Content), "chunk %q is not valid UTF-8", chunk.Content)
	}
}

func TestChunkerShortDocumentSingleChunk(t *testing.T) {
	chunker := NewChunker(1000, 200)
	doc := models.Document{Content: "short text", Source: "a.txt", Page: 1, Domain: models.DomainRTI}

	chunks := chunker.Chunk(doc)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0].Content)
	assert.Equal(t, "a.txt:1:0", chunks[0].ID)
}

func TestChunkerEmptyDocument(t *testing.T) {
	chunker := NewChunker(1000, 200)

	assert.Empty(t, chunker.Chunk(models.Document{Content: ""}))
	assert.Empty(t, chunker.Chunk(models.Document{Content: "   \n\t  "}))
}

func TestChunkerStableIDs(t *testing.T) {
	chunker := NewChunker(10, 4)
	doc := models.Document{
		Content: "abcdefghijklmnopqrstuvwxyz",
		Source:  "alphabet.txt",
		Page:    2,
		Domain:  models.DomainRTI,
	}

	chunks := chunker.Chunk(doc)
	require.True(t, len(chunks) >= 2)
	assert.Equal(t, "alphabet.txt:2:0", chunks[0].ID)
	assert.Equal(t, "alphabet.txt:2:1", chunks[1].ID)
}
