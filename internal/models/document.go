package models

// Document represents a unit of source text produced by the document loader:
// one PDF page or one whole text file. Documents are immutable once created.
type Document struct {
	// Content is the extracted plain text.
	Content string `json:"content"`

	// Source is the path of the file the text came from.
	Source string `json:"source"`

	// Page is the 1-indexed PDF page number, or 0 for whole-file documents.
	Page int `json:"page,omitempty"`

	// Domain is the legal domain the document belongs to (ipc, rti, ...).
	Domain string `json:"domain"`
}

// Chunk is a bounded slice of a Document, the unit of embedding and retrieval.
// Chunks inherit their document's source metadata and are never merged back.
type Chunk struct {
	ID         string `json:"id"` // {file}:{page}:{chunk_index}
	Content    string `json:"content"`
	Source     string `json:"source"`
	Page       int    `json:"page,omitempty"`
	ChunkIndex int    `json:"chunk_index"`
	Domain     string `json:"domain"`
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk      Chunk   `json:"chunk"`
	Similarity float32 `json:"similarity"`
}

// SourceMetadata locates a citation's origin: the source file and,
// for PDF pages, the 1-indexed page number.
type SourceMetadata struct {
	Source string `json:"source"`
	Page   int    `json:"page,omitempty"`
}

// SourceRef is a deduplicated citation of a retrieved chunk: an excerpt
// of the cited text plus the metadata locating it.
type SourceRef struct {
	Content  string         `json:"content"`
	Metadata SourceMetadata `json:"metadata"`
}

// Answer is the result of a bot query: generated text plus the distinct
// source citations of the chunks that backed it.
type Answer struct {
	Text    string      `json:"answer"`
	Sources []SourceRef `json:"sources"`
}
