package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// fakeExtractor serves canned pages keyed by file basename.
type fakeExtractor struct {
	pages map[string][]interfaces.PDFPageContent
	err   error
}

func (f *fakeExtractor) ExtractPages(ctx context.Context, path string) ([]interfaces.PDFPageContent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[filepath.Base(path)], nil
}

func TestLoaderLoadsTextFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, models.DomainRTI)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "act.txt"), []byte("Right to Information Act, 2005."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("   "), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644))

	loader := NewLoader(root, &fakeExtractor{}, common.GetLogger())
	docs, err := loader.Load(context.Background(), models.DomainRTI)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "Right to Information Act, 2005.", docs[0].Content)
	assert.Equal(t, "act.txt", docs[0].Source)
	assert.Equal(t, 0, docs[0].Page, "whole-file documents carry no page number")
	assert.Equal(t, models.DomainRTI, docs[0].Domain)
}

func TestLoaderLoadsPDFPerPage(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, models.DomainIPC)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "code.pdf"), []byte("%PDF-"), 0644))

	extractor := &fakeExtractor{pages: map[string][]interfaces.PDFPageContent{
		"code.pdf": {
			{PageNumber: 1, Text: "Section 1"},
			{PageNumber: 2, Text: "  "},
			{PageNumber: 3, Text: "Section 3"},
		},
	}}

	loader := NewLoader(root, extractor, common.GetLogger())
	docs, err := loader.Load(context.Background(), models.DomainIPC)
	require.NoError(t, err)

	// Blank pages are dropped but the page numbers of the rest survive.
	require.Len(t, docs, 2)
	assert.Equal(t, 1, docs[0].Page)
	assert.Equal(t, 3, docs[1].Page)
	assert.Equal(t, "code.pdf", docs[0].Source)
}

func TestLoaderSkipsUnreadablePDF(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, models.DomainIPC)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.txt"), []byte("usable text"), 0644))

	loader := NewLoader(root, &fakeExtractor{err: assert.AnError}, common.GetLogger())
	docs, err := loader.Load(context.Background(), models.DomainIPC)
	require.NoError(t, err)

	// The broken PDF is skipped; the run still yields the good file.
	require.Len(t, docs, 1)
	assert.Equal(t, "good.txt", docs[0].Source)
}

func TestLoaderMissingDomainDirectory(t *testing.T) {
	loader := NewLoader(t.TempDir(), &fakeExtractor{}, common.GetLogger())
	docs, err := loader.Load(context.Background(), models.DomainConstitution)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoaderDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, models.DomainLaborLaw)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("second"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("first"), 0644))

	loader := NewLoader(root, &fakeExtractor{}, common.GetLogger())
	docs, err := loader.Load(context.Background(), models.DomainLaborLaw)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Source)
	assert.Equal(t, "b.txt", docs[1].Source)
}
