package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// blockingIndex blocks Build until released, to observe in-flight state.
type blockingIndex struct {
	mu      sync.Mutex
	built   map[string][]models.Chunk
	release chan struct{}
	started chan string
}

func newBlockingIndex() *blockingIndex {
	return &blockingIndex{
		built:   make(map[string][]models.Chunk),
		release: make(chan struct{}),
		started: make(chan string, 8),
	}
}

func (b *blockingIndex) Build(ctx context.Context, domain string, chunks []models.Chunk) error {
	b.started <- domain
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.built[domain] = chunks
	return nil
}

func (b *blockingIndex) Exists(domain string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.built[domain]
	return ok
}

func (b *blockingIndex) Query(ctx context.Context, domain, text string, k int) ([]models.ScoredChunk, error) {
	return nil, interfaces.ErrIndexNotFound
}

func newTestService(t *testing.T, index interfaces.VectorIndex) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	logger := common.GetLogger()
	loader := NewLoader(root, &fakeExtractor{}, logger)
	chunker := NewChunker(100, 20)
	return NewService(loader, chunker, index, logger), root
}

func writeDomainFile(t *testing.T, root, domain, name, content string) {
	t.Helper()
	dir := filepath.Join(root, domain)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestTriggerRejectsConcurrentBuild(t *testing.T) {
	index := newBlockingIndex()
	service, root := newTestService(t, index)
	writeDomainFile(t, root, models.DomainIPC, "code.txt", "Section 379. Punishment for theft.")

	require.NoError(t, service.Trigger(models.DomainIPC))

	// Wait until the build goroutine is inside Build.
	select {
	case <-index.started:
	case <-time.After(2 * time.Second):
		t.Fatal("build never started")
	}

	assert.True(t, service.Running(models.DomainIPC))

	err := service.Trigger(models.DomainIPC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrIngestRunning))

	// "all" must also be rejected while one of its domains is claimed.
	err = service.Trigger("all")
	assert.True(t, errors.Is(err, interfaces.ErrIngestRunning))

	close(index.release)

	// The claim is released once the build finishes.
	deadline := time.After(2 * time.Second)
	for service.Running(models.DomainIPC) {
		select {
		case <-deadline:
			t.Fatal("running flag never cleared")
		case <-time.After(10 * time.Millisecond):
		}
	}

	assert.True(t, index.Exists(models.DomainIPC))
}

func TestTriggerAllClaimsEveryDomain(t *testing.T) {
	index := newBlockingIndex()
	service, root := newTestService(t, index)
	for _, domain := range models.Domains {
		writeDomainFile(t, root, domain, "doc.txt", "some legal text for "+domain)
	}

	require.NoError(t, service.Trigger("all"))

	for range models.Domains {
		select {
		case <-index.started:
		case <-time.After(2 * time.Second):
			t.Fatal("not all domain builds started")
		}
	}

	for _, domain := range models.Domains {
		assert.True(t, service.Running(domain), "domain %s should be claimed", domain)
	}

	close(index.release)
}

func TestTriggerEmptyDomainLeavesIndexUntouched(t *testing.T) {
	index := newBlockingIndex()
	close(index.release) // never block
	service, _ := newTestService(t, index)

	// No documents directory at all.
	require.NoError(t, service.Trigger(models.DomainRTI))

	deadline := time.After(2 * time.Second)
	for service.Running(models.DomainRTI) {
		select {
		case <-deadline:
			t.Fatal("running flag never cleared")
		case <-time.After(10 * time.Millisecond):
		}
	}

	assert.False(t, index.Exists(models.DomainRTI))
}

func TestUpload(t *testing.T) {
	index := newBlockingIndex()
	service, root := newTestService(t, index)

	err := service.Upload(models.DomainIPC, "sections.txt", strings.NewReader("Section 420."))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, models.DomainIPC, "sections.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Section 420.", string(content))
}

func TestUploadStripsPathComponents(t *testing.T) {
	index := newBlockingIndex()
	service, root := newTestService(t, index)

	err := service.Upload(models.DomainRTI, "../../etc/passwd.txt", strings.NewReader("data"))
	require.NoError(t, err)

	// Stored under the domain dir, with only the base name.
	_, err = os.Stat(filepath.Join(root, models.DomainRTI, "passwd.txt"))
	assert.NoError(t, err)
}

func TestUploadRejectsUnsupportedTypes(t *testing.T) {
	index := newBlockingIndex()
	service, _ := newTestService(t, index)

	err := service.Upload(models.DomainIPC, "notes.docx", strings.NewReader("binary"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	err = service.Upload("maritime", "doc.txt", strings.NewReader("text"))
	require.Error(t, err)
}
