package index

import (
	"context"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedevbytes/nyaya/internal/common"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"github.com/wedevbytes/nyaya/internal/models"
)

// hashLLM produces deterministic pseudo-embeddings so tests don't need a
// hosted model. Identical text always embeds identically.
type hashLLM struct{}

func (h *hashLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for i := range vec {
		hasher := fnv.New32a()
		hasher.Write([]byte{byte(i)})
		hasher.Write([]byte(text))
		vec[i] = float32(hasher.Sum32()%1000)/1000.0 - 0.5
	}
	return vec, nil
}

func (h *hashLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return "", nil
}
func (h *hashLLM) HealthCheck(ctx context.Context) error  { return nil }
func (h *hashLLM) Provider() interfaces.LLMProvider       { return interfaces.LLMProviderGemini }
func (h *hashLLM) Close() error                           { return nil }

func testChunks(domain string) []models.Chunk {
	return []models.Chunk{
		{ID: "a.txt:1:0", Content: "Theft is punishable under section 378", Source: "a.txt", Page: 1, ChunkIndex: 0, Domain: domain},
		{ID: "a.txt:1:1", Content: "Murder is defined in section 300", Source: "a.txt", Page: 1, ChunkIndex: 1, Domain: domain},
		{ID: "b.txt:1:0", Content: "Bail provisions appear in chapter 33", Source: "b.txt", Page: 1, ChunkIndex: 0, Domain: domain},
	}
}

func TestBuildAndQuery(t *testing.T) {
	svc, err := NewService(t.TempDir(), &hashLLM{}, common.GetLogger())
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, svc.Exists(models.DomainIPC))

	require.NoError(t, svc.Build(ctx, models.DomainIPC, testChunks(models.DomainIPC)))
	assert.True(t, svc.Exists(models.DomainIPC))

	results, err := svc.Query(ctx, models.DomainIPC, "Theft is punishable under section 378", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Exact text match embeds identically, so it must rank first.
	assert.Equal(t, "a.txt:1:0", results[0].Chunk.ID)
	assert.Equal(t, "a.txt", results[0].Chunk.Source)
	assert.Equal(t, 1, results[0].Chunk.Page)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
}

func TestQueryUnbuiltDomain(t *testing.T) {
	svc, err := NewService(t.TempDir(), &hashLLM{}, common.GetLogger())
	require.NoError(t, err)

	_, err = svc.Query(context.Background(), models.DomainRTI, "anything", 4)
	assert.ErrorIs(t, err, interfaces.ErrIndexNotFound)
}

func TestQueryClampsK(t *testing.T) {
	svc, err := NewService(t.TempDir(), &hashLLM{}, common.GetLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Build(ctx, models.DomainRTI, testChunks(models.DomainRTI)))

	results, err := svc.Query(ctx, models.DomainRTI, "bail", 50)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRebuildReplacesIndex(t *testing.T) {
	svc, err := NewService(t.TempDir(), &hashLLM{}, common.GetLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Build(ctx, models.DomainIPC, testChunks(models.DomainIPC)))

	replacement := []models.Chunk{
		{ID: "c.txt:1:0", Content: "Entirely new content", Source: "c.txt", Page: 1, ChunkIndex: 0, Domain: models.DomainIPC},
	}
	require.NoError(t, svc.Build(ctx, models.DomainIPC, replacement))

	results, err := svc.Query(ctx, models.DomainIPC, "Entirely new content", 10)
	require.NoError(t, err)

	// Full replacement: nothing from the first build survives.
	require.Len(t, results, 1)
	assert.Equal(t, "c.txt:1:0", results[0].Chunk.ID)
}

func TestIndexSurvivesRestart(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	svc, err := NewService(root, &hashLLM{}, common.GetLogger())
	require.NoError(t, err)
	require.NoError(t, svc.Build(ctx, models.DomainConstitution, testChunks(models.DomainConstitution)))

	// A fresh service over the same root loads the persisted collection.
	reopened, err := NewService(root, &hashLLM{}, common.GetLogger())
	require.NoError(t, err)
	assert.True(t, reopened.Exists(models.DomainConstitution))

	results, err := reopened.Query(ctx, models.DomainConstitution, "bail", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
