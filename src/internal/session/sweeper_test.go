package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRemovesStaleEntries(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService()

	_, err := service.ResolveFileKey(ctx, "F-stale", "T1", "U1")
	require.NoError(t, err)
	_, err = service.ResolveFileKey(ctx, "F-fresh", "T1", "U1")
	require.NoError(t, err)

	repo.backdate("F-stale", 8*24*time.Hour)

	sweeper := NewSweeper(service, repo, testConfig())
	sweeper.sweep(ctx)

	assert.False(t, repo.has("F-stale"))
	assert.True(t, repo.has("F-fresh"))
}

func TestSweepBoundedBatch(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	cfg := testConfig()
	cfg.Session.SweepBatchSize = 2

	service := newServiceWithRepo(repo, cfg)

	for _, fileID := range []string{"F1", "F2", "F3"} {
		_, err := service.ResolveFileKey(ctx, fileID, "T1", "U1")
		require.NoError(t, err)
		repo.backdate(fileID, 8*24*time.Hour)
	}

	sweeper := NewSweeper(service, repo, cfg)
	sweeper.sweep(ctx)

	remaining := 0
	for _, fileID := range []string{"F1", "F2", "F3"} {
		if repo.has(fileID) {
			remaining++
		}
	}

	// One entry survives the bounded pass and is left for the next run.
	assert.Equal(t, 1, remaining)

	sweeper.sweep(ctx)
	for _, fileID := range []string{"F1", "F2", "F3"} {
		assert.False(t, repo.has(fileID))
	}
}

func TestSweepEmptyBacklogIsNoop(t *testing.T) {
	service, repo := newTestService()

	sweeper := NewSweeper(service, repo, testConfig())
	sweeper.sweep(context.Background())

	assert.Empty(t, repo.records)
}
