package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrame(runID string, index int) *domain.ExtractedFrame {
	return &domain.ExtractedFrame{
		RunID:      runID,
		VideoPath:  "/videos/clip.mp4",
		FrameIndex: index,
		OutputPath: "/out/" + domain.FrameFileName("clip", index, domain.FormatPNG),
		Format:     "png",
	}
}

func TestNewStore(t *testing.T) {
	t.Run("creates store successfully", func(t *testing.T) {
		store, err := NewStore(t.TempDir())

		assert.NoError(t, err)
		assert.NotNil(t, store)
		assert.Empty(t, store.frames)
	})

	t.Run("loads existing data from file", func(t *testing.T) {
		tempDir := t.TempDir()
		frames := []domain.ExtractedFrame{
			{ID: 1, RunID: "r1", FrameIndex: 8},
			{ID: 7, RunID: "r1", FrameIndex: 9},
		}
		data, _ := json.MarshalIndent(frames, "", "  ")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, fileName), data, 0600))

		store, err := NewStore(tempDir)

		require.NoError(t, err)
		assert.Len(t, store.frames, 2)
		assert.Equal(t, int64(8), store.nextID, "ids continue after the highest loaded id")
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, fileName), []byte("invalid json"), 0600))

		store, err := NewStore(tempDir)

		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("does not create file until first record", func(t *testing.T) {
		tempDir := t.TempDir()

		_, err := NewStore(tempDir)

		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(tempDir, fileName))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("handles empty JSON file", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, fileName), []byte(""), 0600))

		store, err := NewStore(tempDir)

		assert.NoError(t, err)
		assert.Empty(t, store.frames)
	})
}

func TestStoreRecord(t *testing.T) {
	t.Run("assigns ids and timestamps", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())
		a, b := newFrame("r1", 8), newFrame("r1", 9)

		require.NoError(t, store.Record(a))
		require.NoError(t, store.Record(b))

		assert.Equal(t, int64(1), a.ID)
		assert.Equal(t, int64(2), b.ID)
		assert.WithinDuration(t, time.Now(), a.CreatedAt, time.Second)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		tempDir := t.TempDir()
		store, _ := NewStore(tempDir)
		require.NoError(t, store.Record(newFrame("r1", 3)))

		reopened, err := NewStore(tempDir)
		require.NoError(t, err)

		frames, err := reopened.ListByRun("r1")
		require.NoError(t, err)
		require.Len(t, frames, 1)
		assert.Equal(t, 3, frames[0].FrameIndex)
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		tempDir := t.TempDir()
		store, _ := NewStore(tempDir)
		require.NoError(t, store.Record(newFrame("r1", 0)))

		_, err := os.Stat(filepath.Join(tempDir, fileName+".tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("concurrent records are serialised", func(t *testing.T) {
		store, _ := NewStore(t.TempDir())

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				_ = store.Record(newFrame("r1", idx))
			}(i)
		}
		wg.Wait()

		frames, err := store.ListByRun("r1")
		require.NoError(t, err)
		assert.Len(t, frames, 10)
	})
}

func TestStoreListByRun(t *testing.T) {
	store, _ := NewStore(t.TempDir())
	require.NoError(t, store.Record(newFrame("r1", 1)))
	require.NoError(t, store.Record(newFrame("r2", 2)))

	frames, err := store.ListByRun("r2")
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, 2, frames[0].FrameIndex)

	_, err = store.ListByRun("missing")
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestStoreListRecent(t *testing.T) {
	store, _ := NewStore(t.TempDir())
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		f := newFrame("r1", i)
		f.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Record(f))
	}

	recent, err := store.ListRecent(2)

	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].FrameIndex)
	assert.Equal(t, 2, recent[1].FrameIndex)
}
