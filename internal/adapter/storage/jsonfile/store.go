package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/infrastructure/fsx"
	"github.com/bnema/lastframes/internal/port"
)

const fileName = "history.json"

type Store struct {
	mu     sync.RWMutex
	path   string
	frames []domain.ExtractedFrame
	nextID int64
}

func NewStore(dataDir string) (*Store, error) {
	store := &Store{
		path:   filepath.Join(dataDir, fileName),
		nextID: 1,
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.frames); err != nil {
		return err
	}

	for _, f := range s.frames {
		if f.ID >= s.nextID {
			s.nextID = f.ID + 1
		}
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.frames, "", "  ")
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomic(s.path, data, 0600)
}

func (s *Store) Record(f *domain.ExtractedFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	f.ID = s.nextID
	s.nextID++
	s.frames = append(s.frames, *f)
	return s.save()
}

func (s *Store) ListRecent(limit int) ([]domain.ExtractedFrame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	recent := make([]domain.ExtractedFrame, len(s.frames))
	copy(recent, s.frames)
	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].ID > recent[j].ID
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (s *Store) ListByRun(runID string) ([]domain.ExtractedFrame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var frames []domain.ExtractedFrame
	for _, f := range s.frames {
		if f.RunID == runID {
			frames = append(frames, f)
		}
	}
	if len(frames) == 0 {
		return nil, domain.ErrNotFound
	}
	return frames, nil
}

func (s *Store) Close() error { return nil }

var _ port.HistoryStore = (*Store)(nil)
