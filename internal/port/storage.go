package port

import "github.com/bnema/lastframes/internal/domain"

type HistoryStore interface {
	Record(f *domain.ExtractedFrame) error
	ListRecent(limit int) ([]domain.ExtractedFrame, error)
	ListByRun(runID string) ([]domain.ExtractedFrame, error)
	Close() error
}
