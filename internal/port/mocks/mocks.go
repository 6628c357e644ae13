// Package mocks holds testify doubles for the port interfaces. It is imported
// by tests only.
package mocks

import (
	"context"
	"testing"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/port"
	"github.com/stretchr/testify/mock"
)

type VideoProberMock struct{ mock.Mock }

func NewVideoProberMock(t *testing.T) *VideoProberMock {
	m := &VideoProberMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *VideoProberMock) Probe(ctx context.Context, videoPath string) (domain.VideoMetadata, error) {
	args := m.Called(ctx, videoPath)
	return args.Get(0).(domain.VideoMetadata), args.Error(1)
}

type FrameExtractorMock struct{ mock.Mock }

func NewFrameExtractorMock(t *testing.T) *FrameExtractorMock {
	m := &FrameExtractorMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FrameExtractorMock) Extract(ctx context.Context, videoPath string, frameIndex int, outputPath string) error {
	args := m.Called(ctx, videoPath, frameIndex, outputPath)
	return args.Error(0)
}

type HistoryStoreMock struct{ mock.Mock }

func NewHistoryStoreMock(t *testing.T) *HistoryStoreMock {
	m := &HistoryStoreMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HistoryStoreMock) Record(f *domain.ExtractedFrame) error {
	return m.Called(f).Error(0)
}

func (m *HistoryStoreMock) ListRecent(limit int) ([]domain.ExtractedFrame, error) {
	args := m.Called(limit)
	frames, _ := args.Get(0).([]domain.ExtractedFrame)
	return frames, args.Error(1)
}

func (m *HistoryStoreMock) ListByRun(runID string) ([]domain.ExtractedFrame, error) {
	args := m.Called(runID)
	frames, _ := args.Get(0).([]domain.ExtractedFrame)
	return frames, args.Error(1)
}

func (m *HistoryStoreMock) Close() error {
	return m.Called().Error(0)
}

var (
	_ port.VideoProber    = (*VideoProberMock)(nil)
	_ port.FrameExtractor = (*FrameExtractorMock)(nil)
	_ port.HistoryStore   = (*HistoryStoreMock)(nil)
)
