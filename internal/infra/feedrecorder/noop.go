package feedrecorder

import (
	"context"

	"github.com/finchboard/tickerlane/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.FeedRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordDispatches(_ context.Context, _ []domain.DispatchRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
