package mock

import (
	"context"

	"github.com/fwojciec/showreel"
)

var _ showreel.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of showreel.ArtifactStore.
type ArtifactStore struct {
	SaveArtifactFn func(ctx context.Context, sessionID string, index int, data []byte) (string, error)
}

func (s *ArtifactStore) SaveArtifact(ctx context.Context, sessionID string, index int, data []byte) (string, error) {
	return s.SaveArtifactFn(ctx, sessionID, index, data)
}
