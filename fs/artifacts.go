package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/showreel"
)

// Ensure ArtifactStore implements showreel.ArtifactStore at compile time.
var _ showreel.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes per-iteration extraction snapshots under a base
// directory, one subdirectory per session. File names carry a content hash
// so identical iterations dedupe naturally.
type ArtifactStore struct {
	baseDir string
}

// NewArtifactStore creates an ArtifactStore rooted at baseDir.
func NewArtifactStore(baseDir string) *ArtifactStore {
	return &ArtifactStore{baseDir: baseDir}
}

// SaveArtifact writes one artifact and returns its path relative to the
// base directory.
func (s *ArtifactStore) SaveArtifact(ctx context.Context, sessionID string, index int, data []byte) (string, error) {
	if sessionID == "" {
		return "", showreel.Errorf(showreel.EINVALID, "session ID required")
	}

	name := fmt.Sprintf("%03d-%016x.json", index, xxhash.Sum64(data))
	relPath := filepath.Join(sessionID, name)
	fullPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", showreel.Errorf(showreel.EINTERNAL, "create artifact dir: %v", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", showreel.Errorf(showreel.EINTERNAL, "write artifact: %v", err)
	}
	return relPath, nil
}
