package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
)

const DefaultRoundPrefix = "scoreboard"

// FSRoundStorage reads numbered round files from a directory laid out as
// {dir}/{prefix}{index}.json. It backs the televote aggregation of exported boards.
type FSRoundStorage struct {
	dir    string
	prefix string
}

func NewFSRoundStorage(dir, prefix string) *FSRoundStorage {
	if prefix == "" {
		prefix = DefaultRoundPrefix
	}
	return &FSRoundStorage{dir: dir, prefix: prefix}
}

func (s *FSRoundStorage) Path(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d.json", s.prefix, index))
}

func (s *FSRoundStorage) LoadRound(ctx context.Context, index int) ([]scoreboard.NormalizedScoreEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(index)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, scoreboard.ErrRoundNotFound)
		}
		return nil, err
	}
	return scoreboard.ParseScoreboardFile(path, data)
}

// Count returns how many consecutive rounds starting at 1 exist on disk.
func (s *FSRoundStorage) Count() int {
	n := 0
	for {
		if _, err := os.Stat(s.Path(n + 1)); err != nil {
			return n
		}
		n++
	}
}
