package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/storefront-backend/internal/logger"
)

// Store writes generated media (user avatars) to a local directory served by
// the router under /media. Swappable for an object store behind the same
// interface.
type Store interface {
	SavePNG(name string, data []byte) (url string, err error)
	Dir() string
}

type localStore struct {
	log  *logger.Logger
	dir  string
	base string
}

func NewLocalStore(log *logger.Logger, dir, baseURL string) (Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "media"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &localStore{
		log:  log.With("service", "LocalMediaStore"),
		dir:  dir,
		base: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (ls *localStore) SavePNG(name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}
	path := filepath.Join(ls.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return ls.base + "/media/" + name, nil
}

func (ls *localStore) Dir() string {
	return ls.dir
}
