package app

import (
	"fmt"

	"github.com/yungbote/storefront-backend/internal/clients/media"
	"github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/logger"
)

type Clients struct {
	CartStore  redis.CartStore
	MediaStore media.Store
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	cartStore, err := redis.NewCartStore(log, cfg.CartTTL)
	if err != nil {
		return Clients{}, fmt.Errorf("init cart store: %w", err)
	}

	mediaStore, err := media.NewLocalStore(log, cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		_ = cartStore.Close()
		return Clients{}, fmt.Errorf("init media store: %w", err)
	}

	return Clients{
		CartStore:  cartStore,
		MediaStore: mediaStore,
	}, nil
}
