package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/storefront-backend/internal/logger"
)

// StoredLine is the persisted shape of one cart line. Product data is not
// snapshotted here; carts are rehydrated against the live product table so
// price and stock are always current.
type StoredLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CartStore persists carts keyed by user so a session restart does not lose
// cart contents. Writes are last-write-wins.
type CartStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]StoredLine, error)
	Save(ctx context.Context, userID uuid.UUID, lines []StoredLine) error
	Delete(ctx context.Context, userID uuid.UUID) error
	Close() error
}

type cartStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCartStore(log *logger.Logger, ttl time.Duration) (CartStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cartStore{
		log: log.With("service", "RedisCartStore"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cartKey(userID uuid.UUID) string {
	return "cart:" + userID.String()
}

func (cs *cartStore) Load(ctx context.Context, userID uuid.UUID) ([]StoredLine, error) {
	raw, err := cs.rdb.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}
	var lines []StoredLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		// A corrupt entry should not wedge the cart forever; start fresh.
		cs.log.Warn("Dropping undecodable cart entry", "user_id", userID, "error", err)
		_ = cs.rdb.Del(ctx, cartKey(userID)).Err()
		return nil, nil
	}
	return lines, nil
}

func (cs *cartStore) Save(ctx context.Context, userID uuid.UUID, lines []StoredLine) error {
	if len(lines) == 0 {
		return cs.Delete(ctx, userID)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := cs.rdb.Set(ctx, cartKey(userID), raw, cs.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (cs *cartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := cs.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

func (cs *cartStore) Close() error {
	return cs.rdb.Close()
}
