package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
	"github.com/yungbote/storefront-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New connects to the configured database. DB_DRIVER=sqlite gives a local
// file database for development; anything else means Postgres.
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))
	if driver == "sqlite" {
		return newSQLite(serviceLog, log)
	}
	return newPostgres(serviceLog, log)
}

func newPostgres(serviceLog, log *logger.Logger) (*Service, error) {
	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "storefront", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &Service{db: db, log: serviceLog}, nil
}

func newSQLite(serviceLog, log *logger.Logger) (*Service, error) {
	path := utils.GetEnv("SQLITE_PATH", "storefront.db", log)
	serviceLog.Info("Opening SQLite database...", "path", path)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to open SQLite database", "error", err)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &Service{db: db, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Category{},
		&types.Product{},
		&types.Order{},
		&types.OrderItem{},
		&types.WishlistItem{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
