package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
)

const pingTimeout = 5 * time.Second

type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New открывает пул соединений через pgx stdlib и проверяет доступность базы
func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Connect("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dbCfg := cfg.Database
	if dbCfg.MaxConns > 0 {
		db.SetMaxOpenConns(dbCfg.MaxConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", dbCfg.Host),
		zap.Int("port", dbCfg.Port),
		zap.String("database", dbCfg.DBName),
	)

	return &DB{DB: db, logger: logger}, nil
}

// Wrap оборачивает готовое соединение (используется в тестах)
func Wrap(db *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{DB: db, logger: logger}
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}
