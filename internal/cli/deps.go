package cli

import (
	"context"
	"fmt"
	"log/slog"

	"gatehouse/internal/audit"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/health"
	"gatehouse/internal/platform/kafka/producer"
	"gatehouse/internal/platform/postgres"
	redisclient "gatehouse/internal/platform/redis"
	"gatehouse/internal/visitor/store"
)

// deps holds the backend wiring shared by serve, seed, and visitors.
type deps struct {
	store   store.VisitorStore
	audit   audit.Store
	health  *health.Handler
	closers []func() error
}

func (d *deps) close(logger *slog.Logger) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			logger.Warn("closing backend failed", "error", err)
		}
	}
}

// buildDeps connects the configured store backend and audit sink.
// The memory backend needs no connections; Postgres and Redis fail fast if
// unreachable so misconfiguration surfaces at startup, not first request.
func buildDeps(ctx context.Context, cfg config.Server, logger *slog.Logger) (*deps, error) {
	d := &deps{health: health.New(cfg.Environment)}

	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.Open(cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if db == nil {
			return nil, fmt.Errorf("store backend is postgres but DATABASE_URL is empty")
		}
		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		d.store = pg
		d.closers = append(d.closers, db.Close)
		d.health.RegisterCheck("postgres", db.Ping)

	case config.StoreRedis:
		client, err := redisclient.New(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if client == nil {
			return nil, fmt.Errorf("store backend is redis but REDIS_URL is empty")
		}
		d.store = store.NewRedis(client.Client)
		d.closers = append(d.closers, client.Close)
		d.health.RegisterCheck("redis", func() error {
			return client.Health(context.Background())
		})

	default:
		d.store = store.NewInMemory()
	}

	memorySink := audit.NewInMemoryStore()
	if cfg.Kafka.Brokers != "" {
		p, err := producer.New(cfg.Kafka, logger)
		if err != nil {
			d.close(logger)
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		d.closers = append(d.closers, p.Close)
		d.health.RegisterCheck("kafka", func() error {
			if !p.Healthy(context.Background()) {
				return fmt.Errorf("kafka unreachable")
			}
			return nil
		})
		// Kafka is the durable trail; the memory sink keeps reads local.
		d.audit = &audit.Tee{
			Primary:   audit.NewKafkaStore(p, cfg.Kafka.AuditTopic),
			Secondary: memorySink,
		}
	} else {
		d.audit = memorySink
	}

	return d, nil
}
