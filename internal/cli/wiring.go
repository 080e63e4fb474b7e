package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/config"
	"github.com/newn79677-coder/PRACTICE-APP/internal/infra/memory"
	pgbank "github.com/newn79677-coder/PRACTICE-APP/internal/infra/postgres"
	redisstore "github.com/newn79677-coder/PRACTICE-APP/internal/infra/redis"
)

// deps is the wired collaborator set shared by the serve, play and backup
// commands.
type deps struct {
	store   app.StateStore
	bank    *memory.BankRepository
	cleanup func()
}

// buildDeps wires the persistence collaborators from config: Redis when an
// address is configured, the in-memory store otherwise; the question bank
// loads from Postgres when a URL is configured, else from the state store,
// and always degrades to the built-in default set.
func buildDeps(ctx context.Context, cfg config.Config, log zerolog.Logger) (*deps, error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var store app.StateStore
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cleanups = append(cleanups, func() { _ = client.Close() })
		store = redisstore.NewStateStore(client)
	} else {
		store = memory.NewStateStore()
	}

	var loader memory.BankLoader = memory.NewStoreBankLoader(store)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			cleanup()
			return nil, err
		}
		cleanups = append(cleanups, pool.Close)
		loader = pgbank.NewBankLoader(pool, cfg.Postgres.Bank)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	bank := memory.NewBankRepository(loader, bankTTL, log)

	return &deps{store: store, bank: bank, cleanup: cleanup}, nil
}
