//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Gunvolt24/storefront/internal/repo/postgres"
)

var tcLog = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycleLog — одна строка лога на каждую стадию жизни контейнера.
func lifecycleLog(l *log.Logger) tc.ContainerLifecycleHooks {
	step := func(stage string) []tc.ContainerHook {
		return []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			l.Printf("%s id=%s", stage, id)
			return nil
		}}
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{func(_ context.Context, req tc.ContainerRequest) error {
			l.Printf("create image=%s", req.Image)
			return nil
		}},
		PostStarts:     step("started"),
		PostReadies:    step("ready"),
		PostTerminates: step("terminated"),
	}
}

// CatalogDB — Postgres каталога с накатанными миграциями.
type CatalogDB struct {
	Container *tcpostgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartCatalogDB — контейнер Postgres, пул через postgres.NewPool и встроенные миграции.
func StartCatalogDB(ctx context.Context) (*CatalogDB, error) {
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tc.WithLifecycleHooks(lifecycleLog(tcLog)),
		tcpostgres.WithDatabase("catalog"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("run postgres: %w", err)
	}
	db := &CatalogDB{Container: ctr}

	if db.DSN, err = ctr.ConnectionString(ctx, "sslmode=disable"); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}
	if db.Pool, err = postgres.NewPool(ctx, db.DSN, 5); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	if _, err = postgres.Migrate(ctx, db.Pool); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	return db, nil
}

// Truncate — пустая таблица товаров между тестами.
func (db *CatalogDB) Truncate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, "TRUNCATE products")
	return err
}

func (db *CatalogDB) Close(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	return db.Container.Terminate(ctx)
}
