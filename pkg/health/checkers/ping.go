package checkers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = time.Second

// Ping probes a dependency with a bounded round trip.
type Ping struct {
	name string
	ping func(ctx context.Context) error
}

func (p Ping) Name() string { return p.name }

func (p Ping) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.ping(ctx)
}

func Postgres(pool *pgxpool.Pool) Ping {
	return Ping{name: "postgres", ping: pool.Ping}
}

func Redis(client *redis.Client) Ping {
	return Ping{name: "redis", ping: func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}}
}
