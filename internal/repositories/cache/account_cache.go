// Package cache keeps read-mostly ledger data in Redis in front of the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reconciler/internal/middleware"
)

const chartKeyPrefix = "recon:coa:"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// AccountCache caches each company's chart of accounts for the resolver.
// Lookups by ID always go to the inner reader so edits never validate against a stale chart.
// Redis failures fall back to the inner reader.
type AccountCache struct {
	inner portsrepo.AccountReader
	store cmdable
	ttl   time.Duration
}

// NewAccountCache wraps inner with a Redis-backed chart cache.
func NewAccountCache(inner portsrepo.AccountReader, client *redis.Client, ttl time.Duration) *AccountCache {
	return newAccountCache(inner, client, ttl)
}

func newAccountCache(inner portsrepo.AccountReader, store cmdable, ttl time.Duration) *AccountCache {
	return &AccountCache{inner: inner, store: store, ttl: ttl}
}

var _ portsrepo.AccountReader = (*AccountCache)(nil)

// ChartKey is the Redis key holding a company's chart.
func ChartKey(companyID string) string {
	return chartKeyPrefix + companyID
}

func (c *AccountCache) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	key := ChartKey(companyID)

	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var accounts []domain.Account
		if err := json.Unmarshal(raw, &accounts); err == nil {
			return accounts, nil
		}
		logger.Warn("Discarding undecodable cached chart", slog.String("company_id", companyID))
	case !errors.Is(err, redis.Nil):
		logger.Warn("Chart cache read failed", slog.String("company_id", companyID), slog.String("error", err.Error()))
	}

	accounts, err := c.inner.ListAccountsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(accounts)
	if err != nil {
		return nil, fmt.Errorf("encode chart of %s: %w", companyID, err)
	}
	if err := c.store.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn("Chart cache write failed", slog.String("company_id", companyID), slog.String("error", err.Error()))
	}
	return accounts, nil
}

func (c *AccountCache) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	return c.inner.FindAccountsByIDs(ctx, companyID, accountIDs)
}

// Invalidate drops a company's cached chart.
func (c *AccountCache) Invalidate(ctx context.Context, companyID string) error {
	return c.store.Del(ctx, ChartKey(companyID)).Err()
}

// NewRedisClient parses url, connects and verifies connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
