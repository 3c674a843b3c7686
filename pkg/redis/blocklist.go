package redis

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Blocklist is a Redis set used as a policy blocklist. Several processes can
// share it and update it at runtime; lookups see changes immediately.
//
// Lookup failures are returned to the caller so that policy evaluation reports
// an error instead of silently allowing or denying.
type Blocklist struct {
	client    redis.UniversalClient
	key       string
	normalize func(string) string
}

// BlocklistOption configures a Blocklist.
type BlocklistOption func(*Blocklist)

// WithNormalizer applies fn to every stored and queried value.
func WithNormalizer(fn func(string) string) BlocklistOption {
	return func(b *Blocklist) {
		if fn != nil {
			b.normalize = fn
		}
	}
}

// NewBlocklist returns a blocklist stored under key.
func NewBlocklist(client redis.UniversalClient, key string, opts ...BlocklistOption) (*Blocklist, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	b := &Blocklist{client: client, key: key, normalize: strings.TrimSpace}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Key returns the Redis key holding the set.
func (b *Blocklist) Key() string { return b.key }

// Contains reports whether value is in the set. Blank values are never contained.
func (b *Blocklist) Contains(ctx context.Context, value string) (bool, error) {
	value = b.normalize(value)
	if value == "" {
		return false, nil
	}
	return b.client.SIsMember(ctx, b.key, value).Result()
}

// Add inserts values. Blank values are ignored.
func (b *Blocklist) Add(ctx context.Context, values ...string) error {
	members := b.members(values)
	if len(members) == 0 {
		return nil
	}
	return b.client.SAdd(ctx, b.key, members...).Err()
}

// Remove deletes values.
func (b *Blocklist) Remove(ctx context.Context, values ...string) error {
	members := b.members(values)
	if len(members) == 0 {
		return nil
	}
	return b.client.SRem(ctx, b.key, members...).Err()
}

// Replace swaps the whole set in a single transaction.
func (b *Blocklist) Replace(ctx context.Context, values ...string) error {
	members := b.members(values)
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.key)
		if len(members) > 0 {
			pipe.SAdd(ctx, b.key, members...)
		}
		return nil
	})
	return err
}

// Len returns the number of entries.
func (b *Blocklist) Len(ctx context.Context) (int64, error) {
	return b.client.SCard(ctx, b.key).Result()
}

func (b *Blocklist) members(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v = b.normalize(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
