// Package guard marks pending tokens as consumed so a staged registration commits at most once.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dtroode/otp-signup/internal/model"
)

const keyPrefix = "otp-signup:consumed:"

// minHold keeps a marker alive briefly even for tokens at the edge of expiry.
const minHold = time.Second

type redisAPI interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ model.ConsumptionGuard = (*Redis)(nil)

// Redis stores consumption markers in redis until the token would have expired anyway.
type Redis struct {
	client redisAPI
	now    func() time.Time
}

// NewRedis creates a guard on top of a connected client.
func NewRedis(client *redis.Client) *Redis {
	return newRedis(client)
}

func newRedis(client redisAPI) *Redis {
	return &Redis{client: client, now: time.Now}
}

// Connect opens a redis client and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Acquire sets the marker for tokenID. It returns false when the marker already exists.
func (g *Redis) Acquire(ctx context.Context, tokenID string, until time.Time) (bool, error) {
	hold := until.Sub(g.now())
	if hold < minHold {
		hold = minHold
	}

	ok, err := g.client.SetNX(ctx, keyPrefix+tokenID, g.now().Unix(), hold).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set consumption marker: %w", err)
	}
	return ok, nil
}

// Release removes the marker so the token can be presented again.
func (g *Redis) Release(ctx context.Context, tokenID string) error {
	if err := g.client.Del(ctx, keyPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("failed to release consumption marker: %w", err)
	}
	return nil
}
