package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxFailures = 10
)

// LoginThrottle counts failed login attempts per email in Redis.
// Key format: login_failures:<email>, expiring after throttleWindow.
//
// The throttle fails open: if Redis is unreachable the check allows the
// attempt, so an outage degrades brute-force protection rather than logins.
type LoginThrottle struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewLoginThrottle(client *redis.Client, log zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, log: log}
}

// Allow reports whether another login attempt for key is permitted.
func (t *LoginThrottle) Allow(ctx context.Context, key string) bool {
	n, err := t.client.Get(ctx, t.key(key)).Int64()
	if err != nil {
		if err != redis.Nil {
			t.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		}
		return true
	}
	return n < throttleMaxFailures
}

// RecordFailure bumps the failure counter and refreshes the window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) {
	k := t.key(key)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, throttleWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		t.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) {
	if err := t.client.Del(ctx, t.key(key)).Err(); err != nil {
		t.log.Warn().Err(err).Msg("failed to reset login throttle")
	}
}

func (t *LoginThrottle) key(email string) string {
	return "login_failures:" + strings.ToLower(email)
}
