package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/abhijitabd5/sti-academy/internal/config"
)

const (
	keyQuoteClient = "quote:client:%s"
	keySubmitLock  = "enrollment:submit:lock:%s"
)

// QuoteLimiter throttles the public fee-quote endpoint per client address
// and serialises enrollment submissions per student phone. It is backed by
// redis when REDIS_ADDR is set, by in-process counters otherwise.
type QuoteLimiter struct {
	bucket *TokenBucket
	locker *Locker

	localBucket *localBucket
	localLocks  *localLockTable

	rate    float64
	burst   int
	lockTTL time.Duration
}

func NewQuoteLimiter(cfg config.Config) *QuoteLimiter {
	l := &QuoteLimiter{
		rate:    cfg.QuoteRatePerSecond,
		burst:   cfg.QuoteBurst,
		lockTTL: time.Duration(cfg.SubmitLockSeconds) * time.Second,
	}

	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: strings.TrimSpace(cfg.RedisPassword),
		})
		l.bucket = NewTokenBucket(client)
		l.locker = NewLocker(client)
		return l
	}

	l.localBucket = newLocalBucket()
	l.localLocks = newLocalLockTable()
	return l
}

func (l *QuoteLimiter) Enabled() bool {
	return l != nil
}

func (l *QuoteLimiter) AllowClient(ctx context.Context, clientAddr string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	key := fmt.Sprintf(keyQuoteClient, strings.TrimSpace(clientAddr))
	if l.bucket == nil {
		return l.localBucket.Allow(key, l.rate, l.burst), nil
	}
	res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
	if err != nil {
		return false, err
	}
	return res.Allowed, nil
}

func (l *QuoteLimiter) TryLockSubmit(ctx context.Context, studentPhone string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keySubmitLock, strings.TrimSpace(studentPhone))
	if l.locker == nil {
		token, ok := l.localLocks.Acquire(key, l.lockTTL)
		return token, ok, nil
	}
	return l.locker.Acquire(ctx, key, l.lockTTL)
}

func (l *QuoteLimiter) ReleaseSubmit(ctx context.Context, studentPhone, token string) error {
	if !l.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keySubmitLock, strings.TrimSpace(studentPhone))
	if l.locker == nil {
		l.localLocks.Release(key, token)
		return nil
	}
	return l.locker.Release(ctx, key, token)
}
