package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLimitReached is wrapped by every error Acquire returns because a limit was hit.
var ErrLimitReached = errors.New("rate limit reached")

// RateLimiterOptions configures the limits of a RateLimiter. A zero limit is not enforced.
type RateLimiterOptions struct {
	MaxActiveTransactions    int // concurrent slots
	MaxTransactionsPerSecond int // sliding 1s window
	MaxTransactionsPerMinute int // sliding 60s window
	Namespace                string
	// TransactionTTL bounds how long a leaked active slot survives
	TransactionTTL time.Duration
}

func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{TransactionTTL: time.Minute}
}

func (o *RateLimiterOptions) WithMaxActiveTransactions(limit int) *RateLimiterOptions {
	o.MaxActiveTransactions = limit
	return o
}

func (o *RateLimiterOptions) WithMaxTransactionsPerSecond(limit int) *RateLimiterOptions {
	o.MaxTransactionsPerSecond = limit
	return o
}

func (o *RateLimiterOptions) WithMaxTransactionsPerMinute(limit int) *RateLimiterOptions {
	o.MaxTransactionsPerMinute = limit
	return o
}

func (o *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	o.Namespace = namespace
	return o
}

func (o *RateLimiterOptions) WithTransactionTTL(ttl time.Duration) *RateLimiterOptions {
	o.TransactionTTL = ttl
	return o
}

func (o *RateLimiterOptions) Validate() error {
	switch {
	case o.MaxActiveTransactions < 0 || o.MaxTransactionsPerSecond < 0 || o.MaxTransactionsPerMinute < 0:
		return errors.New("rate limits must be non-negative")
	case o.MaxActiveTransactions == 0 && o.MaxTransactionsPerSecond == 0 && o.MaxTransactionsPerMinute == 0:
		return errors.New("at least one limit must be configured")
	case o.TransactionTTL <= 0:
		return errors.New("transaction TTL must be positive")
	}
	return nil
}

// acquireScript checks every configured limit and takes a slot atomically.
// Result: 1 = acquired, 0 = active limit, -1 = TPS limit, -2 = TPM limit
var acquireScript = redis.NewScript(`
	local active_key = KEYS[1]
	local tps_key = KEYS[2]
	local tpm_key = KEYS[3]

	local max_active = tonumber(ARGV[1])
	local max_tps = tonumber(ARGV[2])
	local max_tpm = tonumber(ARGV[3])
	local transaction_id = ARGV[4]
	local now_nanos = tonumber(ARGV[5])
	local transaction_ttl = tonumber(ARGV[6])

	if max_active > 0 then
		local active_count = tonumber(redis.call("GET", active_key)) or 0
		if active_count >= max_active then
			return 0
		end
	end

	if max_tps > 0 then
		local tps_cutoff = now_nanos - 1000000000
		redis.call("ZREMRANGEBYSCORE", tps_key, "-inf", tps_cutoff)
		if redis.call("ZCARD", tps_key) >= max_tps then
			return -1
		end
	end

	if max_tpm > 0 then
		local tpm_cutoff = now_nanos - 60000000000
		redis.call("ZREMRANGEBYSCORE", tpm_key, "-inf", tpm_cutoff)
		if redis.call("ZCARD", tpm_key) >= max_tpm then
			return -2
		end
	end

	if max_active > 0 then
		redis.call("INCR", active_key)
		redis.call("EXPIRE", active_key, transaction_ttl * 2)
	end
	if max_tps > 0 then
		redis.call("ZADD", tps_key, now_nanos, transaction_id)
		redis.call("EXPIRE", tps_key, 2)
	end
	if max_tpm > 0 then
		redis.call("ZADD", tpm_key, now_nanos, transaction_id)
		redis.call("EXPIRE", tpm_key, 61)
	end

	return 1
`)

// RateLimiter is a Redis-backed limiter shared by every instance of the service
type RateLimiter struct {
	client        *Client
	key           string
	opts          *RateLimiterOptions
	activeKeyName string
	tpsKeyName    string
	tpmKeyName    string
}

// NewRateLimiter creates a new distributed rate limiter
func NewRateLimiter(client *Client, key string, opts *RateLimiterOptions) (*RateLimiter, error) {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limiter := &RateLimiter{
		client: client,
		key:    key,
		opts:   opts,
	}
	limiter.activeKeyName = limiter.buildKey("active")
	limiter.tpsKeyName = limiter.buildKey("tps")
	limiter.tpmKeyName = limiter.buildKey("tpm")

	return limiter, nil
}

// buildKey constructs the full key using Namespace::key::suffix format
func (rl *RateLimiter) buildKey(suffix string) string {
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + rl.key + "::" + suffix
	}
	return rl.key + "::" + suffix
}

// Acquire takes a transaction slot or fails immediately. Limit errors wrap ErrLimitReached;
// any other error means Redis could not be asked.
func (rl *RateLimiter) Acquire(ctx context.Context) (string, error) {
	transactionID := uuid.NewString()

	resultCode, err := acquireScript.Run(ctx, rl.client.GetClient(),
		[]string{rl.activeKeyName, rl.tpsKeyName, rl.tpmKeyName},
		rl.opts.MaxActiveTransactions,
		rl.opts.MaxTransactionsPerSecond,
		rl.opts.MaxTransactionsPerMinute,
		transactionID,
		time.Now().UnixNano(),
		int(rl.opts.TransactionTTL.Seconds()),
	).Int64()
	if err != nil {
		return "", fmt.Errorf("failed to acquire rate limiter: %w", err)
	}

	switch resultCode {
	case 1:
		return transactionID, nil
	case 0:
		return "", fmt.Errorf("%w: active transactions limit (%d)", ErrLimitReached, rl.opts.MaxActiveTransactions)
	case -1:
		return "", fmt.Errorf("%w: transactions per second limit (%d TPS)", ErrLimitReached, rl.opts.MaxTransactionsPerSecond)
	case -2:
		return "", fmt.Errorf("%w: transactions per minute limit (%d TPM)", ErrLimitReached, rl.opts.MaxTransactionsPerMinute)
	default:
		return "", fmt.Errorf("unknown rate limiter result: %d", resultCode)
	}
}

// Release gives back an active slot. Sliding-window entries expire on their own.
func (rl *RateLimiter) Release(ctx context.Context, transactionID string) error {
	if transactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if rl.opts.MaxActiveTransactions == 0 {
		return nil
	}

	count, err := rl.client.Decr(ctx, rl.activeKeyName)
	if err != nil {
		return fmt.Errorf("failed to release transaction: %w", err)
	}
	if count < 0 {
		_ = rl.client.Set(ctx, rl.activeKeyName, 0, rl.opts.TransactionTTL*2)
	}
	return nil
}
