package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix    = "session:"
	redisOwnerPrefix  = "session_owner:"
	maxCreateAttempts = 3
)

// RedisStore keeps sessions in Redis so several API processes can share them.
// Entries carry a native TTL, so Redis evicts them on its own. Each owner also
// has a set of its tokens so RemoveOwner can revoke them together.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    Clock
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, clock Clock) *RedisStore {
	if clock == nil {
		clock = time.Now
	}
	return &RedisStore{client: client, prefix: redisKeyPrefix, now: clock}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) ownerKey(kind OwnerKind, id string) string {
	return redisOwnerPrefix + string(kind) + ":" + id
}

func (r *RedisStore) Create(ctx context.Context, owner Owner, ttl time.Duration) (*Session, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	now := r.now()
	sess := Session{Owner: owner, CreatedAt: now, ExpiresAt: now.Add(ttl)}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session: failed to marshal: %w", err)
	}

	for i := 0; i < maxCreateAttempts; i++ {
		token, err := NewToken()
		if err != nil {
			return nil, err
		}
		ok, err := r.client.SetNX(ctx, r.key(token), data, ttl).Result()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ownerKey := r.ownerKey(owner.Kind, owner.ID)
		if _, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SAdd(ctx, ownerKey, token)
			pipe.Expire(ctx, ownerKey, ttl)
			return nil
		}); err != nil {
			_ = r.client.Del(ctx, r.key(token)).Err()
			return nil, fmt.Errorf("session: failed to index owner: %w", err)
		}
		sess.Token = token
		return &sess, nil
	}
	return nil, errors.New("session: could not allocate a unique token")
}

func (r *RedisStore) Lookup(ctx context.Context, token string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}
	sess.Token = token
	return &sess, nil
}

func (r *RedisStore) Remove(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}

// RemoveOwner deletes every token indexed under the owner along with the
// index itself. Tokens that already expired are not counted.
func (r *RedisStore) RemoveOwner(ctx context.Context, kind OwnerKind, id string) (int, error) {
	ownerKey := r.ownerKey(kind, id)
	tokens, err := r.client.SMembers(ctx, ownerKey).Result()
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		keys = append(keys, r.key(token))
	}
	var removed *redis.IntCmd
	if _, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.Del(ctx, keys...)
		pipe.Del(ctx, ownerKey)
		return nil
	}); err != nil {
		return 0, err
	}
	return int(removed.Val()), nil
}

// Sweep is a no-op: expired keys are dropped by Redis itself.
func (r *RedisStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}
