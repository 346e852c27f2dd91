package usagestore

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"zurbo/internal/domain/usage"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrContention = errs.New("usage record contended beyond retry budget")

const (
	fieldHour      = "requests_this_hour"
	fieldDay       = "requests_this_day"
	fieldActive    = "active_request_count"
	fieldLastAt    = "last_request_at"
	fieldBlocked   = "blocked_until"
	fieldUpdatedAt = "updated_at"
)

// RedisStore keeps each record in a hash and serializes writers with
// WATCH/MULTI, retrying when another writer touched the key first.
type RedisStore struct {
	rdb        redis.UniversalClient
	prefix     string
	maxRetries int
}

type RedisOption func(*RedisStore)

func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithMaxRetries(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

func NewRedisStore(rdb redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:        rdb,
		prefix:     "zurbo",
		maxRetries: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(userID uuid.UUID) string {
	return s.prefix + ":usage:" + userID.String()
}

func (s *RedisStore) Mutate(ctx context.Context, userID uuid.UUID, fn shared.MutateFunc) (*usage.Record, error) {
	key := s.key(userID)

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		var out *usage.Record
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			vals, err := tx.HGetAll(ctx, key).Result()
			if err != nil {
				return err
			}
			rec, err := decodeRecord(userID, vals)
			if err != nil {
				return err
			}
			changed, err := fn(rec)
			if err != nil {
				return err
			}
			if changed {
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.HSet(ctx, key, encodeRecord(rec))
					return nil
				})
				if err != nil {
					return err
				}
			}
			out = rec
			return nil
		}, key)

		if err == nil {
			return out, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}

	return nil, errs.Wrapf(ErrContention, "user %s", userID)
}

func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (*usage.Record, error) {
	vals, err := s.rdb.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, errs.Wrap(err, "failed to read usage record")
	}
	return decodeRecord(userID, vals)
}

func encodeRecord(rec *usage.Record) map[string]any {
	return map[string]any{
		fieldHour:      rec.RequestsThisHour(),
		fieldDay:       rec.RequestsThisDay(),
		fieldActive:    rec.ActiveRequestCount(),
		fieldLastAt:    encodeTime(rec.LastRequestAt()),
		fieldBlocked:   encodeTime(rec.BlockedUntil()),
		fieldUpdatedAt: encodeTime(ptr(rec.UpdatedAt())),
	}
}

// decodeRecord treats an empty hash as the zero record.
func decodeRecord(userID uuid.UUID, vals map[string]string) (*usage.Record, error) {
	if len(vals) == 0 {
		return usage.NewRecord(userID), nil
	}

	hour, err := decodeInt(vals[fieldHour])
	if err != nil {
		return nil, errs.Wrap(err, fieldHour)
	}
	day, err := decodeInt(vals[fieldDay])
	if err != nil {
		return nil, errs.Wrap(err, fieldDay)
	}
	active, err := decodeInt(vals[fieldActive])
	if err != nil {
		return nil, errs.Wrap(err, fieldActive)
	}
	lastAt, err := decodeTime(vals[fieldLastAt])
	if err != nil {
		return nil, errs.Wrap(err, fieldLastAt)
	}
	blocked, err := decodeTime(vals[fieldBlocked])
	if err != nil {
		return nil, errs.Wrap(err, fieldBlocked)
	}
	updatedAt, err := decodeTime(vals[fieldUpdatedAt])
	if err != nil {
		return nil, errs.Wrap(err, fieldUpdatedAt)
	}

	var updated time.Time
	if updatedAt != nil {
		updated = *updatedAt
	}
	return usage.ReconstructRecord(userID, hour, day, active, lastAt, blocked, updated), nil
}

func decodeInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// Times are stored as Unix microseconds; "" means absent.
func encodeTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixMicro(), 10)
}

func decodeTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	micros, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	t := time.UnixMicro(micros).UTC()
	return &t, nil
}

func ptr[T any](v T) *T { return &v }
