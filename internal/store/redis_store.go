package store

import (
	"context"
	"encoding/json"
	"fmt"

	"court-booking/internal/status"
	"court-booking/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps booking records as JSON values with per-court and
// per-user id sets for scans, plus an active-pair pointer key so the
// duplicate-request check is a single lookup.
//
// Key layout:
//
//	booking:{id}                  JSON record
//	court:bookings:{courtId}      set of booking ids
//	user:bookings:{userId}        set of booking ids
//	active:{courtId}:{userId}     id of the pair's active booking
type RedisStore struct {
	Redis *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{Redis: redisClient}
}

func bookingKey(id string) string { return fmt.Sprintf("booking:%s", id) }

func courtKey(courtID string) string { return fmt.Sprintf("court:bookings:%s", courtID) }

func userKey(userID string) string { return fmt.Sprintf("user:bookings:%s", userID) }

func activeKey(courtID, userID string) string {
	return fmt.Sprintf("active:%s:%s", courtID, userID)
}

func (s *RedisStore) Put(ctx context.Context, b *models.Booking) error {
	return s.PutAll(ctx, b)
}

// PutAll writes every record, its index-set memberships and its
// active-pair pointer in one MULTI/EXEC transaction, so the record, the
// scan sets and the pointer can never be observed mutually inconsistent.
func (s *RedisStore) PutAll(ctx context.Context, bookings ...*models.Booking) error {
	payloads := make([][]byte, len(bookings))
	for i, b := range bookings {
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		payloads[i] = data
	}

	_, err := s.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, b := range bookings {
			pipe.Set(ctx, bookingKey(b.ID), payloads[i], 0)
			pipe.SAdd(ctx, courtKey(b.CourtID), b.ID)
			pipe.SAdd(ctx, userKey(b.UserID), b.ID)

			pairKey := activeKey(b.CourtID, b.UserID)
			if b.Active() {
				pipe.Set(ctx, pairKey, b.ID, 0)
			} else {
				pipe.Del(ctx, pairKey)
			}
		}
		return nil
	})
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Booking, error) {
	data, err := s.Redis.Get(ctx, bookingKey(id)).Result()
	if err == redis.Nil {
		return nil, status.NewNotFound("booking", id)
	} else if err != nil {
		return nil, err
	}

	var b models.Booking
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *RedisStore) ByCourt(ctx context.Context, courtID string) ([]*models.Booking, error) {
	return s.scanSet(ctx, courtKey(courtID))
}

func (s *RedisStore) ByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	return s.scanSet(ctx, userKey(userID))
}

func (s *RedisStore) scanSet(ctx context.Context, setKey string) ([]*models.Booking, error) {
	ids, err := s.Redis.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, err
	}

	bookings := make([]*models.Booking, 0, len(ids))
	if len(ids) == 0 {
		return bookings, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = bookingKey(id)
	}

	values, err := s.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		data, ok := v.(string)
		if !ok {
			// id set member without a record; reconciliation territory
			continue
		}
		var b models.Booking
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (s *RedisStore) ActiveByUserAndCourt(ctx context.Context, userID, courtID string) (*models.Booking, error) {
	id, err := s.Redis.Get(ctx, activeKey(courtID, userID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
