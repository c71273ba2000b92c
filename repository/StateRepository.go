package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"luxeStore/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// StateRepository keeps the persisted subset of a session under a name.
// A missing or unreadable blob is reported as exists == false.
type StateRepository interface {
	LoadState(name string) (state models.PersistedState, exists bool, err error)
	SaveState(name string, state models.PersistedState) (err error)
	DeleteState(name string) (err error)
}

func encodeState(state models.PersistedState) ([]byte, error) {
	return json.Marshal(state)
}

func decodeState(name string, data []byte) (state models.PersistedState, ok bool) {
	if err := json.Unmarshal(data, &state); err != nil {
		logrus.WithField("state", name).Warnf("decodeState: discarding malformed state: %v", err)
		return models.PersistedState{}, false
	}
	return state, true
}

type RedisStateRepo struct {
	rdb *redis.Client
	ctx context.Context
	ttl time.Duration
}

// NewRedisStateRepository stores each state as one JSON string key. A zero
// ttl keeps keys forever.
func NewRedisStateRepository(redis_conn *redis.Client, _ctx context.Context, ttl time.Duration) (StateRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisStateRepo{
		rdb: redis_conn,
		ctx: _ctx,
		ttl: ttl,
	}, nil
}

func (r *RedisStateRepo) SaveState(name string, state models.PersistedState) (err error) {
	jsonData, err := encodeState(state)
	if err != nil {
		logrus.Errorf("SaveState: Marshal: %v", err)
		err = models.ErrServerError
		return
	}
	err = r.rdb.Set(r.ctx, name, jsonData, r.ttl).Err()
	if err != nil {
		logrus.Errorf("SaveState: redis set: %v", err)
		err = models.ErrServerError
	}
	return
}

func (r *RedisStateRepo) LoadState(name string) (state models.PersistedState, exists bool, err error) {
	val, e := r.rdb.Get(r.ctx, name).Bytes()
	if e != nil {
		if errors.Is(e, redis.Nil) {
			return
		}
		logrus.Errorf("LoadState: redis get: %v", e)
		err = models.ErrServerError
		return
	}
	state, exists = decodeState(name, val)
	return
}

func (r *RedisStateRepo) DeleteState(name string) (err error) {
	err = r.rdb.Del(r.ctx, name).Err()
	if err != nil {
		logrus.Errorf("DeleteState: %v", err)
		err = models.ErrServerError
	}
	return
}
