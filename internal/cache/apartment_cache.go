package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"bnbBack/internal/models"
)

// ApartmentCache keeps composite detail views in Redis.
type ApartmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewApartmentCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*ApartmentCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &ApartmentCache{client: client, ttl: ttl}, nil
}

func detailKey(id int) string {
	return "apartment:detail:" + strconv.Itoa(id)
}

func versionKey(id int) string {
	return detailKey(id) + ":version"
}

// GetDetail returns nil, nil on a cache miss.
func (c *ApartmentCache) GetDetail(ctx context.Context, id int) (*models.ApartmentDetail, error) {
	data, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var detail models.ApartmentDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// DetailVersion returns the invalidation counter of the apartment. It must be
// read before the view is assembled and handed back to SetDetail.
func (c *ApartmentCache) DetailVersion(ctx context.Context, id int) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetDetail stores the view only while the version is still current. A view
// built before a concurrent invalidation is dropped without error.
func (c *ApartmentCache) SetDetail(ctx context.Context, detail *models.ApartmentDetail, version int64) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	vkey := versionKey(detail.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleDetail
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, detailKey(detail.ID), data, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, errStaleDetail) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateDetail bumps the version and drops the cached view atomically.
func (c *ApartmentCache) InvalidateDetail(ctx context.Context, id int) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(id))
		pipe.Del(ctx, detailKey(id))
		return nil
	})
	return err
}

func (c *ApartmentCache) Close() error {
	return c.client.Close()
}

var errStaleDetail = errors.New("stale detail view")

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) GetDetail(context.Context, int) (*models.ApartmentDetail, error) { return nil, nil }
func (Noop) DetailVersion(context.Context, int) (int64, error) { return 0, nil }
func (Noop) SetDetail(context.Context, *models.ApartmentDetail, int64) error { return nil }
func (Noop) InvalidateDetail(context.Context, int) error { return nil }
