// Package cache keeps recently read student profiles so repeated dashboard reads skip the database.
// Every mutation of a student must call Invalidate for that student.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hostelhub/models"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

type StudentCache interface {
	Get(ctx context.Context, id string) (*models.Student, bool)
	Set(ctx context.Context, student *models.Student)
	Invalidate(ctx context.Context, id string)
}

// Noop is used when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.Student, bool) { return nil, false }
func (Noop) Set(context.Context, *models.Student)                {}
func (Noop) Invalidate(context.Context, string)                  {}

type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis connects to addr and pings it. Callers fall back to Noop on error.
func NewRedis(ctx context.Context, addr string, logger *slog.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return &Redis{rdb: rdb, ttl: defaultTTL, logger: logger}, nil
}

func key(id string) string {
	return fmt.Sprintf("student:%s:profile", id)
}

func (c *Redis) Get(ctx context.Context, id string) (*models.Student, bool) {
	data, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error("redis GET failed", "error", err, "student_id", id)
		}
		return nil, false
	}

	var student models.Student
	if err := json.Unmarshal(data, &student); err != nil {
		c.logger.Warn("failed to unmarshal cached student", "student_id", id, "error", err)
		return nil, false
	}
	return &student, true
}

func (c *Redis) Set(ctx context.Context, student *models.Student) {
	data, err := json.Marshal(student)
	if err != nil {
		c.logger.Error("failed to marshal student for caching", "error", err, "student_id", student.ID)
		return
	}
	if err := c.rdb.Set(ctx, key(student.ID), data, c.ttl).Err(); err != nil {
		c.logger.Error("redis SET failed", "error", err, "student_id", student.ID)
	}
}

func (c *Redis) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		c.logger.Error("redis DEL failed", "error", err, "student_id", id)
	}
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}
