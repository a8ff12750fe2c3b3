package views

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "views:article:"

// Counter accumulates article view counts in Redis and periodically
// folds them into the database, so hot articles don't turn every
// public read into a write.
type Counter struct {
	client   *redis.Client
	articles *repository.ArticleRepository
	interval time.Duration

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewCounter(redisURL string, articles *repository.ArticleRepository, interval time.Duration) (*Counter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Counter{
		client:   client,
		articles: articles,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Record increments the pending view count for an article.
func (c *Counter) Record(articleID uuid.UUID) {
	if err := c.client.Incr(context.Background(), keyPrefix+articleID.String()).Err(); err != nil {
		logger.Log.Warn("View counter increment failed",
			zap.String("article_id", articleID.String()),
			zap.Error(err),
		)
	}
}

// Start launches the background flusher. Call Stop to flush a final
// time and release the Redis client.
func (c *Counter) Start() {
	c.started = true
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Flush()
			case <-c.stop:
				c.Flush()
				return
			}
		}
	}()
}

// Flush drains all pending counters into the database.
func (c *Counter) Flush() {
	ctx := context.Background()

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			logger.Log.Error("View counter scan failed", zap.Error(err))
			return
		}

		for _, key := range keys {
			val, err := c.client.GetDel(ctx, key).Result()
			if err != nil {
				if err != redis.Nil {
					logger.Log.Warn("View counter read failed",
						zap.String("key", key),
						zap.Error(err),
					)
				}
				continue
			}

			delta, err := strconv.ParseInt(val, 10, 64)
			if err != nil || delta == 0 {
				continue
			}

			id, err := uuid.Parse(key[len(keyPrefix):])
			if err != nil {
				continue
			}

			if err := c.articles.IncrementViews(id, delta); err != nil {
				logger.Log.Error("View counter flush failed",
					zap.String("article_id", id.String()),
					zap.Int64("delta", delta),
					zap.Error(err),
				)
			}
		}

		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// Stop flushes remaining counts and closes the Redis client. Safe to
// call whether or not Start ever ran.
func (c *Counter) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
		if c.started {
			<-c.done
		} else {
			c.Flush()
		}
		_ = c.client.Close()
	})
}
