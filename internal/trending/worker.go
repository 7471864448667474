package trending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	cacheKey = "trending:topics"
	cacheTTL = 12 * time.Hour

	refreshTimeout = 30 * time.Second
)

// TopicSource produces the merged daily trending topic list.
type TopicSource interface {
	DailyTrending(ctx context.Context) []string
}

// Worker refreshes the trending topic cache on a cron schedule so the
// HTTP handler can serve it without hitting the upstream feeds.
type Worker struct {
	source TopicSource
	rdb    *redis.Client
	logger *logrus.Logger
	cron   *cron.Cron
}

func NewWorker(source TopicSource, rdb *redis.Client, logger *logrus.Logger) *Worker {
	return &Worker{
		source: source,
		rdb:    rdb,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start refreshes once immediately, then every refreshHours.
func (w *Worker) Start(refreshHours int) error {
	if refreshHours <= 0 {
		refreshHours = 6
	}
	spec := fmt.Sprintf("@every %dh", refreshHours)
	if _, err := w.cron.AddFunc(spec, w.refresh); err != nil {
		return err
	}
	go w.refresh()
	w.cron.Start()
	w.logger.WithField("schedule", spec).Info("[Trending] worker started")
	return nil
}

func (w *Worker) Stop() {
	w.cron.Stop()
}

func (w *Worker) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	topics := w.source.DailyTrending(ctx)
	if len(topics) == 0 {
		w.logger.Warn("[Trending] refresh produced no topics, keeping cache")
		return
	}
	payload, err := json.Marshal(topics)
	if err != nil {
		w.logger.WithError(err).Error("[Trending] encode topics")
		return
	}
	if err := w.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
		w.logger.WithError(err).Warn("[Trending] cache write failed")
		return
	}
	w.logger.WithField("count", len(topics)).Info("[Trending] cache refreshed")
}

// Topics serves the cached list, falling back to a live fetch on a
// cache miss.
func (w *Worker) Topics(ctx context.Context) []string {
	raw, err := w.rdb.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var topics []string
		if jsonErr := json.Unmarshal(raw, &topics); jsonErr == nil {
			return topics
		}
	} else if !errors.Is(err, redis.Nil) {
		w.logger.WithError(err).Warn("[Trending] cache read failed")
	}
	return w.source.DailyTrending(ctx)
}
