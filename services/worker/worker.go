package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/philippdrebes/MSCIDS-CIP02/internal/pipeline"
	"github.com/philippdrebes/MSCIDS-CIP02/logger"
	"github.com/philippdrebes/MSCIDS-CIP02/pkg/errors"
	"github.com/philippdrebes/MSCIDS-CIP02/services/cache"
	"github.com/philippdrebes/MSCIDS-CIP02/services/publisher"
)

// seenTTL bounds how long a published link suppresses republishing
const seenTTL = 30 * 24 * time.Hour

// BatchLoader delivers one batch of scraper output into the worker
type BatchLoader interface {
	Load() (pipeline.Batch, error)
}

// Message is the wire shape of one published route: the canonical record
// plus its duplicate-candidate annotation for downstream review
type Message struct {
	Route      interface{} `json:"route"`
	Duplicates []string    `json:"duplicate_candidates"`
}

// Worker runs the pipeline over one batch and publishes the result
type Worker struct {
	ctx       context.Context
	loader    BatchLoader
	pipe      *pipeline.Pipeline
	publisher publisher.Publisher
	cache     cache.CacheService
	log       *logger.Logger
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	loader BatchLoader,
	pipe *pipeline.Pipeline,
	pub publisher.Publisher,
	cacheSvc cache.CacheService,
) *Worker {
	return &Worker{
		ctx:       ctx,
		loader:    loader,
		pipe:      pipe,
		publisher: pub,
		cache:     cacheSvc,
		log:       logger.ForWorker(),
	}
}

// Run loads a batch, runs the pipeline and publishes every route that has
// not gone out in a previous run. The batch is all-or-nothing up to the
// publishing stage; a publish failure aborts so the caller can retry
// (delivery downstream is at-least-once).
func (w *Worker) Run() error {
	batch, err := w.loader.Load()
	if err != nil {
		return err
	}

	result, err := w.pipe.Run(batch)
	if err != nil {
		return err
	}

	published := 0
	skipped := 0
	for i := range result.Routes {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		r := &result.Routes[i]
		if w.alreadySeen(r.ID()) {
			skipped++
			continue
		}

		payload, err := json.Marshal(Message{
			Route:      r,
			Duplicates: result.Duplicates[r.ID()],
		})
		if err != nil {
			return err
		}

		if err := w.publisher.Publish(string(r.Source), payload); err != nil {
			return errors.NewPublisher(string(r.Source), "could not publish route "+r.Link, err)
		}
		w.markSeen(r.ID())
		published++
	}

	if err := w.publisher.TrimStreams(); err != nil {
		w.log.Error().Err(err).Msg("Stream trimming failed")
	}

	w.log.Info().
		Int("published", published).
		Int("skipped_seen", skipped).
		Msg("Batch complete")
	return nil
}

// alreadySeen reports whether a route link went out in an earlier run. Cache
// trouble degrades to "not seen": a duplicate publish is tolerated, a
// dropped route is not.
func (w *Worker) alreadySeen(id string) bool {
	if w.cache == nil {
		return false
	}
	_, err := w.cache.Get(id)
	return err == nil
}

func (w *Worker) markSeen(id string) {
	if w.cache == nil {
		return
	}
	if err := w.cache.Set(id, []byte("1"), seenTTL); err != nil {
		w.log.Warn().Err(err).Str("id", id).Msg("Could not mark route as seen")
	}
}
