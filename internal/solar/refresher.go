package solar

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Refresher keeps the full body set warm in the response cache so list
// requests rarely pay for a cold upstream fetch.
type Refresher struct {
	svc   *Service
	every time.Duration
}

func NewRefresher(svc *Service, every time.Duration) *Refresher {
	if every <= 0 {
		every = 4 * time.Minute
	}
	return &Refresher{svc: svc, every: every}
}

func (r *Refresher) Run(ctx context.Context) {
	log.Info().Dur("every", r.every).Msg("cache refresher: started")
	t := time.NewTicker(r.every)
	defer t.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("cache refresher: stopping")
			return
		case <-t.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	if _, err := r.svc.fetchBodies(ctx, nil, "id,asc"); err != nil {
		log.Error().Err(err).Msg("cache refresher: prefetch failed")
	}
}
