package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/Domenick1991/airline/internal/kafka"
)

const defaultDedupTTL = 24 * time.Hour

// Deduplicator remembers processed event ids. MarkEventProcessed returns
// false when the id was seen before.
type Deduplicator interface {
	MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

type CacheInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type Sender interface {
	Notify(ctx context.Context, event kafka.TicketEvent) error
}

// Processor handles ticket events delivered at least once by the consumer.
type Processor struct {
	dedup    Deduplicator
	cache    CacheInvalidator
	sender   Sender
	log      *slog.Logger
	dedupTTL time.Duration
}

func NewProcessor(dedup Deduplicator, cache CacheInvalidator, sender Sender, log *slog.Logger) *Processor {
	return &Processor{
		dedup:    dedup,
		cache:    cache,
		sender:   sender,
		log:      log,
		dedupTTL: defaultDedupTTL,
	}
}

func (p *Processor) Handle(ctx context.Context, event kafka.TicketEvent) error {
	if p.dedup != nil && event.EventID != "" {
		first, err := p.dedup.MarkEventProcessed(ctx, event.EventID, p.dedupTTL)
		if err != nil {
			p.log.Warn("event dedup unavailable, processing anyway", "event_id", event.EventID, "error", err)
		} else if !first {
			p.log.Debug("skip duplicate ticket event", "event_id", event.EventID)
			return nil
		}
	}

	if p.cache != nil {
		if err := p.cache.InvalidateFlights(ctx); err != nil {
			p.log.Warn("failed to invalidate flights cache", "event_id", event.EventID, "error", err)
		}
	}
	return p.sender.Notify(ctx, event)
}
