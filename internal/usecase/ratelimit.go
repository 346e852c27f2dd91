package usecase

//go:generate mockgen -source=ratelimit.go -destination=../../tests/mock/usecase/ratelimit_mock.go -package=usecasemock

import (
	"context"
	"log/slog"
	"time"

	"zurbo/internal/domain/usage"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/pkg/metrics"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrRateLimited = errs.New("service request rate limited")

// RateLimitError carries the rejecting decision so callers can render it.
type RateLimitError struct {
	Decision usage.Decision
}

func (e *RateLimitError) Error() string {
	return "rate limited: " + e.Decision.Reason.String()
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

type UsageView struct {
	UserID             uuid.UUID    `json:"user_id"`
	RequestsThisHour   int          `json:"requests_this_hour"`
	RequestsThisDay    int          `json:"requests_this_day"`
	ActiveRequestCount int          `json:"active_request_count"`
	LastRequestAt      *time.Time   `json:"last_request_at,omitempty"`
	BlockedUntil       *time.Time   `json:"blocked_until,omitempty"`
	Blocked            bool         `json:"blocked"`
	Limits             usage.Policy `json:"-"`
}

// RateLimitGuard protects service request creation. Rejections are decisions,
// not errors, and a storage outage during a check allows the request.
type RateLimitGuard interface {
	CheckLimits(ctx context.Context, userID uuid.UUID) usage.Decision
	RecordRequest(ctx context.Context, userID uuid.UUID) error
	// Admit checks and records in one atomic step. A rejection is returned as
	// the decision with a nil error.
	Admit(ctx context.Context, userID uuid.UUID) (usage.Decision, error)
	ReleaseActiveRequest(ctx context.Context, userID uuid.UUID) error
	Usage(ctx context.Context, userID uuid.UUID) (*UsageView, error)
	Unblock(ctx context.Context, userID uuid.UUID) (*UsageView, error)
}

type rateLimitGuardImpl struct {
	store   shared.UsageStore
	policy  usage.Policy
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewRateLimitGuard(
	store shared.UsageStore,
	policy usage.Policy,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) RateLimitGuard {
	return &rateLimitGuardImpl{
		store:   store,
		policy:  policy,
		clock:   clk,
		metrics: m,
		logger:  logger,
	}
}

func (g *rateLimitGuardImpl) CheckLimits(ctx context.Context, userID uuid.UUID) usage.Decision {
	now := g.clock.Now()

	var decision usage.Decision
	_, err := g.store.Mutate(ctx, userID, func(rec *usage.Record) (bool, error) {
		d, changed := g.policy.Evaluate(rec, now)
		decision = d
		return changed, nil
	})
	if err != nil {
		return g.failOpen(ctx, userID, "check", err)
	}

	g.observe(ctx, userID, decision)
	return decision
}

func (g *rateLimitGuardImpl) RecordRequest(ctx context.Context, userID uuid.UUID) error {
	now := g.clock.Now()

	_, err := g.store.Mutate(ctx, userID, func(rec *usage.Record) (bool, error) {
		g.policy.Record(rec, now)
		return true, nil
	})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to record service request"), errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (g *rateLimitGuardImpl) Admit(ctx context.Context, userID uuid.UUID) (usage.Decision, error) {
	now := g.clock.Now()

	var decision usage.Decision
	_, err := g.store.Mutate(ctx, userID, func(rec *usage.Record) (bool, error) {
		d, changed := g.policy.Evaluate(rec, now)
		decision = d
		if !d.Allowed {
			return changed, nil
		}
		g.policy.Record(rec, now)
		return true, nil
	})
	if err != nil {
		return g.failOpen(ctx, userID, "admit", err), nil
	}

	g.observe(ctx, userID, decision)
	return decision, nil
}

func (g *rateLimitGuardImpl) ReleaseActiveRequest(ctx context.Context, userID uuid.UUID) error {
	now := g.clock.Now()

	var released bool
	_, err := g.store.Mutate(ctx, userID, func(rec *usage.Record) (bool, error) {
		released = rec.ReleaseActive(now)
		return released, nil
	})
	if err != nil {
		g.metrics.ObserveActiveRelease("error")
		return errs.Mark(errs.Wrap(err, "failed to release active request"), errs.ErrDatabaseOperationFailed)
	}

	if released {
		g.metrics.ObserveActiveRelease("released")
	} else {
		g.metrics.ObserveActiveRelease("at_floor")
		g.logger.DebugContext(ctx, "active request release at zero", "user_id", userID)
	}
	return nil
}

func (g *rateLimitGuardImpl) Usage(ctx context.Context, userID uuid.UUID) (*UsageView, error) {
	rec, err := g.store.Get(ctx, userID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to load usage"), errs.ErrDatabaseOperationFailed)
	}
	return g.toView(rec), nil
}

func (g *rateLimitGuardImpl) Unblock(ctx context.Context, userID uuid.UUID) (*UsageView, error) {
	now := g.clock.Now()

	rec, err := g.store.Mutate(ctx, userID, func(rec *usage.Record) (bool, error) {
		return rec.Unblock(now), nil
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to unblock user"), errs.ErrDatabaseOperationFailed)
	}

	g.logger.InfoContext(ctx, "usage block cleared", "user_id", userID)
	return g.toView(rec), nil
}

func (g *rateLimitGuardImpl) failOpen(ctx context.Context, userID uuid.UUID, op string, err error) usage.Decision {
	g.logger.WarnContext(ctx, "usage store unavailable, allowing request",
		"op", op,
		"user_id", userID,
		"error", err.Error())
	g.metrics.ObserveRateLimit(metrics.ResultFailOpen, "storage_error")
	return usage.AllowDegraded()
}

func (g *rateLimitGuardImpl) observe(ctx context.Context, userID uuid.UUID, d usage.Decision) {
	if d.Allowed {
		g.metrics.ObserveRateLimit(metrics.ResultAllowed, usage.ReasonNone.String())
		return
	}
	g.metrics.ObserveRateLimit(metrics.ResultRejected, d.Reason.String())
	g.logger.InfoContext(ctx, "service request rejected by usage limits",
		"user_id", userID,
		"reason", d.Reason.String(),
		"retry_after", d.RetryAfter.String())
}

func (g *rateLimitGuardImpl) toView(rec *usage.Record) *UsageView {
	return &UsageView{
		UserID:             rec.UserID(),
		RequestsThisHour:   rec.RequestsThisHour(),
		RequestsThisDay:    rec.RequestsThisDay(),
		ActiveRequestCount: rec.ActiveRequestCount(),
		LastRequestAt:      rec.LastRequestAt(),
		BlockedUntil:       rec.BlockedUntil(),
		Blocked:            rec.IsBlockedAt(g.clock.Now()),
		Limits:             g.policy,
	}
}
