package usage

import (
	"fmt"
	"time"
)

const (
	DefaultMaxPerHour  = 3
	DefaultHourlyBlock = 6 * time.Hour
	DefaultMaxPerDay   = 10
	DefaultDailyBlock  = 24 * time.Hour
	DefaultMaxActive   = 5
	DefaultMinSpacing  = 10 * time.Minute

	hourWindow = time.Hour
	dayWindow  = 24 * time.Hour
)

// Policy holds the thresholds. Windows slide from the last accepted request
// rather than aligning to clock hours or calendar days.
type Policy struct {
	MaxPerHour  int
	HourlyBlock time.Duration
	MaxPerDay   int
	DailyBlock  time.Duration
	MaxActive   int
	MinSpacing  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxPerHour:  DefaultMaxPerHour,
		HourlyBlock: DefaultHourlyBlock,
		MaxPerDay:   DefaultMaxPerDay,
		DailyBlock:  DefaultDailyBlock,
		MaxActive:   DefaultMaxActive,
		MinSpacing:  DefaultMinSpacing,
	}
}

func (p Policy) Validate() error {
	if p.MaxPerHour < 1 || p.MaxPerDay < 1 || p.MaxActive < 1 {
		return ErrInvalidPolicy
	}
	if p.HourlyBlock <= 0 || p.DailyBlock <= 0 || p.MinSpacing < 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// Evaluate decides whether a new request is permitted at now. Exceeding the
// hourly or daily limit blocks the user on this very check, so the record may
// change even though the request is rejected; the bool reports that.
func (p Policy) Evaluate(rec *Record, now time.Time) (Decision, bool) {
	if rec.IsBlockedAt(now) {
		until := *rec.blockedUntil
		return reject(ReasonBlocked, now, &until, fmt.Sprintf(
			"Você está temporariamente bloqueado para novas solicitações. Tente novamente em %s.",
			FormatWait(until.Sub(now)),
		)), false
	}

	elapsed, hasLast := rec.sinceLastRequest(now)

	if rec.requestsThisHour >= p.MaxPerHour && hasLast && elapsed < hourWindow {
		until := rec.blockFor(now, p.HourlyBlock)
		rec.requestsThisHour = 0
		return reject(ReasonHourlyLimit, now, &until, fmt.Sprintf(
			"Limite de %d solicitações por hora excedido. Novas solicitações bloqueadas por %s.",
			p.MaxPerHour, FormatWait(p.HourlyBlock),
		)), true
	}

	if rec.requestsThisDay >= p.MaxPerDay && hasLast && elapsed < dayWindow {
		until := rec.blockFor(now, p.DailyBlock)
		rec.requestsThisDay = 0
		return reject(ReasonDailyLimit, now, &until, fmt.Sprintf(
			"Limite de %d solicitações por dia excedido. Novas solicitações bloqueadas por %s.",
			p.MaxPerDay, FormatWait(p.DailyBlock),
		)), true
	}

	if rec.activeRequestCount >= p.MaxActive {
		return reject(ReasonTooManyActive, now, nil, fmt.Sprintf(
			"Limite de %d solicitações simultâneas atingido. Conclua ou cancele uma solicitação antes de criar outra.",
			p.MaxActive,
		)), false
	}

	if hasLast && elapsed < p.MinSpacing {
		resume := rec.lastRequestAt.Add(p.MinSpacing)
		return reject(ReasonMinSpacing, now, &resume, fmt.Sprintf(
			"Aguarde %s antes de fazer uma nova solicitação.",
			FormatWait(p.MinSpacing-elapsed),
		)), false
	}

	return Allow(), false
}

// Record counts an accepted request. It is not idempotent: call it exactly
// once per request that Evaluate allowed.
func (p Policy) Record(rec *Record, now time.Time) {
	elapsed, hasLast := rec.sinceLastRequest(now)

	if !hasLast || elapsed >= hourWindow {
		rec.requestsThisHour = 1
	} else {
		rec.requestsThisHour++
	}

	if !hasLast || elapsed >= dayWindow {
		rec.requestsThisDay = 1
	} else {
		rec.requestsThisDay++
	}

	rec.activeRequestCount++
	at := now
	rec.lastRequestAt = &at
	rec.updatedAt = now
}
