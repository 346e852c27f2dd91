package usage

import (
	"time"

	"github.com/google/uuid"
)

// Record holds the per-user counters behind the service request limits.
// A missing record is equivalent to NewRecord.
type Record struct {
	userID             uuid.UUID
	requestsThisHour   int
	requestsThisDay    int
	activeRequestCount int
	lastRequestAt      *time.Time
	blockedUntil       *time.Time
	updatedAt          time.Time
}

func NewRecord(userID uuid.UUID) *Record {
	return &Record{userID: userID}
}

// ReconstructRecord clamps negative counters read from storage to zero.
func ReconstructRecord(
	userID uuid.UUID,
	requestsThisHour, requestsThisDay, activeRequestCount int,
	lastRequestAt, blockedUntil *time.Time,
	updatedAt time.Time,
) *Record {
	return &Record{
		userID:             userID,
		requestsThisHour:   max(requestsThisHour, 0),
		requestsThisDay:    max(requestsThisDay, 0),
		activeRequestCount: max(activeRequestCount, 0),
		lastRequestAt:      lastRequestAt,
		blockedUntil:       blockedUntil,
		updatedAt:          updatedAt,
	}
}

func (r *Record) UserID() uuid.UUID         { return r.userID }
func (r *Record) RequestsThisHour() int     { return r.requestsThisHour }
func (r *Record) RequestsThisDay() int      { return r.requestsThisDay }
func (r *Record) ActiveRequestCount() int   { return r.activeRequestCount }
func (r *Record) LastRequestAt() *time.Time { return r.lastRequestAt }
func (r *Record) BlockedUntil() *time.Time  { return r.blockedUntil }
func (r *Record) UpdatedAt() time.Time      { return r.updatedAt }

func (r *Record) IsBlockedAt(now time.Time) bool {
	return r.blockedUntil != nil && now.Before(*r.blockedUntil)
}

// ReleaseActive frees one active request slot, never going below zero.
// It reports whether the record changed.
func (r *Record) ReleaseActive(now time.Time) bool {
	if r.activeRequestCount == 0 {
		return false
	}
	r.activeRequestCount--
	r.updatedAt = now
	return true
}

// Unblock clears any cool-down. It reports whether the record changed.
func (r *Record) Unblock(now time.Time) bool {
	if r.blockedUntil == nil {
		return false
	}
	r.blockedUntil = nil
	r.updatedAt = now
	return true
}

func (r *Record) sinceLastRequest(now time.Time) (time.Duration, bool) {
	if r.lastRequestAt == nil {
		return 0, false
	}
	return now.Sub(*r.lastRequestAt), true
}

func (r *Record) blockFor(now time.Time, d time.Duration) time.Time {
	until := now.Add(d)
	r.blockedUntil = &until
	r.updatedAt = now
	return until
}
