package usage

import (
	"fmt"
	"math"
	"time"
)

type Reason string

const (
	ReasonNone          Reason = ""
	ReasonBlocked       Reason = "blocked"
	ReasonHourlyLimit   Reason = "hourly_limit"
	ReasonDailyLimit    Reason = "daily_limit"
	ReasonTooManyActive Reason = "too_many_active"
	ReasonMinSpacing    Reason = "min_spacing"
)

func (r Reason) String() string {
	if r == ReasonNone {
		return "none"
	}
	return string(r)
}

// Decision is the outcome of a limit check. Rejections are not errors.
type Decision struct {
	Allowed bool
	Reason  Reason
	// ResumeAt is when the caller may try again, if known.
	ResumeAt *time.Time
	// RetryAfter is the wait relative to the check time.
	RetryAfter time.Duration
	Message    string
	// Degraded is set when the check could not reach storage and allowed the request anyway.
	Degraded bool
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func AllowDegraded() Decision {
	return Decision{Allowed: true, Degraded: true}
}

func reject(reason Reason, now time.Time, resumeAt *time.Time, message string) Decision {
	d := Decision{
		Allowed:  false,
		Reason:   reason,
		ResumeAt: resumeAt,
		Message:  message,
	}
	if resumeAt != nil && resumeAt.After(now) {
		d.RetryAfter = resumeAt.Sub(now)
	}
	return d
}

// FormatWait renders a wait in Portuguese, rounding up to whole minutes.
func FormatWait(d time.Duration) string {
	minutes := int(math.Ceil(d.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	if minutes < 60 {
		if minutes == 1 {
			return "1 minuto"
		}
		return fmt.Sprintf("%d minutos", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		if hours == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, rest)
}
