package response

import (
	"math"
	"time"

	"zurbo/internal/domain/usage"
	"zurbo/internal/usecase"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UsageLimitsResponse struct {
	MaxPerHour         int   `json:"max_per_hour"`
	MaxPerDay          int   `json:"max_per_day"`
	MaxActive          int   `json:"max_active"`
	HourlyBlockSeconds int64 `json:"hourly_block_seconds"`
	DailyBlockSeconds  int64 `json:"daily_block_seconds"`
	MinSpacingSeconds  int64 `json:"min_spacing_seconds"`
}

type UsageResponse struct {
	UserID             string              `json:"user_id"`
	RequestsThisHour   int                 `json:"requests_this_hour"`
	RequestsThisDay    int                 `json:"requests_this_day"`
	ActiveRequestCount int                 `json:"active_request_count"`
	LastRequestAt      *time.Time          `json:"last_request_at,omitempty"`
	BlockedUntil       *time.Time          `json:"blocked_until,omitempty"`
	Blocked            bool                `json:"blocked"`
	Limits             UsageLimitsResponse `json:"limits"`
}

var uuidToString = []copier.TypeConverter{
	{
		SrcType: uuid.UUID{},
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			return src.(uuid.UUID).String(), nil
		},
	},
}

func FromUsageView(v *usecase.UsageView) (*UsageResponse, error) {
	res := &UsageResponse{}
	if err := copier.CopyWithOption(res, v, copier.Option{Converters: uuidToString}); err != nil {
		return nil, err
	}
	res.Limits = UsageLimitsResponse{
		MaxPerHour:         v.Limits.MaxPerHour,
		MaxPerDay:          v.Limits.MaxPerDay,
		MaxActive:          v.Limits.MaxActive,
		HourlyBlockSeconds: int64(v.Limits.HourlyBlock / time.Second),
		DailyBlockSeconds:  int64(v.Limits.DailyBlock / time.Second),
		MinSpacingSeconds:  int64(v.Limits.MinSpacing / time.Second),
	}
	return res, nil
}

type LimitCheckResponse struct {
	Allowed           bool       `json:"allowed"`
	Reason            string     `json:"reason,omitempty"`
	Message           string     `json:"message,omitempty"`
	ResumeAt          *time.Time `json:"resume_at,omitempty"`
	RetryAfterSeconds int64      `json:"retry_after_seconds,omitempty"`
}

func FromDecision(d usage.Decision) *LimitCheckResponse {
	res := &LimitCheckResponse{
		Allowed:  d.Allowed,
		Message:  d.Message,
		ResumeAt: d.ResumeAt,
	}
	if !d.Allowed {
		res.Reason = string(d.Reason)
		res.RetryAfterSeconds = RetryAfterSeconds(d.RetryAfter)
	}
	return res
}

// RetryAfterSeconds rounds up so clients never retry early.
func RetryAfterSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Seconds()))
}
