//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"zurbo/internal/domain/usage"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/pkg/metrics"
	"zurbo/internal/usecase"
	"zurbo/tests/fake"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type RateLimitGuardTestSuite struct {
	suite.Suite
	store   *fake.UsageStore
	clock   *clock.MockClock
	metrics *metrics.Metrics
	guard   usecase.RateLimitGuard
	userID  uuid.UUID
}

func (s *RateLimitGuardTestSuite) SetupTest() {
	s.store = fake.NewUsageStore()
	s.clock = clock.NewMockClock(baseTime)
	s.metrics = metrics.New()
	s.guard = usecase.NewRateLimitGuard(s.store, usage.DefaultPolicy(), s.clock, s.metrics,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.userID = uuid.New()
}

func TestRateLimitGuardSuite(t *testing.T) {
	suite.Run(t, new(RateLimitGuardTestSuite))
}

func (s *RateLimitGuardTestSuite) admitN(n int, spacing time.Duration) {
	for i := 0; i < n; i++ {
		d, err := s.guard.Admit(context.Background(), s.userID)
		s.Require().NoError(err)
		s.Require().True(d.Allowed, "request %d", i+1)
		s.Require().NoError(s.guard.ReleaseActiveRequest(context.Background(), s.userID))
		s.clock.Advance(spacing)
	}
}

func (s *RateLimitGuardTestSuite) assertDecisions(expected string) {
	const header = `# HELP zurbo_ratelimit_decisions_total Service request limit decisions by result and reason.
# TYPE zurbo_ratelimit_decisions_total counter`
	err := testutil.GatherAndCompare(s.metrics.Registry(), strings.NewReader(header+expected),
		"zurbo_ratelimit_decisions_total")
	s.NoError(err)
}

func (s *RateLimitGuardTestSuite) TestCheckLimits() {
	ctx := context.Background()

	s.Run("success: new user is allowed and nothing is recorded", func() {
		d := s.guard.CheckLimits(ctx, s.userID)
		s.True(d.Allowed)
		s.False(d.Degraded)

		view, err := s.guard.Usage(ctx, s.userID)
		s.Require().NoError(err)
		s.Zero(view.RequestsThisHour)
		s.Zero(view.ActiveRequestCount)
	})

	s.Run("rejected: min spacing after a recorded request", func() {
		s.Require().NoError(s.guard.RecordRequest(ctx, s.userID))
		s.clock.Advance(4 * time.Minute)

		d := s.guard.CheckLimits(ctx, s.userID)
		s.False(d.Allowed)
		s.Equal(usage.ReasonMinSpacing, d.Reason)
		s.Equal(6*time.Minute, d.RetryAfter)
		s.Contains(d.Message, "6 minutos")
	})
}

func (s *RateLimitGuardTestSuite) TestHourlyLimitBlocks() {
	ctx := context.Background()
	s.admitN(3, 11*time.Minute)

	d := s.guard.CheckLimits(ctx, s.userID)
	s.False(d.Allowed)
	s.Equal(usage.ReasonHourlyLimit, d.Reason)
	s.Equal(6*time.Hour, d.RetryAfter)

	// the block itself was persisted by the check
	view, err := s.guard.Usage(ctx, s.userID)
	s.Require().NoError(err)
	s.True(view.Blocked)
	s.Require().NotNil(view.BlockedUntil)
	s.Equal(s.clock.Now().Add(6*time.Hour), *view.BlockedUntil)

	s.clock.Advance(time.Hour)
	d = s.guard.CheckLimits(ctx, s.userID)
	s.Equal(usage.ReasonBlocked, d.Reason)
	s.Equal(5*time.Hour, d.RetryAfter)

	s.clock.Advance(5 * time.Hour)
	s.True(s.guard.CheckLimits(ctx, s.userID).Allowed)
}

func (s *RateLimitGuardTestSuite) TestTooManyActive() {
	ctx := context.Background()
	for i := 0; i < usage.DefaultMaxActive; i++ {
		s.Require().NoError(s.guard.RecordRequest(ctx, s.userID))
		// each request opens a fresh hourly window
		s.clock.Advance(61 * time.Minute)
	}

	d, err := s.guard.Admit(ctx, s.userID)
	s.Require().NoError(err)
	s.False(d.Allowed)
	s.Equal(usage.ReasonTooManyActive, d.Reason)
	s.Zero(d.RetryAfter)

	view, err := s.guard.Usage(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(usage.DefaultMaxActive, view.ActiveRequestCount)
}

func (s *RateLimitGuardTestSuite) TestAdmit() {
	ctx := context.Background()

	s.Run("success: allowed request is recorded", func() {
		d, err := s.guard.Admit(ctx, s.userID)
		s.Require().NoError(err)
		s.True(d.Allowed)

		view, err := s.guard.Usage(ctx, s.userID)
		s.Require().NoError(err)
		s.Equal(1, view.RequestsThisHour)
		s.Equal(1, view.RequestsThisDay)
		s.Equal(1, view.ActiveRequestCount)
		s.Require().NotNil(view.LastRequestAt)
		s.Equal(baseTime, *view.LastRequestAt)
	})

	s.Run("rejected: nothing is recorded", func() {
		d, err := s.guard.Admit(ctx, s.userID)
		s.Require().NoError(err)
		s.False(d.Allowed)

		view, err := s.guard.Usage(ctx, s.userID)
		s.Require().NoError(err)
		s.Equal(1, view.RequestsThisHour)
		s.Equal(1, view.ActiveRequestCount)
	})

	s.assertDecisions(`
zurbo_ratelimit_decisions_total{reason="min_spacing",result="rejected"} 1
zurbo_ratelimit_decisions_total{reason="none",result="allowed"} 1
`)
}

func (s *RateLimitGuardTestSuite) TestFailOpen() {
	ctx := context.Background()
	s.store.Err = errors.New("connection refused")

	d := s.guard.CheckLimits(ctx, s.userID)
	s.True(d.Allowed)
	s.True(d.Degraded)

	d, err := s.guard.Admit(ctx, s.userID)
	s.NoError(err)
	s.True(d.Allowed)
	s.True(d.Degraded)

	// writes still surface the failure
	err = s.guard.RecordRequest(ctx, s.userID)
	s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))

	err = s.guard.ReleaseActiveRequest(ctx, s.userID)
	s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))

	_, err = s.guard.Usage(ctx, s.userID)
	s.Error(err)

	s.assertDecisions(`
zurbo_ratelimit_decisions_total{reason="storage_error",result="fail_open"} 2
`)
}

func (s *RateLimitGuardTestSuite) TestReleaseActiveRequest() {
	ctx := context.Background()

	s.Run("success: decrements once per call", func() {
		s.Require().NoError(s.guard.RecordRequest(ctx, s.userID))
		s.Require().NoError(s.guard.ReleaseActiveRequest(ctx, s.userID))

		view, err := s.guard.Usage(ctx, s.userID)
		s.Require().NoError(err)
		s.Zero(view.ActiveRequestCount)
		// counters other than active are untouched
		s.Equal(1, view.RequestsThisHour)
	})

	s.Run("success: release at zero stays at zero", func() {
		s.Require().NoError(s.guard.ReleaseActiveRequest(ctx, s.userID))

		view, err := s.guard.Usage(ctx, s.userID)
		s.Require().NoError(err)
		s.Zero(view.ActiveRequestCount)
	})
}

func (s *RateLimitGuardTestSuite) TestUnblock() {
	ctx := context.Background()
	s.admitN(3, 11*time.Minute)
	s.Require().False(s.guard.CheckLimits(ctx, s.userID).Allowed)

	view, err := s.guard.Unblock(ctx, s.userID)
	s.Require().NoError(err)
	s.False(view.Blocked)
	s.Nil(view.BlockedUntil)
	s.Equal(usage.DefaultPolicy(), view.Limits)

	s.True(s.guard.CheckLimits(ctx, s.userID).Allowed)
}

func TestAdmit_ConcurrentCallersNeverExceedActiveLimit(t *testing.T) {
	policy := usage.DefaultPolicy()
	policy.MinSpacing = 0
	policy.MaxPerHour = 100
	policy.MaxPerDay = 100

	store := fake.NewUsageStore()
	guard := usecase.NewRateLimitGuard(store, policy, clock.NewMockClock(baseTime), nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	userID := uuid.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := guard.Admit(context.Background(), userID)
			assert.NoError(t, err)
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, policy.MaxActive, allowed)
	view, err := guard.Usage(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, policy.MaxActive, view.ActiveRequestCount)
}
