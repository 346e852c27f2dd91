//go:build unit

package servicerequest_test

import (
	"strings"
	"testing"
	"time"

	"zurbo/internal/domain/servicerequest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func newOpen(t *testing.T) *servicerequest.ServiceRequest {
	t.Helper()
	desc, err := servicerequest.NewDescription("Trocar a fiação do chuveiro elétrico")
	require.NoError(t, err)
	return servicerequest.NewServiceRequest(uuid.New(), servicerequest.CategoryEletricista, desc, now)
}

func TestNewDescription(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		errIs error
	}{
		{name: "valid", in: "Vazamento na pia da cozinha"},
		{name: "accents count as one rune", in: "ação é ótima"},
		{name: "too short", in: "pia", errIs: servicerequest.ErrDescriptionTooShort},
		{name: "blank padded", in: "    curto   ", errIs: servicerequest.ErrDescriptionTooShort},
		{name: "too long", in: strings.Repeat("a", servicerequest.MaxDescriptionLength+1), errIs: servicerequest.ErrDescriptionTooLong},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := servicerequest.NewDescription(c.in)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(c.in), d.Value())
		})
	}
}

func TestNewCategory(t *testing.T) {
	c, err := servicerequest.NewCategory("encanador")
	require.NoError(t, err)
	assert.Equal(t, servicerequest.CategoryEncanador, c)

	_, err = servicerequest.NewCategory("astronauta")
	require.ErrorIs(t, err, servicerequest.ErrInvalidCategory)
}

func TestServiceRequest_Close(t *testing.T) {
	t.Run("withdraw from open", func(t *testing.T) {
		r := newOpen(t)
		require.NoError(t, r.Withdraw(now.Add(time.Hour)))
		assert.Equal(t, servicerequest.StatusWithdrawn, r.Status())
		require.NotNil(t, r.ClosedAt())
		assert.False(t, r.IsOpen())
	})

	t.Run("complete from open", func(t *testing.T) {
		r := newOpen(t)
		require.NoError(t, r.Complete(now))
		assert.Equal(t, servicerequest.StatusCompleted, r.Status())
	})

	t.Run("second close is rejected", func(t *testing.T) {
		r := newOpen(t)
		require.NoError(t, r.Withdraw(now))
		require.ErrorIs(t, r.Complete(now), servicerequest.ErrNotOpen)
		require.ErrorIs(t, r.Withdraw(now), servicerequest.ErrNotOpen)
		assert.Equal(t, servicerequest.StatusWithdrawn, r.Status())
	})
}

func TestServiceRequest_EnsureOwner(t *testing.T) {
	r := newOpen(t)
	require.NoError(t, r.EnsureOwner(r.ClientID()))
	require.ErrorIs(t, r.EnsureOwner(uuid.New()), servicerequest.ErrNotOwner)
}

func TestReconstructServiceRequest_InvalidStatus(t *testing.T) {
	_, err := servicerequest.ReconstructServiceRequest(uuid.New(), uuid.New(), servicerequest.CategoryPintor, "pintar a sala", "archived", true, nil, now, now)
	require.ErrorIs(t, err, servicerequest.ErrInvalidStatus)
}

func TestServiceRequest_Unmetered(t *testing.T) {
	r := newOpen(t)
	require.True(t, r.HoldsSlot())

	r.Unmetered()
	require.False(t, r.HoldsSlot())
	require.NoError(t, r.Withdraw(now))
	require.False(t, r.HoldsSlot())
}
