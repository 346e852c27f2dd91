//go:build e2e

package confirmation_test

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"zurbo/internal/domain/user"
	resdto "zurbo/internal/handler/dto/response"
	"zurbo/tests/common/authtest"
	"zurbo/tests/common/dbtest"
	"zurbo/tests/common/httptest"
	"zurbo/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type confirmationSuite struct {
	e2e.SharedSuite
	clientToken   string
	providerToken string
	adminToken    string
	orderID       uuid.UUID
	paymentID     uuid.UUID
}

func TestConfirmationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(confirmationSuite))
}

func (s *confirmationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	var clientID, providerID uuid.UUID
	clientID, s.clientToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "cliente@example.com", string(user.RoleClient))
	providerID, s.providerToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "prestador@example.com", string(user.RoleProvider))
	_, s.adminToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

	s.orderID = dbtest.CreateHeldOrder(s.T(), s.DB, clientID, providerID)
	s.paymentID = dbtest.CreateAuthorizedPayment(s.T(), s.DB, s.orderID, 15000)
}

func (s *confirmationSuite) confirm(token string) (int, resdto.ConfirmResponse) {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+s.orderID.String()+"/confirm", nil, token)
	var res resdto.ConfirmResponse
	if w.Code < 300 {
		httptest.DecodeResponseBody(s.T(), w.Body, &res)
	}
	return w.Code, res
}

func (s *confirmationSuite) TestMutualConfirmation() {
	s.Run("second confirmation releases the escrow once", func() {
		t := s.T()

		code, res := s.confirm(s.clientToken)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "awaiting_one", res.State)
		require.False(t, res.Released)
		require.Zero(t, s.Gateway.CallCount())

		code, res = s.confirm(s.providerToken)
		require.Equal(t, http.StatusOK, code)
		require.True(t, res.Released)
		require.Equal(t, 1, s.Gateway.CallCount())
		require.Equal(t, "captured", dbtest.PaymentStatus(t, s.DB, s.paymentID))
		require.Equal(t, "released", dbtest.OrderPaymentStatus(t, s.DB, s.orderID))

		code, res = s.confirm(s.clientToken)
		require.Equal(t, http.StatusOK, code)
		require.True(t, res.Released)
		require.Equal(t, 1, s.Gateway.CallCount(), "confirming a released order must not call the gateway")
	})

	s.Run("outsiders are forbidden", func() {
		_, outsider := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "outro@example.com", string(user.RoleClient))

		code, _ := s.confirm(outsider)
		require.Equal(s.T(), http.StatusForbidden, code)
	})
}

func (s *confirmationSuite) TestConcurrentConfirmations() {
	s.Run("racing parties trigger a single gateway call", func() {
		t := s.T()

		var wg sync.WaitGroup
		for _, token := range []string{s.clientToken, s.providerToken, s.clientToken, s.providerToken} {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/orders/"+s.orderID.String()+"/confirm", nil, token)
				assert.Contains(t, []int{http.StatusOK, http.StatusAccepted}, w.Code, w.Body.String())
			}(token)
		}
		wg.Wait()

		require.Equal(t, 1, s.Gateway.CallCount())
		require.Equal(t, "captured", dbtest.PaymentStatus(t, s.DB, s.paymentID))
		require.Equal(t, "released", dbtest.OrderPaymentStatus(t, s.DB, s.orderID))
	})
}

func (s *confirmationSuite) TestGatewayFailureThenAdminRetry() {
	s.Run("failed release stays pending until an admin retries", func() {
		t := s.T()
		s.Gateway.SetErr(errors.New("gateway timeout"))

		code, _ := s.confirm(s.clientToken)
		require.Equal(t, http.StatusOK, code)
		code, res := s.confirm(s.providerToken)
		require.Equal(t, http.StatusAccepted, code)
		require.True(t, res.ReleasePending)
		require.NotEmpty(t, res.Message)
		require.Equal(t, "authorized", dbtest.PaymentStatus(t, s.DB, s.paymentID))
		require.Equal(t, "held_in_escrow", dbtest.OrderPaymentStatus(t, s.DB, s.orderID))

		retryURL := "/api/admin/orders/" + s.orderID.String() + "/retry-release"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, retryURL, nil, s.clientToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		s.Gateway.SetErr(nil)
		code, res = s.confirm(s.clientToken)
		require.Equal(t, http.StatusAccepted, code)
		require.True(t, res.ReleasePending)
		require.Equal(t, 1, s.Gateway.CallCount(), "confirming again must not retry the release")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, retryURL, nil, s.adminToken)
		var retried resdto.ConfirmResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &retried)
		require.True(t, retried.Released)
		require.Equal(t, 2, s.Gateway.CallCount())
		require.Equal(t, "released", dbtest.OrderPaymentStatus(t, s.DB, s.orderID))
	})
}

func (s *confirmationSuite) TestStatus() {
	s.Run("reports who is still expected to confirm", func() {
		t := s.T()

		code, _ := s.confirm(s.providerToken)
		require.Equal(t, http.StatusOK, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/orders/"+s.orderID.String()+"/confirmation", nil, s.clientToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "awaiting_one")
		require.Contains(t, w.Body.String(), `"awaiting_party":"client"`)
	})
}
