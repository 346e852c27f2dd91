package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"zurbo/internal/pkg/config"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrGatewayMisconfigured = errs.New("payment gateway is not configured")
	ErrGatewayRejected      = errs.New("payment gateway rejected the release")
)

const maxErrorBody = 4 << 10

type releaseRequest struct {
	EscrowPaymentID string `json:"escrow_payment_id"`
}

type releaseResponse struct {
	ProviderReference string `json:"provider_reference,omitempty"`
	Error             string `json:"error,omitempty"`
}

// HTTPGateway calls the hosted release-escrow-payment function.
type HTTPGateway struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewHTTPGateway(cfg config.PaymentGatewayConfig) *HTTPGateway {
	return NewHTTPGatewayWithClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

func NewHTTPGatewayWithClient(cfg config.PaymentGatewayConfig, client *http.Client) *HTTPGateway {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if op := strings.Trim(cfg.Operation, "/"); op != "" {
		endpoint += "/" + op
	}
	return &HTTPGateway{
		endpoint: endpoint,
		token:    strings.TrimSpace(cfg.Token),
		client:   client,
	}
}

// Release returns nil only on a 2xx answer. The escrow id doubles as the
// idempotency key so a retried call cannot capture twice upstream.
func (g *HTTPGateway) Release(ctx context.Context, escrowPaymentID uuid.UUID) (*shared.ReleaseReceipt, error) {
	if g.endpoint == "" || g.token == "" {
		return nil, ErrGatewayMisconfigured
	}

	body, err := json.Marshal(releaseRequest{EscrowPaymentID: escrowPaymentID.String()})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode release request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build release request")
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", escrowPaymentID.String())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "release request failed")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var decoded releaseResponse
	_ = json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(decoded.Error)
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, errs.Wrap(ErrGatewayRejected, fmt.Sprintf("status %d: %s", resp.StatusCode, msg))
	}

	receipt := &shared.ReleaseReceipt{}
	if ref := strings.TrimSpace(decoded.ProviderReference); ref != "" {
		receipt.ProviderReference = &ref
	}
	return receipt, nil
}
