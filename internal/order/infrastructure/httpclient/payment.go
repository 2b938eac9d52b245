package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/order/application"
)

const (
	peerPayment = "payment"
	endpointPay = "pay"
)

// PaymentClient wraps the payment processor's charge call.
type PaymentClient struct {
	baseURL string
	client  *http.Client
	metrics *Metrics
	log     *zap.Logger
}

func NewPaymentClient(baseURL string, timeout time.Duration, metrics *Metrics, logger *zap.Logger) *PaymentClient {
	return &PaymentClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
		log:     logger.With(zap.String("component", "payment_client")),
	}
}

type payRequest struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

type payResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Charge requests settlement of the given amount against an order. The
// processor's status string is folded into a tagged outcome: a blank or
// PAID status settles, anything else is a decline. Transport failure is
// reported as ErrPaymentUnavailable.
func (c *PaymentClient) Charge(ctx context.Context, orderID string, amount int64) (_ application.Settlement, err error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		if err != nil {
			outcome = "error"
		}
		c.metrics.observe(peerPayment, endpointPay, outcome, time.Since(start).Seconds())
	}()

	buf, err := json.Marshal(payRequest{OrderID: orderID, Amount: amount})
	if err != nil {
		return application.Settlement{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pay", bytes.NewReader(buf))
	if err != nil {
		return application.Settlement{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.client.Do(req)
	if err != nil {
		return application.Settlement{}, fmt.Errorf("%w: %w", application.ErrPaymentUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return application.Settlement{}, fmt.Errorf("%w: unexpected status %d", application.ErrPaymentUnavailable, resp.StatusCode)
	}

	var body payResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return application.Settlement{}, fmt.Errorf("%w: decode response: %w", application.ErrPaymentUnavailable, err)
	}

	settlement := application.Settlement{
		SettlementID: body.ID,
		Status:       body.Status,
	}
	switch body.Status {
	case "", "PAID":
		settlement.Outcome = application.SettlementPaid
	default:
		settlement.Outcome = application.SettlementDeclined
	}

	c.log.Debug("charge_settled",
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
		zap.String("processor_status", body.Status),
	)

	return settlement, nil
}
