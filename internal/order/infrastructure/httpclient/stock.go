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
	peerStock           = "stock"
	endpointReduceStock = "reduce-stock"
)

// StockClient wraps the stock ledger's conditional decrement call.
type StockClient struct {
	baseURL string
	client  *http.Client
	metrics *Metrics
	log     *zap.Logger
}

func NewStockClient(baseURL string, timeout time.Duration, metrics *Metrics, logger *zap.Logger) *StockClient {
	return &StockClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
		log:     logger.With(zap.String("component", "stock_client")),
	}
}

type reduceStockRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type reduceStockResponse struct {
	OK      bool `json:"ok"`
	Product struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Price int64  `json:"price"`
		Stock int    `json:"stock"`
	} `json:"product"`
}

// Reserve issues the decrement. A timeout or transport error behaves
// exactly like the ledger being unavailable.
func (c *StockClient) Reserve(ctx context.Context, productID string, qty int) (_ *application.StockSnapshot, err error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		if err != nil {
			outcome = "error"
		}
		c.metrics.observe(peerStock, endpointReduceStock, outcome, time.Since(start).Seconds())
	}()

	resp, err := c.postJSON(ctx, c.baseURL+"/reduce-stock", reduceStockRequest{
		ProductID: productID,
		Qty:       qty,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrStockUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, application.ErrProductNotFound
	case http.StatusBadRequest:
		return nil, application.ErrInsufficientStock
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", application.ErrStockUnavailable, resp.StatusCode)
	}

	var body reduceStockResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", application.ErrStockUnavailable, err)
	}

	c.log.Debug("stock_reserved",
		zap.String("product_id", productID),
		zap.Int("qty", qty),
		zap.Int("remaining", body.Product.Stock),
	)

	return &application.StockSnapshot{
		ProductID: body.Product.ID,
		Name:      body.Product.Name,
		Price:     body.Product.Price,
		Remaining: body.Product.Stock,
	}, nil
}

func (c *StockClient) postJSON(ctx context.Context, url string, payload any) (*http.Response, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return c.client.Do(req)
}
