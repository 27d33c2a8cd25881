package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rookgm/cargolabel/internal/models"
)

// default time of retry after
const delaySeconds = 60

// Client is HTTP client of the courier shipment API
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates new Client instance
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// SubmitResult is carrier answer to a shipment booking
type SubmitResult struct {
	TrackingID string `json:"tracking_id"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

// CancelResult is carrier answer to a cancellation
type CancelResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type cancelRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

// SubmitShipment books a shipment
// 200: request processed, see success flag.
// 429: too many requests.
// 500: carrier internal error.
func (c *Client) SubmitShipment(ctx context.Context, shipment Shipment) (*SubmitResult, error) {
	// POST /api/shipments
	endpoint, err := url.JoinPath(c.baseURL, "api", "shipments")
	if err != nil {
		return nil, err
	}

	res := SubmitResult{}
	if err := c.post(ctx, endpoint, shipment, &res); err != nil {
		return nil, err
	}
	if res.Success && res.TrackingID == "" {
		res.TrackingID = shipment.ReferenceCode
	}

	return &res, nil
}

// CancelShipment voids a booked shipment
func (c *Client) CancelShipment(ctx context.Context, trackingNumber string) (*CancelResult, error) {
	// POST /api/shipments/cancel
	endpoint, err := url.JoinPath(c.baseURL, "api", "shipments", "cancel")
	if err != nil {
		return nil, err
	}

	res := CancelResult{}
	if err := c.post(ctx, endpoint, cancelRequest{TrackingNumber: trackingNumber}, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode carrier response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		t, err := strconv.Atoi(resp.Header.Get("Retry-After"))
		if err != nil {
			t = delaySeconds
		}
		return models.NewTooManyRequestsError(time.Duration(t) * time.Second)
	case resp.StatusCode >= http.StatusInternalServerError:
		return models.ErrInternalError
	default:
		failure := struct {
			Message string `json:"message"`
		}{}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		if failure.Message == "" {
			failure.Message = resp.Status
		}
		return &models.CarrierError{Message: failure.Message}
	}
}
