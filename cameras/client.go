// Package cameras is a thin client for the speed camera REST API.
package cameras

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://speedcameraapi.onrender.com"
	DefaultTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 256
)

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks
type Finder interface {
	ByZipcode(ctx context.Context, zipcode string) ([]Record, error)
	ByStreet(ctx context.Context, street, zipcode string) ([]Record, error)
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client issues exactly one GET per lookup. It never retries and never
// caches; failures are reported as ErrUpstreamUnavailable or
// ErrMalformedUpstreamPayload.
type Client struct {
	client *resty.Client
}

func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &Client{client: client}
}

type requestIDKey struct{}

// WithRequestID attaches an id that is sent along as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if id := requestID(ctx); id != "" {
		req.SetHeader(requestIDHeader, id)
	}
	return req
}

func (c *Client) ByZipcode(ctx context.Context, zipcode string) ([]Record, error) {
	resp, err := c.request(ctx).
		SetPathParam("zipcode", zipcode).
		Get("/cameras/zipcode/{zipcode}")
	return parseResponse(resp, err)
}

func (c *Client) ByStreet(ctx context.Context, street, zipcode string) ([]Record, error) {
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"street":  street,
			"zipcode": zipcode,
		}).
		Get("/cameras/search")
	return parseResponse(resp, err)
}

func parseResponse(resp *resty.Response, err error) ([]Record, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	log.Debugf("camera API %s %s -> %s in %s", resp.Request.Method, resp.Request.URL, resp.Status(), resp.Time())
	if !resp.IsSuccess() {
		body := string(bytes.TrimSpace(resp.Body()))
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody] + "..."
		}
		status := resp.Status()
		if status == "" {
			status = http.StatusText(resp.StatusCode())
		}
		return nil, &StatusError{
			StatusCode: resp.StatusCode(),
			Status:     status,
			Body:       body,
		}
	}
	return decodeRecords(resp.Body())
}

// decodeRecords accepts either a bare array of cameras or an object with a
// "cameras" array.
func decodeRecords(body []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedUpstreamPayload)
	}
	switch trimmed[0] {
	case '[':
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedUpstreamPayload, err)
		}
		return nonNil(records), nil
	case '{':
		var envelope struct {
			Success *bool     `json:"success"`
			Error   string    `json:"error"`
			Cameras *[]Record `json:"cameras"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedUpstreamPayload, err)
		}
		if envelope.Success != nil && !*envelope.Success {
			if envelope.Error == "" {
				envelope.Error = "request was not successful"
			}
			return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, envelope.Error)
		}
		if envelope.Cameras == nil {
			return nil, fmt.Errorf("%w: missing \"cameras\" field", ErrMalformedUpstreamPayload)
		}
		return nonNil(*envelope.Cameras), nil
	default:
		return nil, fmt.Errorf("%w: body is not a JSON array or object", ErrMalformedUpstreamPayload)
	}
}

func nonNil(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	return records
}
