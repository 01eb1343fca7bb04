// Package restclient implements the domain repository interfaces against
// the shop-accounting REST backend. Every endpoint answers the same
// envelope: {success, message?, <resource>: ...}. Transport failures are
// converted to apperror network errors at this boundary; callers never see
// a raw *url.Error.
package restclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/pkg/apperror"
	"github.com/ousmanedev/boutik/pkg/pagination"
)

// Config holds the connection settings for the backend.
type Config struct {
	BaseURL string
	// Token is an opaque bearer token issued by the backend; the client
	// never mints or inspects it.
	Token   string
	Timeout time.Duration
}

// Client is the shared resty transport behind every repository.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New builds a backend client from the provided configuration.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpClient := resty.New()
	httpClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.Token != "" {
		httpClient.SetHeader("Authorization", "Bearer "+cfg.Token)
	}

	return &Client{http: httpClient, logger: logger}
}

// apiStatus is embedded in every response struct to expose the envelope.
type apiStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s apiStatus) status() (bool, string) { return s.Success, s.Message }

type enveloped interface {
	status() (ok bool, message string)
}

// call performs one request and normalizes every failure mode into an
// apperror. out must embed apiStatus.
func (c *Client) call(ctx context.Context, method, path string, body any, out enveloped, query map[string]string) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
		req.SetError(out)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if method != http.MethodGet {
		// Mutations carry an idempotency key so a resend after an ambiguous
		// network failure cannot double-apply.
		req.SetHeader("Idempotency-Key", uuid.New().String())
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return apperror.NewNetworkError(method + " " + path)
	}

	if out != nil {
		ok, message := out.status()
		if !ok {
			if message == "" && resp.StatusCode() >= http.StatusBadRequest {
				message = fmt.Sprintf("request failed with status %d", resp.StatusCode())
			}
			return apperror.NewAPIError(message)
		}
		return nil
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return apperror.NewAPIError(fmt.Sprintf("request failed with status %d", resp.StatusCode()))
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out enveloped, query map[string]string) error {
	return c.call(ctx, http.MethodGet, path, nil, out, query)
}

func (c *Client) post(ctx context.Context, path string, body any, out enveloped) error {
	return c.call(ctx, http.MethodPost, path, body, out, nil)
}

func (c *Client) put(ctx context.Context, path string, body any, out enveloped) error {
	return c.call(ctx, http.MethodPut, path, body, out, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	out := &statusOnly{}
	return c.call(ctx, http.MethodDelete, path, nil, out, nil)
}

// statusOnly is the envelope for endpoints returning no resource.
type statusOnly struct {
	apiStatus
}

// listQuery renders the shared list options into query parameters.
func listQuery(dateFrom, dateTo string, page *pagination.Params) map[string]string {
	q := make(map[string]string)
	if dateFrom != "" {
		q["date_from"] = dateFrom
	}
	if dateTo != "" {
		q["date_to"] = dateTo
	}
	if page != nil {
		page.Validate()
		q["page"] = fmt.Sprintf("%d", page.Page)
		q["per_page"] = fmt.Sprintf("%d", page.PerPage)
	}
	return q
}
