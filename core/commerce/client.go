package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shopify-sync/core/ratelimit"
	"shopify-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CallLimitHeader carries the leaky-bucket usage as "used/max".
const CallLimitHeader = "X-Shopify-Shop-Api-Call-Limit"

// StatusError is a non-2xx response from the platform.
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("status %d: %s", e.Code, body)
}

// Client implements API over the Shopify Admin REST API.
// It is constructed once per invocation and passed explicitly.
type Client struct {
	baseURL  string
	apiKey   string
	password string
	timeout  time.Duration
	limiter  *ratelimit.Limiter
	logger   *zap.Logger
}

// NewClient creates a client from configuration. limiter may be nil.
func NewClient(cfg Config, limiter *ratelimit.Limiter, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		if cfg.ShopName == "" {
			return nil, fmt.Errorf("shopify.shop_name or shopify.base_url is required")
		}
		base = fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", cfg.ShopName, cfg.APIVersion)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:  base,
		apiKey:   cfg.APIKey,
		password: cfg.Password,
		timeout:  time.Duration(timeout) * time.Second,
		limiter:  limiter,
		logger:   logger,
	}, nil
}

// Count implements API.
func (c *Client) Count(ctx context.Context, res Resource, filter Filter) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	path := fmt.Sprintf("/%s/count.json", res)
	if err := c.do(ctx, fiber.MethodGet, path, query(filter), nil, &out, ""); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// List implements API.
func (c *Client) List(ctx context.Context, res Resource, filter Filter, page, limit int, dst any) error {
	q := query(filter)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return c.do(ctx, fiber.MethodGet, fmt.Sprintf("/%s.json", res), q, nil, dst, string(res))
}

// Get implements API.
func (c *Client) Get(ctx context.Context, res Resource, id int64, dst any) error {
	return c.do(ctx, fiber.MethodGet, fmt.Sprintf("/%s/%d.json", res, id), nil, nil, dst, res.singular())
}

// Update implements API.
func (c *Client) Update(ctx context.Context, res Resource, id int64, fields map[string]any, dst any) error {
	body := map[string]any{res.singular(): withID(fields, id)}
	return c.do(ctx, fiber.MethodPut, fmt.Sprintf("/%s/%d.json", res, id), nil, body, dst, res.singular())
}

// Create implements API.
func (c *Client) Create(ctx context.Context, sub Resource, parentID int64, fields map[string]any, dst any) error {
	parent := sub.parent()
	if parent == "" {
		return fmt.Errorf("%s is not a sub-resource", sub)
	}
	body := map[string]any{sub.singular(): fields}
	path := fmt.Sprintf("/%s/%d/%s.json", parent, parentID, sub)
	return c.do(ctx, fiber.MethodPost, path, nil, body, dst, sub.singular())
}

// do performs one request. The response body is a JSON object whose
// envelope key holds the payload; an empty envelope decodes the whole body.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any, dst any, envelope string) error {
	op := method + " " + path
	if err := ctx.Err(); err != nil {
		return reconcile.NewRemoteServiceError(op, err)
	}

	uri := c.baseURL + path
	if len(q) > 0 {
		uri += "?" + q.Encode()
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	a.BasicAuth(c.apiKey, c.password)
	a.Timeout(c.timeout)
	if body != nil {
		a.JSON(body)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return reconcile.NewRemoteServiceError(op, err)
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	a.SetResponse(resp)

	status, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		return reconcile.NewRemoteServiceError(op, errs[0])
	}

	c.observe(string(resp.Header.Peek(CallLimitHeader)), status)

	c.logger.Debug("Shopify call",
		zap.String("op", op),
		zap.Int("status", status),
	)

	if status < 200 || status >= 300 {
		return reconcile.NewRemoteServiceError(op, &StatusError{Code: status, Body: string(respBody)})
	}

	if dst == nil || len(respBody) == 0 {
		return nil
	}
	if err := decode(respBody, envelope, dst); err != nil {
		return reconcile.NewRemoteServiceError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) observe(header string, status int) {
	if c.limiter == nil {
		return
	}
	if status == fiber.StatusTooManyRequests {
		c.limiter.Observe(0)
		return
	}
	if remaining, err := ratelimit.ParseCallLimit(header); err == nil {
		c.limiter.Observe(remaining)
	}
}

func decode(body []byte, envelope string, dst any) error {
	if envelope == "" {
		return json.Unmarshal(body, dst)
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return err
	}
	raw, ok := wrapped[envelope]
	if !ok {
		return fmt.Errorf("missing %q in response", envelope)
	}
	return json.Unmarshal(raw, dst)
}

func query(filter Filter) url.Values {
	q := url.Values{}
	for k, v := range filter {
		q.Set(k, v)
	}
	return q
}

func withID(fields map[string]any, id int64) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["id"] = id
	return out
}
