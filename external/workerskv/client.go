// Package workerskv uploads board snapshots to a Cloudflare Workers KV
// namespace, the store the public site reads from the edge.
package workerskv

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/hoopboard/draftboard/internal/platform/logging"
	"github.com/hoopboard/draftboard/internal/usecase"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

type ClientConfig struct {
	BaseURL     string
	AccountID   string
	NamespaceID string
	APIToken    string
	Timeout     time.Duration
	Logger      *logging.Logger
}

type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	accountID  string
	namespace  string
	apiToken   string
	timeout    time.Duration
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:   baseURL,
		accountID: strings.TrimSpace(cfg.AccountID),
		namespace: strings.TrimSpace(cfg.NamespaceID),
		apiToken:  strings.TrimSpace(cfg.APIToken),
		timeout:   timeout,
		logger:    logger,
	}
}

type kvWriteEnvelope struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// UploadSnapshot writes payload under key. The value replaces whatever was
// there; KV has no partial update.
func (c *Client) UploadSnapshot(ctx context.Context, key string, payload []byte) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: snapshot key is required", usecase.ErrInvalidInput)
	}
	if len(payload) == 0 {
		return fmt.Errorf("%w: snapshot payload is empty", usecase.ErrInvalidInput)
	}
	if c.accountID == "" || c.namespace == "" {
		return crerr.New("workerskv client is not configured with account and namespace")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.valueURL(key))
	req.Header.SetMethod(fasthttp.MethodPut)
	req.Header.Set("authorization", "Bearer "+c.apiToken)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return fmt.Errorf("%w: upload snapshot key=%s: %v", usecase.ErrDependencyUnavailable, key, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	if status < 200 || status >= 300 {
		return crerr.Newf("kv write rejected key=%s status=%d body=%s", key, status, abbreviate(body))
	}

	var envelope kvWriteEnvelope
	if err := sonic.Unmarshal(body, &envelope); err == nil && !envelope.Success {
		if len(envelope.Errors) > 0 {
			return crerr.Newf("kv write failed key=%s code=%d: %s", key, envelope.Errors[0].Code, envelope.Errors[0].Message)
		}
		return crerr.Newf("kv write failed key=%s", key)
	}

	c.logger.InfoContext(ctx, "uploaded snapshot to kv", "key", key, "bytes", len(payload))
	return nil
}

// FetchSnapshot reads the value stored under key. A missing key reports
// usecase.ErrNotFound.
func (c *Client) FetchSnapshot(ctx context.Context, key string) ([]byte, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: snapshot key is required", usecase.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.valueURL(key))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("authorization", "Bearer "+c.apiToken)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: fetch snapshot key=%s: %v", usecase.ErrDependencyUnavailable, key, err)
	}

	status := resp.StatusCode()
	if status == fasthttp.StatusNotFound {
		return nil, fmt.Errorf("%w: kv key=%s", usecase.ErrNotFound, key)
	}
	if status < 200 || status >= 300 {
		return nil, crerr.Newf("kv read rejected key=%s status=%d", key, status)
	}

	// resp.Body is reused once the response is released.
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

func (c *Client) valueURL(key string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString("/accounts/")
	_, _ = buf.WriteString(c.accountID)
	_, _ = buf.WriteString("/storage/kv/namespaces/")
	_, _ = buf.WriteString(c.namespace)
	_, _ = buf.WriteString("/values/")
	_, _ = buf.WriteString(url.PathEscape(key))
	return buf.String()
}

func abbreviate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
