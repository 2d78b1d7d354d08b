package passport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/passport/pkg/logger"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 1 << 20

// Request carries the parameters of a remote call. At least one of Query
// and Body must be non-nil.
type Request struct {
	Query url.Values
	Body  any
}

// Transport performs calls against the account service. It is safe for
// concurrent use.
type Transport struct {
	base      *url.URL
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewTransport validates cfg and returns a transport for its base URL.
func NewTransport(cfg Config, opts ...Option) (*Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, _ := cfg.baseURL()
	o := buildOptions(cfg, opts)
	return newTransport(base, cfg.UserAgent, o), nil
}

func newTransport(base *url.URL, userAgent string, o options) *Transport {
	return &Transport{
		base:      base,
		client:    o.httpClient,
		userAgent: userAgent,
		logger:    o.logger,
	}
}

// Do sends a single request and decodes the JSON envelope of a 200
// response. An envelope carrying an "error" field is still returned
// without error; callers check it with Envelope.Err.
func (t *Transport) Do(ctx context.Context, method, endpoint string, req Request) (Envelope, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	case "":
		return nil, newError(CodeRequestMethod, "missing request method", nil)
	default:
		return nil, newError(CodeRequestMethod, fmt.Sprintf("method %q not supported", method), nil)
	}
	if req.Query == nil && req.Body == nil {
		return nil, newError(CodeRequestContent, "missing body and query", nil)
	}

	u := t.base.JoinPath(endpoint)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, newError(CodeRequestContent, "body cannot be encoded", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, newError(CodeRequest, "failed to build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.DebugContext(ctx, "passport request failed",
			logger.Method(method), logger.Endpoint(endpoint), logger.Duration(time.Since(start)), logger.Error(err))
		return nil, newError(CodeRequest, "failed to make request", err)
	}
	defer resp.Body.Close()

	t.logger.DebugContext(ctx, "passport request",
		logger.Method(method), logger.Endpoint(endpoint),
		logger.StatusCode(resp.StatusCode), logger.Duration(time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, &Error{
			Code:       CodeResponse,
			Message:    fmt.Sprintf("server returned code %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, newError(CodeRequest, "failed to read response", err)
	}
	if len(data) > maxResponseSize {
		return nil, &Error{Code: CodeResponse, Message: "response too large", StatusCode: resp.StatusCode}
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &Error{Code: CodeResponse, Message: "malformed response body", StatusCode: resp.StatusCode, Err: err}
	}
	return env, nil
}
