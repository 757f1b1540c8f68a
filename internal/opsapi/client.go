package opsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StateFetcher defines the interface for retrieving backend state. It is
// implemented by *Client and by test fakes.
type StateFetcher interface {
	FetchUnifiedState(ctx context.Context) (*UnifiedState, error)
	FetchConvoyVehicles(ctx context.Context, convoyID int64) ([]Vehicle, error)
}

// Ensure Client implements StateFetcher at compile time.
var _ StateFetcher = (*Client)(nil)

// Client talks to the backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	unifiedStatePath = "/api/v1/advanced/unified/state"

	defaultBackendAddr = "127.0.0.1:8787"
	defaultUserAgent   = "vanguard/0.1"
	requestTimeout     = 10 * time.Second
)

// requiredSections are the top-level fields every unified state document must
// carry. A document missing any of them is rejected as malformed rather than
// published with zero-value holes.
var requiredSections = []string{
	"timestamp", "sync_id", "convoys", "routes", "tcps", "threats",
	"military_assets", "scheduling", "metrics", "ai_analysis", "system_status",
}

// NewClient builds a Client from a backend base URL or host:port value.
func NewClient(backend string) (*Client, error) {
	base, err := parseBaseURL(backend)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchUnifiedState retrieves and validates the aggregate state document.
func (c *Client) FetchUnifiedState(ctx context.Context) (*UnifiedState, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.get(ctx, unifiedStatePath)
	if err != nil {
		return nil, err
	}
	return decodeUnifiedState(body)
}

// FetchConvoyVehicles retrieves the vehicle roster for one convoy.
func (c *Client) FetchConvoyVehicles(ctx context.Context, convoyID int64) ([]Vehicle, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if convoyID <= 0 {
		return nil, fmt.Errorf("convoy id required")
	}
	path := "/api/v1/convoys/" + strconv.FormatInt(convoyID, 10) + "/vehicles"
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var payload VehicleListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, shapeErr("decode vehicles: " + err.Error())
	}
	return payload.Vehicles, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, networkErr(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpErr(path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkErr(fmt.Errorf("read response: %w", err))
	}
	return body, nil
}

// decodeUnifiedState parses the document and enforces its shape: all required
// top-level sections must be present, not merely absent-and-defaulted.
func decodeUnifiedState(body []byte) (*UnifiedState, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(body, &sections); err != nil {
		return nil, shapeErr("decode response: " + err.Error())
	}
	for _, name := range requiredSections {
		if _, ok := sections[name]; !ok {
			return nil, shapeErr("missing section " + name)
		}
	}
	var state UnifiedState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, shapeErr("decode response: " + err.Error())
	}
	return &state, nil
}

func parseBaseURL(backend string) (*url.URL, error) {
	trimmed := strings.TrimSpace(backend)
	if trimmed == "" {
		trimmed = defaultBackendAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", backend, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
