// Package upstream holds the orchestrator's typed clients for the inventory,
// user and pricing services. Every failure leaves a client as a coded
// *apperrors.Error: <SERVICE>_NOT_FOUND for a 404 and <SERVICE>_API_ERROR
// for anything else, including transport failures.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/requestid"
)

const maxErrorBody = 64 << 10

// Client performs JSON GETs against one service.
type Client struct {
	service string
	baseURL string
	http    *http.Client
}

// NewClient builds a client for service (e.g. "INVENTORY"), which prefixes
// every error code it produces.
func NewClient(service, baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		service: strings.ToUpper(service),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) NotFoundCode() string { return c.service + "_NOT_FOUND" }
func (c *Client) APIErrorCode() string { return c.service + "_API_ERROR" }

// DefaultMessage is used when the upstream gives no message of its own.
func (c *Client) DefaultMessage() string {
	name := strings.ToLower(c.service)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name + " service request failed"
}

// GetJSON fetches path with query and decodes a 2xx body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return apperrors.Upstream(c.APIErrorCode(), c.DefaultMessage(), 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if id := requestid.From(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Upstream(c.APIErrorCode(), c.DefaultMessage(), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Upstream(c.APIErrorCode(), c.DefaultMessage(), resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(data, &body)

	msg := strings.TrimSpace(body.Message)
	if msg == "" {
		msg = c.DefaultMessage()
	}
	cause := fmt.Errorf("status %d", resp.StatusCode)
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.UpstreamNotFound(c.NotFoundCode(), msg, resp.StatusCode, cause)
	}
	return apperrors.Upstream(c.APIErrorCode(), msg, resp.StatusCode, cause)
}

// remap swaps a not-found code for the orchestrator's entity-level code.
func remap(err error, from, to string) error {
	if ae, ok := apperrors.As(err); ok && ae.Code == from {
		return ae.WithCode(to)
	}
	return err
}
