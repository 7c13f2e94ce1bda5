package ziptax

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Adda-Baaj/salestax-lookup/internal/domain"
	"github.com/Adda-Baaj/salestax-lookup/pkg/httpclient"
)

const (
	// DefaultBaseURL is the public Zip-Tax API host.
	DefaultBaseURL = "https://api.zip-tax.com"

	requestPath  = "/request/v50"
	maxBodyQuote = 512
)

// Client issues sales tax lookups against the Zip-Tax v50 endpoint.
type Client struct {
	baseURL string
	http    httpclient.Client
	log     Logger
}

// NewClient builds a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, client httpclient.Client, log Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    client,
		log:     ensureLogger(log),
	}
}

// RequestURL builds the lookup URL. The key is inserted verbatim; the address is query-escaped.
func (c *Client) RequestURL(address, apiKey string) string {
	return fmt.Sprintf("%s%s?key=%s&address=%s", c.baseURL, requestPath, apiKey, url.QueryEscape(address))
}

// Fetch performs the GET and returns the raw body of a 200 response.
func (c *Client) Fetch(ctx context.Context, address, apiKey string) ([]byte, error) {
	if c == nil || c.http == nil {
		return nil, transportError(fmt.Errorf("ziptax client is not initialized"))
	}

	resp, err := c.http.Get(ctx, c.RequestURL(address, apiKey), nil)
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to make API request: %w", err))
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, &Error{
			Kind:       KindUnexpectedStatus,
			StatusCode: resp.StatusCode(),
			Body:       bodySnippet(body),
		}
	}
	c.log.DebugObj("ziptax response received", "ziptax_response", map[string]any{
		"status":     resp.StatusCode(),
		"body_bytes": len(body),
	})
	return body, nil
}

// Lookup fetches and maps the tax rates for address. Errors are always *Error.
func (c *Client) Lookup(ctx context.Context, address, apiKey string) (*domain.TaxQueryResponse, error) {
	body, err := c.Fetch(ctx, address, apiKey)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

// GetSalesTax is Lookup with every failure collapsed into a nil result. The
// cause is logged once; a non-nil result with no Results means the address
// matched no jurisdiction.
func (c *Client) GetSalesTax(ctx context.Context, address, apiKey string) *domain.TaxQueryResponse {
	resp, err := c.Lookup(ctx, address, apiKey)
	if err != nil {
		c.log.ErrorObj(FailureMessage(err), "ziptax_error", errorFields(err))
		return nil
	}
	return resp
}

// FailureMessage is the human-readable line logged for a failed lookup.
func FailureMessage(err error) string {
	return fmt.Sprintf("Error fetching sales tax: %v", err)
}

func errorFields(err error) map[string]any {
	fields := map[string]any{"error": err.Error()}
	var e *Error
	if errors.As(err, &e) {
		fields["kind"] = e.Kind.String()
		if e.Kind == KindUnexpectedStatus {
			fields["status_code"] = e.StatusCode
		}
	}
	return fields
}

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyQuote {
		return s[:maxBodyQuote] + "..."
	}
	return s
}
