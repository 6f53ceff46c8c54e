package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"catalog-importer/internal/clients"
	"catalog-importer/internal/models"
)

// Client is a Shopify Admin REST API client scoped to the product
// operations the importer needs.
type Client struct {
	httpClient  *http.Client
	retrier     *clients.Retrier
	rateLimiter *rate.Limiter
	storeURL    string
	accessToken string
	apiVersion  string
}

// Options configures a Client
type Options struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	MaxRetries  int
	RateLimit   int // requests per second

	// BaseURL overrides the URL derived from ShopDomain when set
	BaseURL string
}

// NewClient creates a new Shopify Admin API client. The shop domain may be
// given as a bare store name or a full *.myshopify.com domain.
func NewClient(opts Options) *Client {
	storeURL := opts.BaseURL
	if storeURL == "" {
		domain := opts.ShopDomain
		if !strings.Contains(domain, ".") {
			domain += ".myshopify.com"
		}
		storeURL = "https://" + domain
	}
	rps := opts.RateLimit
	if rps <= 0 {
		rps = 2
	}
	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = "2024-01"
	}

	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		retrier:     clients.NewRetrier(clients.DefaultRetryConfig(opts.MaxRetries)),
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 1),
		storeURL:    storeURL,
		accessToken: opts.AccessToken,
		apiVersion:  apiVersion,
	}
}

var _ clients.CatalogClient = (*Client)(nil)

// TestConnection verifies the connection is working
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/shop.json", nil, nil)
	return err
}

// FindProductByTitle returns the first product whose title matches exactly,
// or nil when none exists. Shopify's title filter is a substring match, so
// results are compared against the requested title.
func (c *Client) FindProductByTitle(ctx context.Context, title string) (*clients.RemoteProduct, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("limit", "10")

	body, err := c.doRequest(ctx, http.MethodGet, "/products.json", params, nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Products []wireProduct `json:"products"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}

	for _, p := range response.Products {
		if p.Title == title {
			remote := convertProduct(p)
			return &remote, nil
		}
	}
	return nil, nil
}

// CreateProduct creates a new product from a normalized record
func (c *Client) CreateProduct(ctx context.Context, product *models.ProductRecord) (*clients.RemoteProduct, error) {
	payload := map[string]wireProduct{"product": toWireProduct(product)}

	body, err := c.doRequest(ctx, http.MethodPost, "/products.json", nil, payload)
	if err != nil {
		return nil, err
	}
	return parseProductResponse(body)
}

// UpdateProduct overwrites an existing product with a normalized record
func (c *Client) UpdateProduct(ctx context.Context, id int64, product *models.ProductRecord) (*clients.RemoteProduct, error) {
	wire := toWireProduct(product)
	wire.ID = id
	payload := map[string]wireProduct{"product": wire}

	body, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/products/%d.json", id), nil, payload)
	if err != nil {
		return nil, err
	}
	return parseProductResponse(body)
}

// doRequest performs an authenticated, rate-limited, retrying HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, body interface{}) ([]byte, error) {
	fullURL := fmt.Sprintf("%s/admin/api/%s%s", c.storeURL, c.apiVersion, path)
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	operation := method + " " + path
	resp, err := c.retrier.DoHTTP(ctx, operation, func(ctx context.Context) (*http.Response, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		var reqBody io.Reader
		if jsonBody != nil {
			reqBody = bytes.NewReader(jsonBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Shopify-Access-Token", c.accessToken)
		req.Header.Set("Content-Type", "application/json")

		return c.httpClient.Do(req)
	})
	if resp == nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	if err != nil {
		return nil, err
	}

	return respBody, nil
}

// APIError carries a non-2xx response from the catalog API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Shopify API error (status %d): %s", e.StatusCode, e.Body)
}

func parseProductResponse(body []byte) (*clients.RemoteProduct, error) {
	var response struct {
		Product wireProduct `json:"product"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse product response: %w", err)
	}
	remote := convertProduct(response.Product)
	return &remote, nil
}
