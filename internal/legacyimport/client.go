package legacyimport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AdminClient talks to the storefront's admin HTTP API so imported rows pass
// the same validation as any back-office edit.
type AdminClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewAdminClient builds a client for the given API base URL.
func NewAdminClient(baseURL string) *AdminClient {
	return &AdminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Login authenticates and stores the bearer token for later calls.
func (c *AdminClient) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	var result struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/admin/login", payload, &result); err != nil {
		return fmt.Errorf("admin login: %w", err)
	}
	if result.Token == "" {
		return fmt.Errorf("admin login: empty token in response")
	}
	c.token = result.Token
	return nil
}

// CategoryRef is the slug/id pair returned by the category listing.
type CategoryRef struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// ListCategories fetches the category table for slug resolution.
func (c *AdminClient) ListCategories(ctx context.Context) ([]CategoryRef, error) {
	var result []CategoryRef
	if err := c.get(ctx, "/admin/categories", &result); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return result, nil
}

// ProductRef is the subset of product fields the importer reads back.
type ProductRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// productPageSize matches the admin listing's row cap.
const productPageSize = 100

// ListProducts walks every page of the admin listing so already-imported
// titles can be skipped on re-runs. Stopping at the first page would blind
// the dedupe to anything older than the newest rows.
func (c *AdminClient) ListProducts(ctx context.Context) ([]ProductRef, error) {
	var all []ProductRef
	for offset := 0; ; offset += productPageSize {
		var page []ProductRef
		path := fmt.Sprintf("/admin/products?limit=%d&offset=%d", productPageSize, offset)
		if err := c.get(ctx, path, &page); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		all = append(all, page...)
		if len(page) < productPageSize {
			return all, nil
		}
	}
}

// CreateProductRequest mirrors the admin create-product body.
type CreateProductRequest struct {
	SKU         *string        `json:"sku,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	PriceCents  int            `json:"price_cents"`
	Currency    string         `json:"currency,omitempty"`
	CategoryID  *string        `json:"category_id,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// CreateProduct posts one product through the admin API.
func (c *AdminClient) CreateProduct(ctx context.Context, req CreateProductRequest) error {
	if err := c.post(ctx, "/admin/products", req, nil); err != nil {
		return fmt.Errorf("create product %q: %w", req.Title, err)
	}
	return nil
}

func (c *AdminClient) post(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *AdminClient) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

func (c *AdminClient) do(req *http.Request, dest any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("api returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("api returned %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
