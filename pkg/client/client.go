// Package client is a typed client for the listings API, mirroring the data
// hooks the storefront UI consumes, plus the admin session gate.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var ErrNotFound = errors.New("listing not found")

// Conditions offered by the admin form. Storage accepts any text.
var Conditions = []string{"New", "Used", "Like New"}

// Categories is the fixed category label set.
var Categories = []string{
	"FORD", "GMC / CHEVY", "RAM", "TOYOTA",
	"SERVICE BODIES", "DUMP BODIES", "ACCESSORIES", "OTHER",
}

// Listing mirrors the API's listing JSON.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Condition   string    `json:"condition"`
	Price       string    `json:"price"`
	OldPrice    string    `json:"old_price,omitempty"`
	Category    string    `json:"category,omitempty"`
	Fits        string    `json:"fits"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Description string    `json:"description,omitempty"`
	Pinned      bool      `json:"pinned"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListingInput carries the editable fields for create and update.
type ListingInput struct {
	Title       string
	Condition   string
	Price       string
	OldPrice    string
	Category    string
	Fits        string
	Location    string
	Description string
	Pinned      bool
}

// File is one image to upload.
type File struct {
	Name   string
	Reader io.Reader
}

// Client talks to the listings API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session *SessionStore // optional; Login stores the token here
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	return c.HTTP
}

type apiError struct {
	Error string `json:"error"`
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return fmt.Errorf("api: %s (status %d)", e.Error, resp.StatusCode)
	}
	return fmt.Errorf("api: status %d", resp.StatusCode)
}

// Listings fetches the full catalog, pinned first, newest first.
func (c *Client) Listings(ctx context.Context) ([]Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/listings", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var listings []Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}

// Listing fetches one listing, or ErrNotFound.
func (c *Client) Listing(ctx context.Context, id int64) (*Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listingURL(id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var listing Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &listing, nil
}

// Create posts a new listing with at least one image file and returns its id.
func (c *Client) Create(ctx context.Context, in ListingInput, files []File) (int64, error) {
	body, contentType, err := multipartBody(in, files)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/listings", body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, decodeError(resp)
	}
	var out struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode create response: %w", err)
	}
	return out.Data.ID, nil
}

// Update replaces a listing's fields. Files may be nil to keep the current
// images. Returns the number of rows changed (zero for an unknown id).
func (c *Client) Update(ctx context.Context, id int64, in ListingInput, files []File) (int64, error) {
	body, contentType, err := multipartBody(in, files)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.listingURL(id), body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, decodeError(resp)
	}
	return decodeChanges(resp.Body)
}

// TogglePin flips the pinned flag and returns the new value.
func (c *Client) TogglePin(ctx context.Context, id int64) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.listingURL(id)+"/toggle-pin", nil)
	if err != nil {
		return false, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return false, decodeError(resp)
	}
	var out struct {
		Pinned bool `json:"pinned"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode toggle-pin response: %w", err)
	}
	return out.Pinned, nil
}

// Delete removes a listing and returns the number of rows removed.
func (c *Client) Delete(ctx context.Context, id int64) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.listingURL(id), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, decodeError(resp)
	}
	return decodeChanges(resp.Body)
}

// Login authenticates the admin pair. On success the token is stored in the
// session gate (when one is attached) and returned.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	b, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/login", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if c.Session != nil {
		if err := c.Session.SetToken(out.Token); err != nil {
			return "", err
		}
	}
	return out.Token, nil
}

// Logout clears the stored admin token.
func (c *Client) Logout() error {
	if c.Session == nil {
		return nil
	}
	return c.Session.Clear()
}

func (c *Client) listingURL(id int64) string {
	return c.BaseURL + "/api/listings/" + strconv.FormatInt(id, 10)
}

func decodeChanges(r io.Reader) (int64, error) {
	var out struct {
		Changes int64 `json:"changes"`
	}
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode changes: %w", err)
	}
	return out.Changes, nil
}

func multipartBody(in ListingInput, files []File) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":       in.Title,
		"condition":   in.Condition,
		"price":       in.Price,
		"old_price":   in.OldPrice,
		"category":    in.Category,
		"fits":        in.Fits,
		"location":    in.Location,
		"description": in.Description,
		"pinned":      strconv.FormatBool(in.Pinned),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile("images", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, f.Reader); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
