package webflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fluxlocale/weft"
	"github.com/fluxlocale/weft/cache"
)

const defaultBaseURL = "https://api.webflow.com/v2"

// Client talks to the Webflow v2 Data API with a bearer token.
type Client struct {
	http  *resty.Client
	cache cache.MetadataCache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Tests point this at a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithCache enables read-through caching of metadata listings (locales,
// pages, components, collections). DOM reads and all writes always hit the
// API directly.
func WithCache(mc cache.MetadataCache) Option {
	return func(c *Client) {
		c.cache = mc
	}
}

// New creates a client for the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second).
			SetAuthToken(token).
			SetHeader("accept", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateToken checks the token by listing sites, translating the common
// authorization failures into actionable messages.
func (c *Client) ValidateToken(ctx context.Context) error {
	_, err := c.Sites(ctx)
	var rejected *weft.RemoteRejectedError
	if errors.As(err, &rejected) {
		switch rejected.Status {
		case 401:
			return fmt.Errorf("invalid API token; check the token and its pages:read permission: %w", err)
		case 403:
			return fmt.Errorf("API token lacks the required scope (pages:read): %w", err)
		}
	}
	return err
}

// Sites lists the sites visible to the token.
func (c *Client) Sites(ctx context.Context) ([]Site, error) {
	var out struct {
		Sites []Site `json:"sites"`
	}
	if err := c.get(ctx, "/sites", nil, &out); err != nil {
		return nil, err
	}
	return out.Sites, nil
}

// SiteLocales fetches the site's locale configuration.
func (c *Client) SiteLocales(ctx context.Context, siteID string) (Locales, error) {
	var out struct {
		Locales Locales `json:"locales"`
	}
	if err := c.getCached(ctx, "locales:"+siteID, "/sites/"+siteID, nil, &out); err != nil {
		return Locales{}, err
	}
	return out.Locales, nil
}

// Pages lists the site's pages.
func (c *Client) Pages(ctx context.Context, siteID string) ([]Page, error) {
	var out struct {
		Pages []Page `json:"pages"`
	}
	if err := c.getCached(ctx, "pages:"+siteID, "/sites/"+siteID+"/pages", nil, &out); err != nil {
		return nil, err
	}
	return out.Pages, nil
}

// PageDOM reads a page's content tree.
func (c *Client) PageDOM(ctx context.Context, pageID string) (*weft.ContentTree, error) {
	tree := &weft.ContentTree{}
	req := c.http.R().SetContext(ctx).SetHeader("accept-version", "1.0.0").SetResult(tree)
	resp, err := req.Get("/pages/" + pageID + "/dom")
	if err != nil {
		return nil, &weft.BackendError{Message: "fetching page content", Cause: err}
	}
	if resp.IsError() {
		return nil, &weft.RemoteRejectedError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return tree, nil
}

// UpdatePageDOM writes translated nodes to a page for one locale.
func (c *Client) UpdatePageDOM(ctx context.Context, pageID, localeID string, payload weft.WriteRequest) error {
	return c.post(ctx, "/pages/"+pageID+"/dom", localeID, payload)
}

// Components lists the site's components.
func (c *Client) Components(ctx context.Context, siteID string) ([]Component, error) {
	var out struct {
		Components []Component `json:"components"`
	}
	if err := c.getCached(ctx, "components:"+siteID, "/sites/"+siteID+"/components", nil, &out); err != nil {
		return nil, err
	}
	return out.Components, nil
}

// ComponentDOM reads a component's content tree.
func (c *Client) ComponentDOM(ctx context.Context, siteID, componentID string) (*weft.ContentTree, error) {
	tree := &weft.ContentTree{}
	req := c.http.R().SetContext(ctx).SetHeader("accept-version", "1.0.0").SetResult(tree)
	resp, err := req.Get("/sites/" + siteID + "/components/" + componentID + "/dom")
	if err != nil {
		return nil, &weft.BackendError{Message: "fetching component content", Cause: err}
	}
	if resp.IsError() {
		return nil, &weft.RemoteRejectedError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return tree, nil
}

// UpdateComponentDOM writes translated nodes to a component for one locale.
func (c *Client) UpdateComponentDOM(ctx context.Context, siteID, componentID, localeID string, payload weft.WriteRequest) error {
	return c.post(ctx, "/sites/"+siteID+"/components/"+componentID+"/dom", localeID, payload)
}

// Collections lists the site's CMS collections.
func (c *Client) Collections(ctx context.Context, siteID string) ([]Collection, error) {
	var out struct {
		Collections []Collection `json:"collections"`
	}
	if err := c.getCached(ctx, "collections:"+siteID, "/sites/"+siteID+"/collections", nil, &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}

// Items lists a collection's items in the primary locale.
func (c *Client) Items(ctx context.Context, collectionID string, offset, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 100
	}
	var out struct {
		Items []Item `json:"items"`
	}
	params := map[string]string{
		"offset": fmt.Sprintf("%d", offset),
		"limit":  fmt.Sprintf("%d", limit),
	}
	if err := c.get(ctx, "/collections/"+collectionID+"/items", params, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Item reads one collection item in the given CMS locale.
func (c *Client) Item(ctx context.Context, collectionID, itemID, cmsLocaleID string) (*Item, error) {
	item := &Item{}
	params := map[string]string{}
	if cmsLocaleID != "" {
		params["cmsLocaleId"] = cmsLocaleID
	}
	if err := c.get(ctx, "/collections/"+collectionID+"/items/"+itemID, params, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem patches one collection item's field data for a CMS locale.
// FieldData must carry untranslated fields through unchanged; the store
// treats the patch as the locale's complete field set.
func (c *Client) UpdateItem(ctx context.Context, collectionID, itemID, cmsLocaleID string, fieldData map[string]any, isDraft, isArchived bool) error {
	body := map[string]any{
		"isArchived":  isArchived,
		"isDraft":     isDraft,
		"fieldData":   fieldData,
		"cmsLocaleId": cmsLocaleID,
	}
	resp, err := c.http.R().SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(body).
		Patch("/collections/" + collectionID + "/items/" + itemID)
	if err != nil {
		return &weft.BackendError{Message: "updating collection item", Cause: err}
	}
	if resp.IsError() {
		return &weft.RemoteRejectedError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// PageWriter binds a page to a batch-run write function. The target's DOM
// locale identifier selects the locale being written.
func (c *Client) PageWriter(pageID string) weft.WriteFunc {
	return func(ctx context.Context, target weft.LocaleTarget, req weft.WriteRequest) error {
		return c.UpdatePageDOM(ctx, pageID, target.LocaleID, req)
	}
}

// ComponentWriter binds a component to a batch-run write function.
func (c *Client) ComponentWriter(siteID, componentID string) weft.WriteFunc {
	return func(ctx context.Context, target weft.LocaleTarget, req weft.WriteRequest) error {
		return c.UpdateComponentDOM(ctx, siteID, componentID, target.LocaleID, req)
	}
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.http.R().SetContext(ctx).SetResult(out)
	if params != nil {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		return &weft.BackendError{Message: "fetching " + path, Cause: err}
	}
	if resp.IsError() {
		return &weft.RemoteRejectedError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// getCached is a read-through wrapper around get for metadata listings.
// Cache failures fall back to the API silently.
func (c *Client) getCached(ctx context.Context, key, path string, params map[string]string, out any) error {
	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			if err := json.Unmarshal([]byte(body), out); err == nil {
				return nil
			}
		}
	}

	req := c.http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		return &weft.BackendError{Message: "fetching " + path, Cause: err}
	}
	if resp.IsError() {
		return &weft.RemoteRejectedError{Status: resp.StatusCode(), Body: resp.String()}
	}
	body := resp.Body()
	if err := json.Unmarshal(body, out); err != nil {
		return &weft.BackendError{Message: "decoding " + path, Cause: err}
	}
	if c.cache != nil {
		_ = c.cache.Set(key, string(body)) // Ignore cache set errors
	}
	return nil
}

func (c *Client) post(ctx context.Context, path, localeID string, payload weft.WriteRequest) error {
	req := c.http.R().SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(payload)
	if localeID != "" {
		req.SetQueryParam("localeId", localeID)
	}
	resp, err := req.Post(path)
	if err != nil {
		return &weft.BackendError{Message: "writing " + path, Cause: err}
	}
	if resp.IsError() {
		return &weft.RemoteRejectedError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
