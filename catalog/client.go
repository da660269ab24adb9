// Package catalog implements the snapcraft.io catalog client (§4.3):
// translating a snap_id to a display name and category list via two
// HTTPS endpoints, with a non-expiring, single-flight display-name
// cache.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fastjson"

	"github.com/canonical/ratings/apperr"
	"github.com/canonical/ratings/cache"
	"github.com/canonical/ratings/ratings"
)

const (
	userAgent      = "ratings-service"
	deviceSeries   = "16"
	defaultTimeout = 10 * time.Second
)

// Client talks to the snapcraft.io catalog over HTTPS.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration

	names *cache.TTLCache[string, string]

	parserPool fastjson.ParserPool
}

// NewClient builds a Client against baseURL (e.g. "https://api.snapcraft.io/v2/").
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		http:    &fasthttp.Client{Name: userAgent},
		timeout: timeout,
		names:   cache.New[string, string](0, 0), // unbounded, no expiry, per §4.3
	}
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// DisplayName returns the catalog's display name for snapID, collapsing
// concurrent lookups for the same snapID into a single upstream request.
func (c *Client) DisplayName(ctx context.Context, snapID string) (string, error) {
	return c.names.GetOrFill(ctx, snapID, snapID, func(ctx context.Context) (string, error) {
		return c.lookupDisplayName(ctx, snapID)
	})
}

// Categories fetches the category list for snapID directly from the
// catalog (no caching here — the category coordinator owns persistence
// and freshness of categories).
func (c *Client) Categories(ctx context.Context, snapID string) ([]ratings.Category, error) {
	name, err := c.DisplayName(ctx, snapID)
	if err != nil {
		return nil, err
	}

	return c.lookupCategories(ctx, name)
}

func (c *Client) lookupDisplayName(ctx context.Context, snapID string) (string, error) {
	url := fmt.Sprintf("%s/assertions/snap-declaration/16/%s", c.baseURL, snapID)

	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}

	parser := c.parserPool.Get()
	defer c.parserPool.Put(parser)

	v, err := parser.ParseBytes(body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse snap-declaration response for %s", snapID)
	}

	name := v.GetStringBytes("headers", "snap-name")
	if name == nil {
		return "", errors.Errorf("snap-declaration response for %s has no headers.snap-name", snapID)
	}

	return string(name), nil
}

func (c *Client) lookupCategories(ctx context.Context, snapName string) ([]ratings.Category, error) {
	url := fmt.Sprintf("%s/snaps/info/%s?fields=categories", c.baseURL, snapName)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	parser := c.parserPool.Get()
	defer c.parserPool.Put(parser)

	v, err := parser.ParseBytes(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse snap info response for %s", snapName)
	}

	entries := v.GetArray("snap", "categories")

	categories := make([]ratings.Category, 0, len(entries))
	for _, entry := range entries {
		nameBytes := entry.GetStringBytes("name")
		if nameBytes == nil {
			continue
		}

		cat, ok := ratings.ParseCategory(string(nameBytes))
		if !ok {
			return nil, errors.Errorf("unrecognized catalog category %q for snap %s", nameBytes, snapName)
		}

		categories = append(categories, cat)
	}

	return categories, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderUserAgent, userAgent)
	req.Header.Set("Snap-Device-Series", deviceSeries)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return nil, apperr.Internalf("catalog request failed", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, apperr.Internalf(
			fmt.Sprintf("catalog returned status %d for %s", resp.StatusCode(), url),
			errors.Errorf("non-2xx catalog response"),
		)
	}

	// Body() is only valid until the response is released; copy it out.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())

	return body, nil
}
