// Package opendata talks to a CKAN-style open-data catalogue: paged
// datastore_search record fetches plus package resource discovery.
package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/openshelf/branch-events/internal/domain"
)

// Page is one datastore_search response slice. Record order is stable
// across calls for a given offset/limit; the paginator depends on that.
type Page struct {
	Records []domain.RawRecord
	Total   int
}

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

type datastoreSearchBody struct {
	Success bool `json:"success"`
	Result  struct {
		Records []domain.RawRecord `json:"records"`
		Total   int                `json:"total"`
	} `json:"result"`
}

// FetchPage retrieves one page of a datastore resource. Any transport or
// catalogue failure surfaces as source_unavailable; there is no retry
// here, that policy belongs to the caller if anywhere.
func (c *Client) FetchPage(ctx context.Context, resourceID string, offset, limit int) (Page, error) {
	q := url.Values{}
	q.Set("resource_id", resourceID)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var body datastoreSearchBody
	if err := c.getJSON(ctx, "/api/3/action/datastore_search?"+q.Encode(), &body); err != nil {
		return Page{}, err
	}
	if !body.Success {
		return Page{}, domain.ErrSourceUnavailable("datastore_search reported failure", nil)
	}
	return Page{Records: body.Result.Records, Total: body.Result.Total}, nil
}

type packageShowBody struct {
	Success bool `json:"success"`
	Result  struct {
		Resources []struct {
			ID              string `json:"id"`
			DatastoreActive bool   `json:"datastore_active"`
		} `json:"resources"`
	} `json:"result"`
}

// FindDatastoreResource resolves a dataset (package) id to its first
// datastore-active resource id. A dataset without one is unusable and
// yields no_datastore_resource.
func (c *Client) FindDatastoreResource(ctx context.Context, packageID string) (string, error) {
	q := url.Values{}
	q.Set("id", packageID)

	var body packageShowBody
	if err := c.getJSON(ctx, "/api/3/action/package_show?"+q.Encode(), &body); err != nil {
		return "", err
	}
	if !body.Success {
		return "", domain.ErrSourceUnavailable("package_show reported failure", nil)
	}
	for _, res := range body.Result.Resources {
		if res.DatastoreActive {
			return res.ID, nil
		}
	}
	return "", domain.ErrNoDatastoreResource("package has no datastore-active resource: " + packageID)
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return domain.ErrSourceUnavailable("building catalogue request", err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.ErrSourceUnavailable("catalogue request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ErrSourceUnavailable(fmt.Sprintf("catalogue returned HTTP %d", resp.StatusCode), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.ErrSourceUnavailable("decoding catalogue response", err)
	}
	return nil
}
