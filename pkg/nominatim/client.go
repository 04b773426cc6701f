// package nominatim is a client for the Nominatim geocoding API. It covers
// the status, search, reverse and lookup endpoints of both the public
// OpenStreetMap instance and self-hosted ones.
//
// Requests against the public instance must identify the calling
// application, so the client always attaches the configured identification
// header. See https://operations.osmfoundation.org/policies/nominatim/.
package nominatim

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public OpenStreetMap instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org/"

type Client struct {
	h       *http.Client
	ident   IdentificationMethod
	baseURL *url.URL
}

// New creates a client against the public instance with a 10 second request
// timeout.
func New(ident IdentificationMethod) *Client {
	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		// the default is a constant; it always parses.
		panic(err)
	}

	return &Client{
		h:       &http.Client{Timeout: 10 * time.Second},
		ident:   ident,
		baseURL: base,
	}
}

// SetBaseURL points the client at a different Nominatim instance. The URL
// must be absolute.
func (c *Client) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}

	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base url %q is not an absolute url", raw)
	}

	c.baseURL = u
	return nil
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.h.Timeout = d
}

// SetHTTPClient swaps the underlying transport, e.g. for
// whttp.NewLoggingClient. The client's timeout is kept as configured on h.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.h = h
}

// Status checks the health of the Nominatim server. A non-zero Status field
// in the result means the server reported a fault; that is returned as data
// for the caller to inspect, not as an error.
func (c *Client) Status() (*Status, error) {
	u := c.baseURL.JoinPath("status.php")
	u.RawQuery = "format=json"

	var s Status
	if err := c.getJSON(u, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Search geocodes a free-text query. The results keep the server's ranking;
// an empty slice is a valid answer, not an error.
func (c *Client) Search(query string) ([]Place, error) {
	u := *c.baseURL

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("extratags", "1")
	u.RawQuery = q.Encode()

	var places []Place
	if err := c.getJSON(&u, &places); err != nil {
		return nil, err
	}

	return places, nil
}

// SearchStructured geocodes a query expressed as discrete address
// components. Empty components are left out of the request.
func (c *Client) SearchStructured(query StructuredQuery) ([]Place, error) {
	u := *c.baseURL

	q := url.Values{}
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("extratags", "1")

	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("amenity", query.Amenity)
	set("street", query.Street)
	set("city", query.City)
	set("county", query.County)
	set("state", query.State)
	set("country", query.Country)
	set("postalcode", query.PostalCode)
	u.RawQuery = q.Encode()

	var places []Place
	if err := c.getJSON(&u, &places); err != nil {
		return nil, err
	}

	return places, nil
}

// Reverse resolves a coordinate pair to the nearest enclosing place. The
// coordinates are decimal strings so they reach the wire exactly as given,
// modulo stripped whitespace. zoom narrows the administrative level (0-18
// per the API docs, not validated here); pass nil to let the server pick.
//
// When the server reports it can't geocode the coordinates, e.g. over open
// ocean, Reverse returns (nil, nil) rather than an error.
func (c *Client) Reverse(lat, lon string, zoom *int) (*Place, error) {
	u := c.baseURL.JoinPath("reverse")

	q := url.Values{}
	q.Set("lat", stripSpaces(lat))
	q.Set("lon", stripSpaces(lon))
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("extratags", "1")
	if zoom != nil {
		q.Set("zoom", strconv.Itoa(*zoom))
	}
	u.RawQuery = q.Encode()

	data, err := c.get(u)
	if err != nil {
		return nil, err
	}

	// The body is either a place object or {"error": "..."}; probe for the
	// error key before decoding the place.
	var apiErr errorResponse
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
		return nil, nil
	}

	var p Place
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode place: %w", err)
	}

	return &p, nil
}

// Lookup resolves OSM references such as "R146656" or "W50637691" to
// places. Ids the server can't resolve are silently missing from the result,
// so the output may be shorter than the input.
func (c *Client) Lookup(osmIDs []string) ([]Place, error) {
	u := c.baseURL.JoinPath("lookup")

	q := url.Values{}
	q.Set("osm_ids", strings.Join(osmIDs, ","))
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("extratags", "1")
	u.RawQuery = q.Encode()

	var places []Place
	if err := c.getJSON(u, &places); err != nil {
		return nil, err
	}

	return places, nil
}

func (c *Client) get(u *url.URL) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set(c.ident.Header(), c.ident.Value())

	res, err := c.h.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim responded %s", res.Status)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return data, nil
}

func (c *Client) getJSON(u *url.URL, v any) error {
	data, err := c.get(u)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
