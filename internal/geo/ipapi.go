package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseUrl = "https://ipapi.co"

// Response is the subset of the ipapi.co payload we care about.
// Missing or null fields decode to empty strings, numbers and booleans to their text.
type Response struct {
	IP          string `json:"ip"`
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
}

func (r *Response) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return err
	}

	*r = Response{
		IP:          fieldText(fields["ip"]),
		City:        fieldText(fields["city"]),
		Region:      fieldText(fields["region"]),
		CountryName: fieldText(fields["country_name"]),
		CountryCode: fieldText(fields["country_code"]),
	}
	return nil
}

// fieldText renders scalar json values as text, anything else as an empty string
func fieldText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// StatusError is returned when the geolocation API answers with a non-200 status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// Client resolves IP addresses against ipapi.co
type Client struct {
	BaseUrl   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{
		BaseUrl: strings.TrimRight(baseUrl, "/"),
		Timeout: timeout,
	}
}

// endpoint returns the lookup url for ip, or the self-lookup url if ip is empty
func (c *Client) endpoint(ip string) string {
	if ip == "" {
		return c.BaseUrl + "/json/"
	}
	return fmt.Sprintf("%s/%s/json/", c.BaseUrl, url.PathEscape(ip))
}

// Locate looks up the location of ip. An empty ip resolves the caller's own address.
func (c *Client) Locate(ctx context.Context, ip string) (*Response, error) {
	transport := c.Transport
	if transport == nil {
		transport = &http.Transport{Proxy: http.ProxyFromEnvironment}
	}

	// Connections live only as long as this lookup
	client := &http.Client{Timeout: c.Timeout, Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(ip), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tunescout/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
