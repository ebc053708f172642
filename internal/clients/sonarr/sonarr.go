package sonarr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a Sonarr instance's v3 API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Series is the subset of Sonarr's series resource the importer needs.
type Series struct {
	Title  string `json:"title"`
	TVDBId int    `json:"tvdbId"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Sonarr proxies lookups to TheTVDB, which can be slow
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) sendRequest(requestURL string, target interface{}) error {
	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sonarr API request failed with status: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// LookupSeries searches Sonarr for series matching term. Result order is
// Sonarr's own ranking; callers treat the first entry as authoritative.
func (c *Client) LookupSeries(term string) ([]Series, error) {
	lookupURL := fmt.Sprintf("%s/api/v3/series/lookup?term=%s", c.baseURL, url.QueryEscape(term))

	var results []Series
	if err := c.sendRequest(lookupURL, &results); err != nil {
		return nil, fmt.Errorf("failed to look up series on Sonarr: %w", err)
	}
	return results, nil
}
