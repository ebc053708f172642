package bangumi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Bangumi rejects requests without a descriptive User-Agent.
const userAgent = "Sonarr Custom List/1.0"

// Client talks to the Bangumi (bgm.tv) legacy collection API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Subject is one entry of a user's collection.
type Subject struct {
	Name   string `json:"name"`
	NameCN string `json:"name_cn"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetWatching returns the user's collection filtered to currently-watching
// subjects, in the order Bangumi returns them.
func (c *Client) GetWatching(userID string) ([]Subject, error) {
	collectionURL := fmt.Sprintf("%s/user/%s/collection?cat=watching", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequest("GET", collectionURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Bangumi collection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bangumi API request failed with status: %d", resp.StatusCode)
	}

	var subjects []Subject
	if err := json.NewDecoder(resp.Body).Decode(&subjects); err != nil {
		return nil, fmt.Errorf("failed to decode Bangumi response: %w", err)
	}
	return subjects, nil
}
