package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a thin Canvas REST client. All listing endpoints are paginated
// via the Link response header, so the client exposes a single paginated GET
// that callers decode page by page.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// getPaginated fetches every page of a Canvas collection endpoint and returns
// the concatenated raw JSON objects. Canvas pagination carries the next page
// as a full URL in the Link header with rel="next"; when that link is absent
// or unparseable the walk ends. That termination rule is deliberate: a
// malformed Link header must end the stream, not loop it.
func (c *Client) getPaginated(ctx context.Context, path string, params url.Values) ([]json.RawMessage, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var out []json.RawMessage
	for u != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("canvas request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read canvas response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("canvas API error (%d): %s", resp.StatusCode, string(body))
		}

		var page []json.RawMessage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to parse canvas response: %w", err)
		}
		out = append(out, page...)

		u = nextPageURL(resp.Header.Get("Link"))
	}

	return out, nil
}

// nextPageURL extracts the rel="next" URL from a Canvas Link header.
// Returns "" when there is no next page, which terminates pagination.
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		segs := strings.Split(part, ";")
		link := strings.TrimSpace(segs[0])
		if len(link) < 2 || !strings.HasPrefix(link, "<") || !strings.HasSuffix(link, ">") {
			// Malformed link: treat as end of stream rather than guessing.
			return ""
		}
		return link[1 : len(link)-1]
	}
	return ""
}
