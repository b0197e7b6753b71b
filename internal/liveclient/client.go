package liveclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const DefaultURL = "https://127.0.0.1:2999/liveclientdata/allgamedata"

var ErrUpstreamUnreachable = errors.New("live client unreachable")
var ErrGameNotReady = errors.New("live game not ready")

// Source produces the raw allgamedata document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Client talks to the game client's local Live Client Data API.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient trusts the game client's self-signed certificate.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusServiceUnavailable:
		// loading screen: the API is up but has no game yet
		return nil, fmt.Errorf("%w: status %d", ErrGameNotReady, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamUnreachable, err)
	}
	return body, nil
}

// FileSource replays a saved allgamedata document, for running without a game.
type FileSource struct {
	Path string
}

func (f FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
	}
	return data, nil
}
