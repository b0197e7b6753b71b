package ddragon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

var ErrReferenceUnavailable = errors.New("reference data unavailable")

// Fetcher returns the body of a GET request.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

type Client struct {
	baseURL string
	fetcher Fetcher
	log     *zap.Logger
}

func NewClient(baseURL string, fetcher Fetcher, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, fetcher: fetcher, log: log}
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", ErrReferenceUnavailable, url, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrReferenceUnavailable, url, err)
	}
	return nil
}

// ResolveCurrentPatch returns the newest entry of versions.json.
func (c *Client) ResolveCurrentPatch(ctx context.Context) (string, error) {
	var versions []string
	if err := c.getJSON(ctx, c.baseURL+"/api/versions.json", &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("%w: no versions available", ErrReferenceUnavailable)
	}
	return versions[0], nil
}

// ItemPrices maps item id to its total gold cost.
type ItemPrices map[int]int

func (p ItemPrices) Price(itemID int) (int, bool) {
	v, ok := p[itemID]
	return v, ok
}

func (c *Client) LoadItemPrices(ctx context.Context, patch string) (ItemPrices, error) {
	var doc struct {
		Data map[string]struct {
			Gold struct {
				Total int `json:"total"`
			} `json:"gold"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/item.json", c.baseURL, patch)
	if err := c.getJSON(ctx, url, &doc); err != nil {
		return nil, err
	}

	prices := make(ItemPrices, len(doc.Data))
	for key, item := range doc.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		prices[id] = item.Gold.Total
	}
	return prices, nil
}

func (c *Client) LoadChampionIndex(ctx context.Context, patch string) (*ChampionIndex, error) {
	var doc struct {
		Data map[string]struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.baseURL, patch)
	if err := c.getJSON(ctx, url, &doc); err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(doc.Data))
	for _, champ := range doc.Data {
		byName[champ.Name] = champ.ID
	}
	return NewChampionIndex(byName), nil
}

// Reference is everything the dashboard needs from Data Dragon for one patch.
type Reference struct {
	Patch     string
	Items     ItemPrices
	Champions *ChampionIndex
}

// Load resolves the current patch and fetches both patch documents in
// parallel.
func (c *Client) Load(ctx context.Context) (*Reference, error) {
	patch, err := c.ResolveCurrentPatch(ctx)
	if err != nil {
		return nil, err
	}

	ref := &Reference{Patch: patch}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := c.LoadItemPrices(gctx, patch)
		ref.Items = items
		return err
	})
	g.Go(func() error {
		champs, err := c.LoadChampionIndex(gctx, patch)
		ref.Champions = champs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Info("reference data loaded",
		zap.String("patch", patch),
		zap.Int("items", len(ref.Items)),
		zap.Int("champions", ref.Champions.Len()),
	)
	return ref, nil
}

func SplashURL(patch, championID string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", DefaultBaseURL, patch, championID)
}
