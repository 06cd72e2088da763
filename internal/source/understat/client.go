package understat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/primera-data/primera/internal/linkage"
)

const leagueSlug = "La_liga"

// Client reads season fixtures and per-player stats from the stats provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		baseURL: baseURL,
	}
}

// Fixtures returns the season's fixture rows, collapsed to one row per
// provider fixture id.
func (c *Client) Fixtures(ctx context.Context, season string) ([]linkage.MatchRow, error) {
	raw, err := c.getRows(ctx, "/main/getMatches", season)
	if err != nil {
		return nil, fmt.Errorf("understat fixtures %s: %w", season, err)
	}
	return FixtureRows(raw), nil
}

// PlayerStats returns the season's per-player rows with canonical columns.
func (c *Client) PlayerStats(ctx context.Context, season string) ([]linkage.PlayerRow, error) {
	raw, err := c.getRows(ctx, "/main/getPlayersStats", season)
	if err != nil {
		return nil, fmt.Errorf("understat player stats %s: %w", season, err)
	}
	return StatRows(raw), nil
}

func (c *Client) getRows(ctx context.Context, path, season string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s%s?league=%s&season=%s",
		c.baseURL, path, url.QueryEscape(leagueSlug), url.QueryEscape(season))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := sonic.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return rows, nil
}
