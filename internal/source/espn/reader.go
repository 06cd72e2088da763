package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/primera-data/primera/internal/linkage"
)

// Client reads per-player tactical rows from the lineup provider.
//
// The provider's "game" column is a raw date-time string; only the day
// portion identifies the fixture. Team names come in the provider's own
// spelling and are normalized immediately after read so everything
// downstream sees canonical names.
type Client struct {
	httpClient *http.Client
	baseURL    string
	names      *linkage.Normalizer
}

func NewClient(baseURL string, timeout time.Duration, names *linkage.Normalizer) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		baseURL: baseURL,
		names:   names,
	}
}

type lineupPayload struct {
	Game           string `json:"game"`
	Team           string `json:"team"`
	Player         string `json:"player"`
	Position       string `json:"position"`
	ShotsOnTarget  string `json:"ST"`
	FoulsCommitted string `json:"FC"`
	FoulsSuffered  string `json:"FA"`
	Offsides       string `json:"OF"`
	Saves          string `json:"SV"`
	GoalsConceded  string `json:"GA"`
}

// Lineups returns the season's tactical rows with dates reduced to ISO days
// and team names already canonical.
func (c *Client) Lineups(ctx context.Context, season string) ([]linkage.LineupRow, error) {
	endpoint := fmt.Sprintf("%s/apis/site/v2/sports/soccer/esp.1/lineups?season=%s",
		c.baseURL, url.QueryEscape(season))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("espn lineups %s: %w", season, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("espn lineups %s: %w", season, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("espn lineups %s: unexpected status %d", season, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("espn lineups %s: %w", season, err)
	}

	var payload []lineupPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("espn lineups %s: decode payload: %w", season, err)
	}

	rows := make([]linkage.LineupRow, 0, len(payload))
	for _, p := range payload {
		rows = append(rows, linkage.LineupRow{
			Date:           DateOf(p.Game),
			Team:           c.names.Normalize(strings.TrimSpace(p.Team)),
			Player:         strings.TrimSpace(p.Player),
			Position:       strings.TrimSpace(p.Position),
			ShotsOnTarget:  p.ShotsOnTarget,
			FoulsCommitted: p.FoulsCommitted,
			FoulsSuffered:  p.FoulsSuffered,
			Offsides:       p.Offsides,
			Saves:          p.Saves,
			GoalsConceded:  p.GoalsConceded,
		})
	}
	return rows, nil
}

// DateOf extracts the day portion of the provider's raw game string:
// everything before the first space.
func DateOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		return raw[:i]
	}
	return raw
}
