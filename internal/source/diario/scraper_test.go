package diario

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestScraper(baseURL string) *Scraper {
	s := NewScraper(ScraperConfig{
		BaseURL:    baseURL,
		Timeout:    5 * time.Second,
		RatePerSec: 10000,
		Burst:      100,
	})
	s.jitter = func() time.Duration { return 0 }
	return s
}

func TestScraper_Season(t *testing.T) {
	var listings, articles int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/resultados/futbol/primera/2023_2024/jornada/regular_a_7":
			listings++
			fmt.Fprint(w, `<div>Girona 4 - 2 Real Madrid
				<a href="/futbol/primera/2023/09/30/cronica/girona.html">Ver crónica</a></div>`)
		case "/futbol/primera/2023/09/30/cronica/girona.html":
			articles++
			fmt.Fprint(w, `<h1>El Girona asalta Montilivi</h1><h2>Stuani decide</h2>`)
		default:
			listings++
			fmt.Fprint(w, `<div>sin cronicas</div>`)
		}
	}))
	defer srv.Close()

	found, err := newTestScraper(srv.URL).Season(context.Background(), "2023")
	require.NoError(t, err)
	require.Equal(t, 38, listings, "every matchday page is visited")
	require.Equal(t, 1, articles)

	require.Len(t, found, 1)
	a := found[0]
	require.Equal(t, 7, a.Round)
	require.Equal(t, "El Girona asalta Montilivi", a.Headline)
	require.Equal(t, "Stuani decide", a.Subheader)
	require.Equal(t, "2023-09-30", a.DateFromURL)
	require.Contains(t, a.ContextText, "Girona 4 - 2 Real Madrid")
}

func TestScraper_SkipsUnreadableArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/resultados/futbol/primera/2023_2024/jornada/regular_a_1" {
			fmt.Fprint(w, `<div>Cadiz 0 - 1 Alaves
				<a href="/futbol/primera/2023/08/14/cronica/cadiz.html">Ver crónica</a></div>`)
			return
		}
		if r.URL.Path == "/futbol/primera/2023/08/14/cronica/cadiz.html" {
			fmt.Fprint(w, `<div>no headline here</div>`)
			return
		}
		fmt.Fprint(w, `<div></div>`)
	}))
	defer srv.Close()

	found, err := newTestScraper(srv.URL).Season(context.Background(), "2023")
	require.NoError(t, err)
	require.Empty(t, found, "headline-less articles are dropped, not fatal")
}

func TestScraper_ListingFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL).Season(context.Background(), "2023")
	require.Error(t, err)
	require.Contains(t, err.Error(), "matchday 1")
}
