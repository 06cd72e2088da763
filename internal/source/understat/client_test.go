package understat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_Fixtures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/main/getMatches", r.URL.Path)
		require.Equal(t, "La_liga", r.URL.Query().Get("league"))
		require.Equal(t, "2023", r.URL.Query().Get("season"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 101, "datetime": "2023-08-11 19:30:00", "h": "Almeria", "a": "Rayo Vallecano", "goals_h": 0, "goals_a": 2}
		]`))
	}))
	defer srv.Close()

	rows, err := NewClient(srv.URL, 5*time.Second).Fixtures(context.Background(), "2023")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, int64(101), rows[0].ProviderID)
	require.Equal(t, "0", rows[0].HomeGoals, "numeric payload values stay textual")
	require.Equal(t, "2", rows[0].AwayGoals)
}

func TestClient_PlayerStatsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 5*time.Second).PlayerStats(context.Background(), "2023")
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}
