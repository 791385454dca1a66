package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// execute runs the shared root command. Tests using it must not run in
// parallel because cobra and viper state is global.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRefreshCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/refresh":
			assert.Equal(t, "cli", r.URL.Query().Get("trigger"))
			_ = json.NewEncoder(w).Encode(domain.CycleReport{ID: "c-1", Outcome: domain.OutcomeEmpty})
		case "/api/v1/refresh/last":
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title":"Not Found","status":404,"detail":"no refresh cycle has run yet"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	out, err := execute(t, "--server", srv.URL, "--output", "table", "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "c-1 (")
	assert.Contains(t, out, "empty")

	out, err = execute(t, "--server", srv.URL, "--output", "table", "refresh", "--last")
	require.NoError(t, err)
	assert.Contains(t, out, "No refresh cycle has run yet.")
}

func TestRefreshCommand_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Conflict","status":409,"detail":"refresh cycle already in progress"}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--server", srv.URL, "refresh", "--last=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestURLsSetCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/products/CT2K16G56C46U5/urls", r.URL.Path)

		var body struct {
			RetailerID int64  `json:"retailer_id"`
			URL        string `json:"url"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(domain.ProductURL{
			ID: 8, OEM: "CT2K16G56C46U5", RetailerID: body.RetailerID, URL: body.URL, Active: true,
		})
	}))
	defer srv.Close()

	out, err := execute(t, "--server", srv.URL, "--output", "table",
		"urls", "set", "CT2K16G56C46U5", "4", "https://www.newegg.ca/p/N82E16820156297")
	require.NoError(t, err)
	assert.Contains(t, out, "Tracking CT2K16G56C46U5 at retailer 4 as product URL 8.")
}

func TestSettingsSetCommand_RequiresAField(t *testing.T) {
	_, err := execute(t, "--server", "http://127.0.0.1:1", "settings", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}
