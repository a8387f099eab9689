package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hltv-parser/internal/config"
	"hltv-parser/internal/converter"
	"hltv-parser/internal/fetcher"
	"hltv-parser/internal/hltv"
	"hltv-parser/internal/observability"
	"hltv-parser/internal/request"
)

// site serves the converter fixtures under the paths the request builders produce.
func site(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/matches/2346065/-": "match_finished_bo3.html",
		"/team/6665/-":       "team_page.html",
		"/matches":           "upcoming.html",
		"/results":           "results.html",
		"/team/1/-":          "results.html",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join("..", "converter", "testdata", name))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *Client {
	return newClientWithLogger(t, nil)
}

func newClientWithLogger(t *testing.T, logger *observability.Logger) *Client {
	srv := site(t)
	cfg := config.Default()
	cfg.Robots.Enabled = false
	cfg.HTTP.MaxRetries = 0
	cfg.RateLimit.RPM = 60000
	return New(fetcher.NewFetcher(cfg, nil), srv.URL, logger)
}

func TestClientMatch(t *testing.T) {
	page, err := newClient(t).Match(context.Background(), 2346065)
	require.NoError(t, err)

	assert.Equal(t, uint32(2346065), page.ID)
	assert.Equal(t, hltv.Finished, page.Status)
	assert.Len(t, page.Maps, 3)
}

func TestClientTeam(t *testing.T) {
	page, err := newClient(t).Team(context.Background(), 6665)
	require.NoError(t, err)

	assert.Equal(t, "Astralis", page.Name)
	assert.Len(t, page.Players, 5)
}

func TestClientLists(t *testing.T) {
	c := newClient(t)

	upcoming, err := c.Upcoming(context.Background(), request.Upcoming())
	require.NoError(t, err)
	assert.Len(t, upcoming, 3)

	results, err := c.Results(context.Background(), request.Results().Stars(1))
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestClientWrongLayout(t *testing.T) {
	// a results page served where a team page is expected
	_, err := newClient(t).Team(context.Background(), 1)
	assert.True(t, errors.Is(err, converter.ErrStructureNotFound), err)
}

func TestClientFetchError(t *testing.T) {
	_, err := newClient(t).Match(context.Background(), 404)

	var statusErr *fetcher.StatusError
	require.True(t, errors.As(err, &statusErr), err)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestClientLogsSkippedRecords(t *testing.T) {
	var buf bytes.Buffer
	c := newClientWithLogger(t, observability.New(&buf, zerolog.DebugLevel))

	_, err := c.Results(context.Background(), request.Results())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"client"`)
	assert.Contains(t, out, `"message":"record skipped"`)
	assert.Contains(t, out, "value does not parse")
}
