package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sweeparr/config"
	"sweeparr/pkg/exclusions"
	"sweeparr/pkg/jellyfin"
	jellyfinMock "sweeparr/pkg/jellyfin/mocks"
	"sweeparr/pkg/radarr"
	radarrMock "sweeparr/pkg/radarr/mocks"
	"sweeparr/pkg/sonarr"
	sonarrMock "sweeparr/pkg/sonarr/mocks"
	"sweeparr/pkg/sweep"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, jf jellyfin.ClientInterface, radarrClient radarr.ClientInterface, sonarrClient sonarr.ClientInterface) Server {
	t.Helper()

	store, err := exclusions.New(":memory:")
	require.NoError(t, err)

	engine := sweep.NewEngine(
		sweep.NewScanner(jf, store),
		sweep.NewExecutor(radarrClient, sonarrClient, sweep.NewResolver(jf)),
		sweep.NewNotifier(nil, config.Webhook{}),
		store,
		func() sweep.Rules { return sweep.Rules{MovieRetentionDays: 7, SeasonRetentionDays: 28} },
	)

	return New(zap.NewNop().Sugar(), engine, store, jf, radarrClient, sonarrClient)
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, into any) {
	t.Helper()

	var response struct {
		Error    string          `json:"error,omitempty"`
		Response json.RawMessage `json:"response,omitempty"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Empty(t, response.Error)
	require.NoError(t, json.Unmarshal(response.Response, into))
}

func TestServer_Healthz(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		s := Server{baseLogger: zap.NewNop().Sugar()}

		req, err := http.NewRequest("GET", "/healthz", nil)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()

		handler := s.Healthz()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, "application/json", rr.Header().Get("content-type"))

		var response GenericResponse
		err = json.Unmarshal(rr.Body.Bytes(), &response)

		assert.NoError(t, err)
		assert.Equal(t, "ok", response.Response)
	})
}

func TestServer_ScanAndCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(gomock.Any(), gomock.Any(), 0).Return([]jellyfin.Item{
		{ID: "movie-old", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: time.Now().Add(-10 * 24 * time.Hour)},
		{ID: "movie-fresh", Name: "Dune", Type: jellyfin.KindMovie, DateCreated: time.Now().Add(-3 * 24 * time.Hour)},
	}, nil)

	s := newTestServer(t, jf, nil, nil)

	rr := httptest.NewRecorder()
	s.Scan().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sweep/scan", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var result sweep.ScanResult
	decodeResponse(t, rr, &result)
	assert.Equal(t, 2, result.TotalScanned)
	assert.Len(t, result.Candidates, 1)

	rr = httptest.NewRecorder()
	s.Candidates().ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/sweep/candidates", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var view struct {
		State      sweep.State       `json:"state"`
		Candidates []sweep.Candidate `json:"candidates"`
	}
	decodeResponse(t, rr, &view)
	assert.Equal(t, sweep.StateReviewing, view.State)
	require.Len(t, view.Candidates, 1)
	assert.Equal(t, "movie-old", view.Candidates[0].Item.ID)
}

func TestServer_ToggleSelect(t *testing.T) {
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	s := newTestServer(t, jf, nil, nil)

	t.Run("invalid body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.ToggleSelect().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sweep/select", strings.NewReader("{}")))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not reviewing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.ToggleSelect().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sweep/select", strings.NewReader(`{"id":"movie-old"}`)))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestServer_DeleteSelected(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("not reviewing", func(t *testing.T) {
		s := newTestServer(t, jellyfinMock.NewMockClientInterface(ctrl), nil, nil)

		rr := httptest.NewRecorder()
		s.DeleteSelected().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sweep/delete", nil))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("deletes and returns outcomes", func(t *testing.T) {
		jf := jellyfinMock.NewMockClientInterface(ctrl)
		jf.EXPECT().ListItems(gomock.Any(), gomock.Any(), 0).Return([]jellyfin.Item{
			{ID: "movie-old", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: time.Now().Add(-10 * 24 * time.Hour), ProviderIDs: map[string]string{"Tmdb": "949"}},
		}, nil)
		// the delete triggers a fresh scan
		jf.EXPECT().ListItems(gomock.Any(), gomock.Any(), 0).Return(nil, nil)

		radarrClient := radarrMock.NewMockClientInterface(ctrl)
		radarrClient.EXPECT().ListMovies(gomock.Any()).Return([]radarr.Movie{{ID: 5, TMDBID: 949, SizeOnDisk: 1_000}}, nil)
		radarrClient.EXPECT().DeleteMovie(gomock.Any(), int64(5), true).Return(nil)

		s := newTestServer(t, jf, radarrClient, nil)

		rr := httptest.NewRecorder()
		s.Scan().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sweep/scan", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		s.DeleteSelected().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sweep/delete", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var result deleteResponse
		decodeResponse(t, rr, &result)
		require.Len(t, result.Outcomes, 1)
		assert.Equal(t, sweep.StatusSuccess, result.Outcomes[0].Status)

		rr = httptest.NewRecorder()
		s.RunLog().ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/sweep/log", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []sweep.Entry
		decodeResponse(t, rr, &entries)
		assert.NotEmpty(t, entries)
	})
}

func TestServer_Exclusions(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	s := newTestServer(t, jellyfinMock.NewMockClientInterface(ctrl), nil, nil)

	rr := httptest.NewRecorder()
	s.AddExclusion().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/exclusions", strings.NewReader(`{"id":"movie-a"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	s.AddExclusion().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/exclusions", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	s.ListExclusions().ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/exclusions", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var members []string
	decodeResponse(t, rr, &members)
	assert.Equal(t, []string{"movie-a"}, members)

	req := httptest.NewRequest("DELETE", "/api/v1/exclusions/movie-a", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "movie-a"})
	rr = httptest.NewRecorder()
	s.RemoveExclusion().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	remaining, err := s.store.Members(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	rr = httptest.NewRecorder()
	s.AddExclusion().ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/exclusions", strings.NewReader(`{"id":"movie-b"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	s.ClearExclusions().ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/v1/exclusions", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	remaining, err = s.store.Members(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestServer_Status(t *testing.T) {
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().SystemInfo(gomock.Any()).Return(&jellyfin.SystemInfo{ServerName: "media", Version: "10.9.0"}, nil)

	radarrClient := radarrMock.NewMockClientInterface(ctrl)
	radarrClient.EXPECT().SystemStatus(gomock.Any()).Return(nil, assert.AnError)

	s := newTestServer(t, jf, radarrClient, nil)

	rr := httptest.NewRecorder()
	s.Status().ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/status", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var status statusResponse
	decodeResponse(t, rr, &status)

	assert.True(t, status.Jellyfin.Configured)
	assert.True(t, status.Jellyfin.Reachable)
	assert.Equal(t, "media", status.Jellyfin.Name)

	assert.True(t, status.Radarr.Configured)
	assert.False(t, status.Radarr.Reachable)
	assert.NotEmpty(t, status.Radarr.Error)

	assert.False(t, status.Sonarr.Configured)
}

func TestServer_Sessions(t *testing.T) {
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ActiveSessions(gomock.Any()).Return([]jellyfin.Session{
		{ID: "sess-1", UserName: "alice", Client: "web"},
	}, nil)

	s := newTestServer(t, jf, nil, nil)

	rr := httptest.NewRecorder()
	s.Sessions().ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/sessions", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var sessions []jellyfin.Session
	decodeResponse(t, rr, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, "alice", sessions[0].UserName)
}

func TestServer_DownloadQueue(t *testing.T) {
	ctrl := gomock.NewController(t)

	radarrClient := radarrMock.NewMockClientInterface(ctrl)
	radarrClient.EXPECT().Queue(gomock.Any()).Return([]radarr.QueueItem{{ID: 1, Title: "Heat"}}, nil)

	sonarrClient := sonarrMock.NewMockClientInterface(ctrl)
	sonarrClient.EXPECT().Queue(gomock.Any()).Return(nil, nil)

	s := newTestServer(t, jellyfinMock.NewMockClientInterface(ctrl), radarrClient, sonarrClient)

	rr := httptest.NewRecorder()
	s.DownloadQueue().ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/queue", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var queue queueViewResponse
	decodeResponse(t, rr, &queue)
	require.Len(t, queue.Movies, 1)
	assert.Equal(t, "Heat", queue.Movies[0].Title)
	assert.Empty(t, queue.TV)
}
