package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sweeparr/config"
	"sweeparr/pkg/exclusions"
	"sweeparr/pkg/jellyfin"
	jellyfinMock "sweeparr/pkg/jellyfin/mocks"
	"sweeparr/pkg/machine"
	"sweeparr/pkg/radarr"
	radarrMock "sweeparr/pkg/radarr/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestEngine(t *testing.T, jf jellyfin.ClientInterface, radarrClient radarr.ClientInterface, store exclusions.Store) *Engine {
	t.Helper()
	return NewEngine(
		NewScanner(jf, store),
		NewExecutor(radarrClient, nil, NewResolver(jf)),
		NewNotifier(nil, config.Webhook{}),
		store,
		func() Rules { return Rules{MovieRetentionDays: 7, SeasonRetentionDays: 28} },
	)
}

func TestEngine_reviewActionsRequireReviewing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	engine := newTestEngine(t, jellyfinMock.NewMockClientInterface(ctrl), nil, newTestStore(t))
	assert.Equal(t, StateIdle, engine.State())

	assert.ErrorIs(t, engine.ToggleSelect("movie-old"), machine.ErrInvalidTransition)
	assert.ErrorIs(t, engine.Exclude(ctx, "movie-old"), machine.ErrInvalidTransition)
	assert.ErrorIs(t, engine.ExcludeAll(ctx), machine.ErrInvalidTransition)

	_, err := engine.DeleteSelected(ctx)
	assert.ErrorIs(t, err, machine.ErrInvalidTransition)
}

func TestEngine_scanMovesToReviewing(t *testing.T) {
	ctx := context.Background()
	scanTime := fixedNow(t)
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(ctx, scanKinds, 0).Return([]jellyfin.Item{
		{ID: "movie-old", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 10)},
		{ID: "movie-fresh", Name: "Dune", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 3)},
	}, nil)

	engine := newTestEngine(t, jf, nil, newTestStore(t))

	result, err := engine.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateReviewing, engine.State())
	assert.Equal(t, 2, result.TotalScanned)

	candidates := engine.Candidates()
	require.Len(t, candidates, 1)
	assert.Equal(t, "movie-old", candidates[0].Item.ID)
	assert.True(t, candidates[0].Selected)
	assert.Same(t, result, engine.LastScan())
}

func TestEngine_scanFailureReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(ctx, scanKinds, 0).Return(nil, errors.New("jellyfin unreachable"))

	engine := newTestEngine(t, jf, nil, newTestStore(t))

	_, err := engine.Scan(ctx)
	assert.ErrorContains(t, err, "jellyfin unreachable")
	assert.Equal(t, StateIdle, engine.State())
	assert.Empty(t, engine.Candidates())
	assert.Nil(t, engine.LastScan())
}

func TestEngine_toggleSelect(t *testing.T) {
	ctx := context.Background()
	scanTime := fixedNow(t)
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(ctx, scanKinds, 0).Return([]jellyfin.Item{
		{ID: "movie-old", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 10)},
	}, nil)

	engine := newTestEngine(t, jf, nil, newTestStore(t))
	_, err := engine.Scan(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, engine.ToggleSelect("nope"), ErrNoSuchItem)

	require.NoError(t, engine.ToggleSelect("movie-old"))
	assert.False(t, engine.Candidates()[0].Selected)

	// deleting with nothing selected is refused without changing state
	_, err = engine.DeleteSelected(ctx)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, StateReviewing, engine.State())

	require.NoError(t, engine.ToggleSelect("movie-old"))
	assert.True(t, engine.Candidates()[0].Selected)
}

func TestEngine_excludeDropsCandidateAndPersists(t *testing.T) {
	ctx := context.Background()
	scanTime := fixedNow(t)
	ctrl := gomock.NewController(t)

	store := newTestStore(t)

	items := []jellyfin.Item{
		{ID: "movie-a", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 10)},
		{ID: "movie-b", Name: "Alien", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 20)},
	}

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(ctx, scanKinds, 0).Return(items, nil).Times(2)

	engine := newTestEngine(t, jf, nil, store)
	_, err := engine.Scan(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, engine.Exclude(ctx, "nope"), ErrNoSuchItem)

	require.NoError(t, engine.Exclude(ctx, "movie-a"))
	candidates := engine.Candidates()
	require.Len(t, candidates, 1)
	assert.Equal(t, "movie-b", candidates[0].Item.ID)

	// the exclusion holds across scans
	result, err := engine.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SkippedExcluded)
	require.Len(t, engine.Candidates(), 1)
	assert.Equal(t, "movie-b", engine.Candidates()[0].Item.ID)
}

func TestEngine_excludeAll(t *testing.T) {
	ctx := context.Background()
	scanTime := fixedNow(t)
	ctrl := gomock.NewController(t)

	store := newTestStore(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(ctx, scanKinds, 0).Return([]jellyfin.Item{
		{ID: "movie-a", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 10)},
		{ID: "movie-b", Name: "Alien", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 20)},
	}, nil)

	engine := newTestEngine(t, jf, nil, store)
	_, err := engine.Scan(ctx)
	require.NoError(t, err)

	require.NoError(t, engine.ExcludeAll(ctx))
	assert.Empty(t, engine.Candidates())
	assert.Equal(t, StateReviewing, engine.State())

	members, err := store.Members(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestEngine_deleteSelectedRescans(t *testing.T) {
	ctx := context.Background()
	scanTime := fixedNow(t)
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	first := jf.EXPECT().ListItems(ctx, scanKinds, 0).Return([]jellyfin.Item{
		{ID: "movie-old", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 10), ProviderIDs: map[string]string{"Tmdb": "949"}},
	}, nil)
	// the automatic re-scan after the delete sees the emptied library
	jf.EXPECT().ListItems(ctx, scanKinds, 0).Return(nil, nil).After(first)

	radarrClient := radarrMock.NewMockClientInterface(ctrl)
	radarrClient.EXPECT().ListMovies(gomock.Any()).Return([]radarr.Movie{
		{ID: 5, Title: "Heat", TMDBID: 949, SizeOnDisk: 1_000},
	}, nil)
	radarrClient.EXPECT().DeleteMovie(gomock.Any(), int64(5), true).Return(nil)

	engine := newTestEngine(t, jf, radarrClient, newTestStore(t))
	_, err := engine.Scan(ctx)
	require.NoError(t, err)

	outcomes, err := engine.DeleteSelected(ctx)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusSuccess, outcomes[0].Status)

	assert.Equal(t, StateReviewing, engine.State())
	assert.Empty(t, engine.Candidates())

	var messages []string
	for _, entry := range engine.Report() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, `SUCCESS: "Heat" deleted from Radarr.`)
	assert.Contains(t, messages, "deletion finished. 1 of 1 tasks completed.")
}

func TestEngine_deleteSetupFailureStillRescans(t *testing.T) {
	ctx := context.Background()
	scanTime := fixedNow(t)
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(ctx, scanKinds, 0).Return([]jellyfin.Item{
		{ID: "movie-old", Name: "Heat", Type: jellyfin.KindMovie, DateCreated: daysAgo(scanTime, 10), ProviderIDs: map[string]string{"Tmdb": "949"}},
	}, nil).Times(2)

	radarrClient := radarrMock.NewMockClientInterface(ctrl)
	radarrClient.EXPECT().ListMovies(gomock.Any()).Return(nil, errors.New("radarr down"))

	engine := newTestEngine(t, jf, radarrClient, newTestStore(t))
	_, err := engine.Scan(ctx)
	require.NoError(t, err)

	outcomes, err := engine.DeleteSelected(ctx)
	assert.ErrorContains(t, err, "radarr down")
	assert.Empty(t, outcomes)

	// the engine is reviewing the freshly rebuilt candidate set
	assert.Equal(t, StateReviewing, engine.State())
	require.Len(t, engine.Candidates(), 1)
}

func TestEngine_reportDuringScan(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	jf := jellyfinMock.NewMockClientInterface(ctrl)
	jf.EXPECT().ListItems(gomock.Any(), scanKinds, 0).Return(nil, nil).AnyTimes()

	engine := newTestEngine(t, jf, nil, newTestStore(t))

	// each scan swaps the reporter out, readers must never see a torn pointer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, err := engine.Scan(ctx)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			engine.Report()
		}
	}()
	wg.Wait()

	assert.Equal(t, StateReviewing, engine.State())
}
