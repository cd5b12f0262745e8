package sweep

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"sweeparr/pkg/jellyfin"
	"sweeparr/pkg/logger"
	"sweeparr/pkg/radarr"
	"sweeparr/pkg/sonarr"

	"golang.org/x/sync/errgroup"
)

var seasonNumberRe = regexp.MustCompile(`\d+`)

// Executor carries out confirmed deletions against the two acquisition
// services. A nil client means that service is not configured and its
// candidates are skipped rather than failed.
type Executor struct {
	radarr   radarr.ClientInterface
	sonarr   sonarr.ClientInterface
	resolver Resolver
}

func NewExecutor(radarrClient radarr.ClientInterface, sonarrClient sonarr.ClientInterface, resolver Resolver) Executor {
	return Executor{
		radarr:   radarrClient,
		sonarr:   sonarrClient,
		resolver: resolver,
	}
}

// runSnapshot holds the downstream listings for one delete batch. Each
// listing is fetched at most once per run and shared across candidates.
type runSnapshot struct {
	movies    []radarr.Movie
	series    []sonarr.Series
	seriesIDs map[string]string
	episodes  map[int64][]sonarr.Episode
}

func (s *runSnapshot) movieByTMDBID(id int64) *radarr.Movie {
	for i := range s.movies {
		if s.movies[i].TMDBID == id {
			return &s.movies[i]
		}
	}
	return nil
}

func (s *runSnapshot) seriesByTVDBID(id int64) *sonarr.Series {
	for i := range s.series {
		if s.series[i].TVDBID == id {
			return &s.series[i]
		}
	}
	return nil
}

// DeleteSelected processes the selected candidates in input order and
// records one outcome per candidate. A failing candidate never aborts the
// batch; only a failure while fetching the downstream listings aborts the
// whole run, since nothing could have been processed anyway.
func (e Executor) DeleteSelected(ctx context.Context, candidates []Candidate, rep *Reporter) ([]Outcome, RunSummary, error) {
	log := logger.FromCtx(ctx)

	selected := make([]Candidate, 0, len(candidates))
	var hasMovies, hasSeasons bool
	for _, c := range candidates {
		if !c.Selected {
			continue
		}
		selected = append(selected, c)
		switch c.Item.Type {
		case jellyfin.KindMovie:
			hasMovies = true
		case jellyfin.KindSeason:
			hasSeasons = true
		}
	}

	summary := RunSummary{Attempted: len(selected)}
	if len(selected) == 0 {
		return nil, summary, nil
	}

	rep.Infof("starting deletion of %d item(s)", len(selected))

	snapshot, err := e.buildSnapshot(ctx, selected, hasMovies, hasSeasons)
	if err != nil {
		log.Errorw("failed to fetch downstream listings", "error", err)
		rep.Errorf("critical error during deletion setup: %v", err)
		return nil, summary, err
	}

	outcomes := make([]Outcome, 0, len(selected))
	for _, c := range selected {
		var outcome Outcome
		switch c.Item.Type {
		case jellyfin.KindMovie:
			outcome = e.deleteMovie(ctx, c, snapshot, rep)
		case jellyfin.KindSeason:
			outcome = e.deleteSeason(ctx, c, snapshot, rep)
		default:
			outcome = Outcome{
				CandidateID: c.Item.ID,
				Title:       c.Item.DisplayName(),
				Status:      StatusSkippedNoProviderID,
				Detail:      fmt.Sprintf("unsupported item kind %q", c.Item.Type),
			}
			rep.Failuref("FAILED: %q has unsupported kind %q.", c.Item.DisplayName(), c.Item.Type)
		}

		if outcome.Status == StatusSuccess {
			summary.Succeeded++
			summary.BytesFreed += outcome.BytesFreed
		}

		outcomes = append(outcomes, outcome)
	}

	rep.Infof("deletion finished. %d of %d tasks completed.", summary.Succeeded, summary.Attempted)
	log.Infow("delete batch complete", "attempted", summary.Attempted, "succeeded", summary.Succeeded, "bytesFreed", summary.BytesFreed)

	return outcomes, summary, nil
}

// buildSnapshot prefetches the downstream listings the batch will join
// against. The reads are issued concurrently; any failure is critical.
func (e Executor) buildSnapshot(ctx context.Context, selected []Candidate, hasMovies, hasSeasons bool) (*runSnapshot, error) {
	snapshot := &runSnapshot{
		seriesIDs: map[string]string{},
		episodes:  map[int64][]sonarr.Episode{},
	}

	g, gctx := errgroup.WithContext(ctx)

	if hasMovies && e.radarr != nil {
		g.Go(func() error {
			movies, err := e.radarr.ListMovies(gctx)
			if err != nil {
				return err
			}
			snapshot.movies = movies
			return nil
		})
	}

	if hasSeasons && e.sonarr != nil {
		g.Go(func() error {
			series, err := e.sonarr.ListSeries(gctx)
			if err != nil {
				return err
			}
			snapshot.series = series
			return nil
		})

		g.Go(func() error {
			resolved, err := e.resolver.ResolveSeriesProviderIDs(gctx, selected)
			if err != nil {
				return err
			}
			snapshot.seriesIDs = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (e Executor) deleteMovie(ctx context.Context, c Candidate, snapshot *runSnapshot, rep *Reporter) Outcome {
	outcome := Outcome{CandidateID: c.Item.ID, Title: c.Item.DisplayName()}

	if e.radarr == nil {
		outcome.Status = StatusSkippedNotConfigured
		rep.Failuref("FAILED: %q. Radarr is not configured.", outcome.Title)
		return outcome
	}

	tmdbRaw, ok := c.Item.ProviderID(jellyfin.ProviderTMDB)
	if !ok {
		outcome.Status = StatusSkippedNoProviderID
		outcome.Detail = "missing tmdb id"
		rep.Failuref("FAILED: %q. Missing TMDB id in Jellyfin.", outcome.Title)
		return outcome
	}

	tmdbID, err := strconv.ParseInt(tmdbRaw, 10, 64)
	if err != nil {
		outcome.Status = StatusSkippedNoProviderID
		outcome.Detail = fmt.Sprintf("unparseable tmdb id %q", tmdbRaw)
		rep.Failuref("FAILED: %q. TMDB id %q is not a number.", outcome.Title, tmdbRaw)
		return outcome
	}

	movie := snapshot.movieByTMDBID(tmdbID)
	if movie == nil {
		outcome.Status = StatusSkippedNotFound
		rep.Infof("INFO: %q not found in Radarr.", outcome.Title)
		return outcome
	}

	if err := e.radarr.DeleteMovie(ctx, movie.ID, true); err != nil {
		outcome.Status = StatusFailed
		outcome.Detail = err.Error()
		rep.Failuref("FAILED: error deleting %q: %v", outcome.Title, err)
		return outcome
	}

	outcome.Status = StatusSuccess
	outcome.BytesFreed = movie.SizeOnDisk
	rep.Successf("SUCCESS: %q deleted from Radarr.", outcome.Title)
	return outcome
}

func (e Executor) deleteSeason(ctx context.Context, c Candidate, snapshot *runSnapshot, rep *Reporter) Outcome {
	outcome := Outcome{CandidateID: c.Item.ID, Title: c.Item.DisplayName()}

	if e.sonarr == nil {
		outcome.Status = StatusSkippedNotConfigured
		rep.Failuref("FAILED: %q. Sonarr is not configured.", outcome.Title)
		return outcome
	}

	tvdbRaw, ok := snapshot.seriesIDs[c.Item.SeriesID]
	if !ok {
		outcome.Status = StatusSkippedNoProviderID
		outcome.Detail = "missing tvdb id for parent series"
		rep.Failuref("FAILED: %q. Missing TVDB id for the parent series.", outcome.Title)
		return outcome
	}

	tvdbID, err := strconv.ParseInt(tvdbRaw, 10, 64)
	if err != nil {
		outcome.Status = StatusSkippedNoProviderID
		outcome.Detail = fmt.Sprintf("unparseable tvdb id %q", tvdbRaw)
		rep.Failuref("FAILED: %q. TVDB id %q is not a number.", outcome.Title, tvdbRaw)
		return outcome
	}

	series := snapshot.seriesByTVDBID(tvdbID)
	if series == nil {
		outcome.Status = StatusSkippedNotFound
		rep.Infof("INFO: series %q not found in Sonarr.", c.Item.SeriesName)
		return outcome
	}

	seasonNumber, ok := parseSeasonNumber(c.Item.Name)
	if !ok {
		outcome.Status = StatusSkippedNoProviderID
		outcome.Detail = "cannot determine season number"
		rep.Failuref("FAILED: cannot determine season number for %q.", outcome.Title)
		return outcome
	}

	episodes, ok := snapshot.episodes[series.ID]
	if !ok {
		// one episode listing per distinct series per run, shared by all
		// of its seasons
		episodes, err = e.sonarr.ListEpisodes(ctx, series.ID)
		if err != nil {
			outcome.Status = StatusFailed
			outcome.Detail = err.Error()
			rep.Failuref("FAILED: error listing episodes of %q: %v", c.Item.SeriesName, err)
			return outcome
		}
		snapshot.episodes[series.ID] = episodes
	}

	var toDelete []sonarr.Episode
	for _, ep := range episodes {
		if ep.SeasonNumber == seasonNumber && ep.HasFile {
			toDelete = append(toDelete, ep)
		}
	}

	if len(toDelete) == 0 {
		// the season's files are already gone downstream
		outcome.Status = StatusSuccess
		rep.Infof("INFO: no files to delete for %q in Sonarr.", outcome.Title)
		return outcome
	}

	deleteFailed := false
	for _, ep := range toDelete {
		if err := e.sonarr.DeleteEpisodeFile(ctx, ep.EpisodeFileID); err != nil {
			deleteFailed = true
			outcome.Detail = err.Error()
			rep.Failuref("FAILED: error deleting an episode of %q: %v", outcome.Title, err)
		}
	}

	if deleteFailed {
		outcome.Status = StatusFailed
		rep.Failuref("FAILED: one or more episodes of %q could not be deleted.", outcome.Title)
		return outcome
	}

	outcome.Status = StatusSuccess
	outcome.BytesFreed = c.Item.SizeBytes()
	rep.Successf("SUCCESS: %d episode(s) of %q deleted from Sonarr.", len(toDelete), outcome.Title)
	return outcome
}

// parseSeasonNumber pulls the first integer out of a season display name,
// e.g. "Season 3" or "Saison 3". Specials and oddly named seasons without
// a digit are a data-quality miss, not an error.
func parseSeasonNumber(name string) (int, bool) {
	match := seasonNumberRe.FindString(name)
	if match == "" {
		return 0, false
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return n, true
}
