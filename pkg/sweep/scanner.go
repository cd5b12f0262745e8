package sweep

import (
	"context"
	"time"

	"sweeparr/pkg/exclusions"
	"sweeparr/pkg/jellyfin"
	"sweeparr/pkg/logger"
)

// now is replaceable for deterministic age calculations in tests.
var now = time.Now

// Scanner finds library items older than their retention threshold.
type Scanner struct {
	jellyfin   jellyfin.ClientInterface
	exclusions exclusions.Store
}

func NewScanner(jellyfinClient jellyfin.ClientInterface, store exclusions.Store) Scanner {
	return Scanner{
		jellyfin:   jellyfinClient,
		exclusions: store,
	}
}

// Scan fetches all movies and seasons and filters them by exclusion
// membership and age. Candidates come back pre-selected, newest first as
// the server returns them. The exclusion set is never mutated here.
func (s Scanner) Scan(ctx context.Context, rules Rules) (*ScanResult, error) {
	log := logger.FromCtx(ctx)

	// the exclusion snapshot is taken before the library read so the same
	// set applies to every item of this run
	excluded, err := s.exclusions.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.jellyfin.ListItems(ctx, []jellyfin.ItemKind{jellyfin.KindMovie, jellyfin.KindSeason}, 0)
	if err != nil {
		return nil, err
	}

	log.Infow("scanned library", "total", len(items))

	scanTime := now()
	result := &ScanResult{TotalScanned: len(items)}
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}

		if _, ok := excluded[item.ID]; ok {
			result.SkippedExcluded++
			continue
		}

		ageDays := scanTime.Sub(item.DateCreated).Hours() / 24

		var reason Reason
		switch item.Type {
		case jellyfin.KindMovie:
			if ageDays <= float64(rules.MovieRetentionDays) {
				result.SkippedRecent++
				continue
			}
			reason = ReasonMovieRetention
		case jellyfin.KindSeason:
			if ageDays <= float64(rules.SeasonRetentionDays) {
				result.SkippedRecent++
				continue
			}
			reason = ReasonSeasonRetention
		default:
			// only movies and seasons are fetched; anything else is ignored
			continue
		}

		result.Candidates = append(result.Candidates, Candidate{
			Item:     item,
			AgeDays:  ageDays,
			Reason:   reason,
			Selected: true,
		})
	}

	log.Infow("scan complete",
		"eligible", len(result.Candidates),
		"skippedRecent", result.SkippedRecent,
		"skippedExcluded", result.SkippedExcluded,
	)

	return result, nil
}
