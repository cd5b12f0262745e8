package sweep

import (
	"context"

	"sweeparr/pkg/cache"
	"sweeparr/pkg/jellyfin"
	"sweeparr/pkg/logger"
)

// Resolver joins season candidates to the provider id of their parent
// series, which is the key the tv acquisition service indexes by.
// Resolved ids are cached for the resolver's lifetime; a series keeps its
// tvdb id, so only series never seen before cost a fetch.
type Resolver struct {
	jellyfin jellyfin.ClientInterface
	resolved *cache.Cache[string, string]
}

func NewResolver(jellyfinClient jellyfin.ClientInterface) Resolver {
	return Resolver{
		jellyfin: jellyfinClient,
		resolved: cache.New[string, string](),
	}
}

// ResolveSeriesProviderIDs maps each distinct parent series id in the
// batch to its tvdb id. Parent lookups are deduplicated so n seasons of
// one series cost a single fetch. A series missing from the result or
// lacking a tvdb id is simply unresolved; only a transport failure of the
// batched lookup itself is returned as an error.
func (r Resolver) ResolveSeriesProviderIDs(ctx context.Context, candidates []Candidate) (map[string]string, error) {
	log := logger.FromCtx(ctx)

	resolved := make(map[string]string)
	distinct := make(map[string]struct{})
	ids := make([]string, 0)
	for _, c := range candidates {
		if c.Item.Type != jellyfin.KindSeason || c.Item.SeriesID == "" {
			continue
		}
		if _, ok := distinct[c.Item.SeriesID]; ok {
			continue
		}
		distinct[c.Item.SeriesID] = struct{}{}

		if tvdbID, ok := r.resolved.Get(c.Item.SeriesID); ok {
			resolved[c.Item.SeriesID] = tvdbID
			continue
		}
		ids = append(ids, c.Item.SeriesID)
	}

	if len(ids) == 0 {
		return resolved, nil
	}

	series, err := r.jellyfin.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, s := range series {
		if tvdbID, ok := s.ProviderID(jellyfin.ProviderTVDB); ok {
			resolved[s.ID] = tvdbID
			r.resolved.Set(s.ID, tvdbID)
		}
	}

	log.Debugw("resolved parent series", "requested", len(ids), "resolved", len(resolved))

	return resolved, nil
}
