package jellyfin

import (
	"strings"
	"time"
)

// ItemKind is the media server's item type discriminator.
type ItemKind string

const (
	KindMovie   ItemKind = "Movie"
	KindSeries  ItemKind = "Series"
	KindSeason  ItemKind = "Season"
	KindEpisode ItemKind = "Episode"
)

// Provider id namespaces as they appear in item metadata.
const (
	ProviderTMDB = "Tmdb"
	ProviderTVDB = "Tvdb"
	ProviderIMDB = "Imdb"
)

type Item struct {
	ID             string            `json:"Id"`
	Name           string            `json:"Name"`
	Type           ItemKind          `json:"Type"`
	DateCreated    time.Time         `json:"DateCreated"`
	SeriesID       string            `json:"SeriesId,omitempty"`
	SeriesName     string            `json:"SeriesName,omitempty"`
	ParentID       string            `json:"ParentId,omitempty"`
	ProductionYear int               `json:"ProductionYear,omitempty"`
	ProviderIDs    map[string]string `json:"ProviderIds,omitempty"`
	Genres         []string          `json:"Genres,omitempty"`
	MediaSources   []MediaSource     `json:"MediaSources,omitempty"`
}

type MediaSource struct {
	Size      int64  `json:"Size,omitempty"`
	Container string `json:"Container,omitempty"`
}

// ProviderID looks up an external catalog id by namespace. The server is
// not consistent about key casing so the match ignores case.
func (i Item) ProviderID(namespace string) (string, bool) {
	for k, v := range i.ProviderIDs {
		if strings.EqualFold(k, namespace) && v != "" {
			return v, true
		}
	}
	return "", false
}

// SizeBytes sums the media source sizes. Zero when the server did not
// report any, so callers treat it as a best-effort estimate.
func (i Item) SizeBytes() int64 {
	var total int64
	for _, s := range i.MediaSources {
		total += s.Size
	}
	return total
}

// DisplayName renders a season as "Series - Season" and everything else by name.
func (i Item) DisplayName() string {
	if i.Type == KindSeason && i.SeriesName != "" {
		return i.SeriesName + " - " + i.Name
	}
	return i.Name
}

type itemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

type SystemInfo struct {
	ServerName string `json:"ServerName"`
	Version    string `json:"Version"`
	ID         string `json:"Id"`
}

type Session struct {
	ID             string    `json:"Id"`
	UserID         string    `json:"UserId"`
	UserName       string    `json:"UserName"`
	Client         string    `json:"Client"`
	DeviceName     string    `json:"DeviceName"`
	NowPlayingItem *Item     `json:"NowPlayingItem,omitempty"`
	PlayState      *struct {
		PlayMethod string `json:"PlayMethod"`
		IsPaused   bool   `json:"IsPaused"`
	} `json:"PlayState,omitempty"`
}
