package server

import (
	"net/http"
	"sync"

	"sweeparr/pkg/jellyfin"
	"sweeparr/pkg/logger"
	"sweeparr/pkg/radarr"
	"sweeparr/pkg/sonarr"

	"go.uber.org/zap"
)

// ServiceStatus is the connection check result for one downstream service.
type ServiceStatus struct {
	Configured bool   `json:"configured"`
	Reachable  bool   `json:"reachable"`
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	Error      string `json:"error,omitempty"`
}

type statusResponse struct {
	Jellyfin ServiceStatus `json:"jellyfin"`
	Radarr   ServiceStatus `json:"radarr"`
	Sonarr   ServiceStatus `json:"sonarr"`
}

// Status pings every configured service concurrently. An unreachable
// service is reported, not an error; the endpoint itself always succeeds.
func (s Server) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var resp statusResponse
		var wg sync.WaitGroup

		wg.Add(3)
		go func() {
			defer wg.Done()
			resp.Jellyfin = ServiceStatus{Configured: true}
			info, err := s.jellyfin.SystemInfo(ctx)
			if err != nil {
				resp.Jellyfin.Error = err.Error()
				return
			}
			resp.Jellyfin.Reachable = true
			resp.Jellyfin.Name = info.ServerName
			resp.Jellyfin.Version = info.Version
		}()
		go func() {
			defer wg.Done()
			if s.radarr == nil {
				return
			}
			resp.Radarr = ServiceStatus{Configured: true}
			status, err := s.radarr.SystemStatus(ctx)
			if err != nil {
				resp.Radarr.Error = err.Error()
				return
			}
			resp.Radarr.Reachable = true
			resp.Radarr.Name = status.AppName
			resp.Radarr.Version = status.Version
		}()
		go func() {
			defer wg.Done()
			if s.sonarr == nil {
				return
			}
			resp.Sonarr = ServiceStatus{Configured: true}
			status, err := s.sonarr.SystemStatus(ctx)
			if err != nil {
				resp.Sonarr.Error = err.Error()
				return
			}
			resp.Sonarr.Reachable = true
			resp.Sonarr.Name = status.AppName
			resp.Sonarr.Version = status.Version
		}()
		wg.Wait()

		writeResponse(w, http.StatusOK, GenericResponse{Response: resp})
	}
}

// Sessions lists current playback sessions on the media server.
func (s Server) Sessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		sessions, err := s.jellyfin.ActiveSessions(r.Context())
		if err != nil {
			log.Error("failed to list sessions", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		if sessions == nil {
			sessions = []jellyfin.Session{}
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: sessions})
	}
}

type queueViewResponse struct {
	Movies []radarr.QueueItem `json:"movies"`
	TV     []sonarr.QueueItem `json:"tv"`
}

// DownloadQueue merges the Radarr and Sonarr download queues into one
// view. Unconfigured services contribute an empty list.
func (s Server) DownloadQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromCtx(ctx)

		resp := queueViewResponse{
			Movies: []radarr.QueueItem{},
			TV:     []sonarr.QueueItem{},
		}

		if s.radarr != nil {
			items, err := s.radarr.Queue(ctx)
			if err != nil {
				log.Error("failed to fetch movie queue", zap.Error(err))
				writeErrorResponse(w, http.StatusInternalServerError, err)
				return
			}
			if items != nil {
				resp.Movies = items
			}
		}

		if s.sonarr != nil {
			items, err := s.sonarr.Queue(ctx)
			if err != nil {
				log.Error("failed to fetch tv queue", zap.Error(err))
				writeErrorResponse(w, http.StatusInternalServerError, err)
				return
			}
			if items != nil {
				resp.TV = items
			}
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: resp})
	}
}
