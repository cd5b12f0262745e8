package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"sweeparr/pkg/exclusions"
	"sweeparr/pkg/jellyfin"
	"sweeparr/pkg/logger"
	"sweeparr/pkg/machine"
	"sweeparr/pkg/pagination"
	"sweeparr/pkg/radarr"
	"sweeparr/pkg/sonarr"
	"sweeparr/pkg/sweep"

	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response,omitempty"`
}

// Server houses all dependencies for the control panel API: the sweep
// engine, the exclusion store and the three service clients. The radarr
// and sonarr clients may be nil when those services are not configured.
type Server struct {
	baseLogger *zap.SugaredLogger
	engine     *sweep.Engine
	store      exclusions.Store
	jellyfin   jellyfin.ClientInterface
	radarr     radarr.ClientInterface
	sonarr     sonarr.ClientInterface
}

// New creates a new sweeparr api server
func New(log *zap.SugaredLogger, engine *sweep.Engine, store exclusions.Store, jellyfinClient jellyfin.ClientInterface, radarrClient radarr.ClientInterface, sonarrClient sonarr.ClientInterface) Server {
	return Server{
		baseLogger: log,
		engine:     engine,
		store:      store,
		jellyfin:   jellyfinClient,
		radarr:     radarrClient,
		sonarr:     sonarrClient,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// engineStatus maps engine errors onto http statuses. Lifecycle misuse is
// a conflict, unknown ids are not found, everything else is on us.
func engineStatus(err error) int {
	switch {
	case errors.Is(err, machine.ErrInvalidTransition), errors.Is(err, sweep.ErrNoSelection):
		return http.StatusConflict
	case errors.Is(err, sweep.ErrNoSuchItem):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/sweep/scan", s.Scan()).Methods(http.MethodPost)
	v1.HandleFunc("/sweep/candidates", s.Candidates()).Methods(http.MethodGet)
	v1.HandleFunc("/sweep/select", s.ToggleSelect()).Methods(http.MethodPost)
	v1.HandleFunc("/sweep/exclude", s.Exclude()).Methods(http.MethodPost)
	v1.HandleFunc("/sweep/delete", s.DeleteSelected()).Methods(http.MethodPost)
	v1.HandleFunc("/sweep/log", s.RunLog()).Methods(http.MethodGet)

	v1.HandleFunc("/exclusions", s.ListExclusions()).Methods(http.MethodGet)
	v1.HandleFunc("/exclusions", s.AddExclusion()).Methods(http.MethodPost)
	v1.HandleFunc("/exclusions", s.ClearExclusions()).Methods(http.MethodDelete)
	v1.HandleFunc("/exclusions/{id}", s.RemoveExclusion()).Methods(http.MethodDelete)

	v1.HandleFunc("/status", s.Status()).Methods(http.MethodGet)
	v1.HandleFunc("/sessions", s.Sessions()).Methods(http.MethodGet)
	v1.HandleFunc("/queue", s.DownloadQueue()).Methods(http.MethodGet)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsHandler,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// Scan triggers a library scan and returns the resulting counters.
func (s Server) Scan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		result, err := s.engine.Scan(r.Context())
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			writeErrorResponse(w, engineStatus(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: result})
	}
}

// candidatesResponse is the review view: the engine state, one page of
// the candidate set and the counters of the scan that produced it.
type candidatesResponse struct {
	State      sweep.State       `json:"state"`
	Candidates []sweep.Candidate `json:"candidates"`
	Meta       pagination.Meta   `json:"meta"`
	LastScan   *sweep.ScanResult `json:"lastScan,omitempty"`
}

// Candidates returns the current review set. Without paging parameters
// the whole set comes back in one page.
func (s Server) Candidates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, meta := pagination.Paginate(s.engine.Candidates(), pagination.FromQuery(r.URL.Query()))

		resp := candidatesResponse{
			State:      s.engine.State(),
			Candidates: page,
			Meta:       meta,
			LastScan:   s.engine.LastScan(),
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: resp})
	}
}

type candidateRequest struct {
	ID  string `json:"id"`
	All bool   `json:"all,omitempty"`
}

func readCandidateRequest(r *http.Request) (candidateRequest, error) {
	var request candidateRequest
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return request, err
	}

	if err := json.Unmarshal(b, &request); err != nil {
		return request, err
	}

	if request.ID == "" && !request.All {
		return request, errors.New("id is required")
	}

	return request, nil
}

// ToggleSelect flips a candidate's selection while reviewing.
func (s Server) ToggleSelect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		request, err := readCandidateRequest(r)
		if err != nil {
			log.Debug("invalid request body", zap.Error(err))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.engine.ToggleSelect(request.ID); err != nil {
			writeErrorResponse(w, engineStatus(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

// Exclude protects one candidate, or all of them with {"all": true}, and
// drops them from the review set.
func (s Server) Exclude() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		request, err := readCandidateRequest(r)
		if err != nil {
			log.Debug("invalid request body", zap.Error(err))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if request.All {
			err = s.engine.ExcludeAll(r.Context())
		} else {
			err = s.engine.Exclude(r.Context(), request.ID)
		}
		if err != nil {
			writeErrorResponse(w, engineStatus(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

type deleteResponse struct {
	Outcomes []sweep.Outcome `json:"outcomes"`
}

// DeleteSelected deletes the selected candidates downstream.
func (s Server) DeleteSelected() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		outcomes, err := s.engine.DeleteSelected(r.Context())
		if err != nil {
			log.Error("delete run failed", zap.Error(err))
			writeErrorResponse(w, engineStatus(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: deleteResponse{Outcomes: outcomes}})
	}
}

// RunLog returns the report lines of the current or most recent run.
func (s Server) RunLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := s.engine.Report()
		if entries == nil {
			entries = []sweep.Entry{}
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: entries})
	}
}
