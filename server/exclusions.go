package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"sweeparr/pkg/logger"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type exclusionRequest struct {
	ID string `json:"id"`
}

// ListExclusions returns the ids of every protected item.
func (s Server) ListExclusions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		members, err := s.store.Members(r.Context())
		if err != nil {
			log.Error("failed to list exclusions", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		if members == nil {
			members = []string{}
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: members})
	}
}

// AddExclusion protects an item by id, independent of any running review.
func (s Server) AddExclusion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		b, err := io.ReadAll(r.Body)
		if err != nil {
			log.Debug("invalid request body", zap.Error(err))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		var request exclusionRequest
		if err := json.Unmarshal(b, &request); err != nil || request.ID == "" {
			log.Debug("invalid request body", zap.ByteString("body", b))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.store.Add(r.Context(), request.ID); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

// RemoveExclusion lifts the protection of a single item.
func (s Server) RemoveExclusion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if id == "" {
			writeErrorResponse(w, http.StatusBadRequest, errors.New("id is required"))
			return
		}

		if err := s.store.Remove(r.Context(), id); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

// ClearExclusions empties the exclusion list.
func (s Server) ClearExclusions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Clear(r.Context()); err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}
