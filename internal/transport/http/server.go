package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/RemoteMovieDatabase/pkg/config"
	"github.com/RemoteMovieDatabase/pkg/future"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MovieService is the part of the database adapter the HTTP surface needs.
type MovieService interface {
	GetByID(ctx context.Context, movieID int) *future.Future[domain.Movie]
	GetPage(ctx context.Context, pageNumber int) *future.Future[domain.Page]
	GetSummarizedPage(ctx context.Context, pageNumber int) *future.Future[domain.SummarizedPage]
	DumpAll(ctx context.Context) *future.Future[domain.MovieDatabase]
	PosterFor(item domain.PosterSource) domain.ImageReference
	BackdropFor(item domain.BackdropSource) domain.ImageReference
}

func NewHTTPServer(cfg *config.Config, svc MovieService) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(svc),
	}
}

func NewRouter(svc MovieService) *mux.Router {
	h := &handlers{svc: svc}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprintf(w, "OK"); err != nil {
			// Log error but don't fail health check
			_ = err
		}
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	r.HandleFunc("/movies", h.dumpAll).Methods("GET")
	r.HandleFunc("/movies/{id}", h.movie).Methods("GET")
	r.HandleFunc("/movies/{id}/poster", h.image(posterOf)).Methods("GET")
	r.HandleFunc("/movies/{id}/backdrop", h.image(backdropOf)).Methods("GET")
	r.HandleFunc("/pages/{n}", h.page).Methods("GET")
	r.HandleFunc("/summaries/{n}", h.summaries).Methods("GET")
	return r
}

type handlers struct {
	svc MovieService
}

func (h *handlers) dumpAll(w http.ResponseWriter, r *http.Request) {
	db, err := h.svc.DumpAll(r.Context()).Await(r.Context())
	writePayload(w, db.Payload, err)
}

func (h *handlers) movie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.lookup(r)
	writePayload(w, movie.Payload, err)
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	n, err := domain.ParsePageNumber(mux.Vars(r)["n"])
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.svc.GetPage(r.Context(), n).Await(r.Context())
	writePayload(w, page.Payload, err)
}

func (h *handlers) summaries(w http.ResponseWriter, r *http.Request) {
	n, err := domain.ParsePageNumber(mux.Vars(r)["n"])
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.svc.GetSummarizedPage(r.Context(), n).Await(r.Context())
	writePayload(w, page.Payload, err)
}

type imageSelector func(MovieService, domain.Movie) domain.ImageReference

func posterOf(svc MovieService, m domain.Movie) domain.ImageReference   { return svc.PosterFor(m) }
func backdropOf(svc MovieService, m domain.Movie) domain.ImageReference { return svc.BackdropFor(m) }

func (h *handlers) image(selectImage imageSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movie, err := h.lookup(r)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, selectImage(h.svc, movie))
	}
}

func (h *handlers) lookup(r *http.Request) (domain.Movie, error) {
	id, err := domain.ParseMovieID(mux.Vars(r)["id"])
	if err != nil {
		return domain.Movie{}, err
	}
	return h.svc.GetByID(r.Context(), id).Await(r.Context())
}

func writePayload(w http.ResponseWriter, p domain.Payload, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(p.Raw()); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

type errorBody struct {
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Message string           `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorBody{Kind: domain.KindOf(err), Message: err.Error()})
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNetwork, domain.KindDeserialization:
		return http.StatusBadGateway
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}
