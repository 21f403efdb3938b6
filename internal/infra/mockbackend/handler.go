// Package mockbackend serves generated movie documents in the backend's URL layout:
// /movies/{id}.json, /paged/{n}.json, /summaries/{n}.json and /all.json.
package mockbackend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RemoteMovieDatabase/pkg/future"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
)

type Options struct {
	Clock   clockwork.Clock
	Latency time.Duration // added before every response
	Pages   int
	PerPage int
}

type movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
}

type summary struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	PosterPath *string `json:"poster_path"`
}

type page[T any] struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Results    []T `json:"results"`
}

type backend struct {
	opts Options
}

func NewHandler(opts Options) http.Handler {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Pages <= 0 {
		opts.Pages = 40
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 20
	}
	b := &backend{opts: opts}

	r := mux.NewRouter()
	r.Use(b.latency)
	r.HandleFunc("/all.json", b.all).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/movies/{file}", b.movie).Methods(http.MethodGet)
	r.HandleFunc("/paged/{file}", b.paged).Methods(http.MethodGet)
	r.HandleFunc("/summaries/{file}", b.summaries).Methods(http.MethodGet)
	return r
}

func (b *backend) latency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.opts.Latency > 0 {
			if _, err := future.DelayFor(b.opts.Clock, struct{}{}, b.opts.Latency).Await(r.Context()); err != nil {
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (b *backend) total() int { return b.opts.Pages * b.opts.PerPage }

func (b *backend) movie(w http.ResponseWriter, r *http.Request) {
	id, ok := number(mux.Vars(r)["file"])
	if !ok || id < 1 || id > b.total() {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, makeMovie(id))
}

func (b *backend) paged(w http.ResponseWriter, r *http.Request) {
	n, ok := b.pageNumber(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := page[movie]{Page: n, TotalPages: b.opts.Pages}
	for id := (n-1)*b.opts.PerPage + 1; id <= n*b.opts.PerPage; id++ {
		p.Results = append(p.Results, makeMovie(id))
	}
	writeJSON(w, p)
}

func (b *backend) summaries(w http.ResponseWriter, r *http.Request) {
	n, ok := b.pageNumber(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := page[summary]{Page: n, TotalPages: b.opts.Pages}
	for id := (n-1)*b.opts.PerPage + 1; id <= n*b.opts.PerPage; id++ {
		m := makeMovie(id)
		p.Results = append(p.Results, summary{ID: m.ID, Title: m.Title, PosterPath: m.PosterPath})
	}
	writeJSON(w, p)
}

func (b *backend) all(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		return
	}
	movies := make([]movie, 0, b.total())
	for id := 1; id <= b.total(); id++ {
		movies = append(movies, makeMovie(id))
	}
	writeJSON(w, map[string]any{"movies": movies})
}

func (b *backend) pageNumber(r *http.Request) (int, bool) {
	n, ok := number(mux.Vars(r)["file"])
	return n, ok && n >= 1 && n <= b.opts.Pages
}

// number extracts N from "N.json".
func number(file string) (int, bool) {
	stem, found := strings.CutSuffix(file, ".json")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(stem)
	return n, err == nil
}

// makeMovie is deterministic. Every fifth movie has no poster and every third no backdrop.
func makeMovie(id int) movie {
	m := movie{
		ID:       id,
		Title:    fmt.Sprintf("Movie %d", id),
		Overview: fmt.Sprintf("Generated record %d", id),
	}
	if id%5 != 0 {
		p := fmt.Sprintf("/poster-%d.jpg", id)
		m.PosterPath = &p
	}
	if id%3 != 0 {
		p := fmt.Sprintf("/backdrop-%d.jpg", id)
		m.BackdropPath = &p
	}
	return m
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
