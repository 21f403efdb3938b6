package domain

import (
	"errors"
	"strings"
)

// MovieLibrary holds the base URLs of the movie endpoints.
type MovieLibrary struct {
	Full      string `json:"full"`
	Summaries string `json:"summaries"`
	Paged     string `json:"paged"`
	ByID      string `json:"byId"`
}

// ImageLibrary holds the image base URLs and the bundled placeholder reference.
type ImageLibrary struct {
	NoGo      string `json:"noGo"`
	Posters   string `json:"posters"`
	Backdrops string `json:"backdrops"`
}

// URLs groups every endpoint the backend exposes.
type URLs struct {
	Movies MovieLibrary `json:"movies"`
	Images ImageLibrary `json:"images"`
}

// DatabaseConfig is built once by a loader and handed to the adapter by value.
// Nothing downstream writes to it, so it is shared across calls without locking.
type DatabaseConfig struct {
	URLs URLs `json:"urls"`
}

// Validate reports the movie endpoints left empty.
// Image URLs are optional: a missing base still composes, and a missing
// placeholder falls back to DefaultPlaceholder.
func (c DatabaseConfig) Validate() error {
	var errs []error
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, errors.New("urls.movies."+name+" is empty"))
		}
	}
	check("full", c.URLs.Movies.Full)
	check("summaries", c.URLs.Movies.Summaries)
	check("paged", c.URLs.Movies.Paged)
	check("byId", c.URLs.Movies.ByID)
	return errors.Join(errs...)
}
