package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Payload is a backend document kept verbatim.
// The record schemas are owned by the backend, so the adapter decodes only
// what it needs and re-encodes the original bytes unchanged.
type Payload struct {
	raw json.RawMessage
}

// Raw returns a copy of the original document.
func (p Payload) Raw() json.RawMessage {
	if p.raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), p.raw...)
}

// IsZero reports whether nothing was decoded into p.
func (p Payload) IsZero() bool { return len(p.raw) == 0 }

// Decode applies a caller-owned schema to the document.
func (p Payload) Decode(v any) error {
	if p.IsZero() {
		return errors.New("empty payload")
	}
	return json.Unmarshal(p.raw, v)
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	return p.Raw(), nil
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	switch firstByte(data) {
	case '{', '[':
	default:
		return fmt.Errorf("expected a JSON object or array, got %s", describe(data))
	}
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Page is one page of full movie records.
type Page struct{ Payload }

// SummarizedPage is one page of abbreviated movie records.
type SummarizedPage struct{ Payload }

// MovieDatabase is the complete bulk export.
type MovieDatabase struct{ Payload }

// ImagePaths carries the nullable image paths shared by full and summarized records.
type ImagePaths struct {
	Poster   *string `json:"poster_path"`
	Backdrop *string `json:"backdrop_path"`
}

func (p ImagePaths) PosterPath() *string   { return p.Poster }
func (p ImagePaths) BackdropPath() *string { return p.Backdrop }

// Movie is a single film record.
type Movie struct {
	Payload
	id     int
	images ImagePaths
}

// NewMovie decodes a movie document; it is how tests and fixtures build records.
func NewMovie(doc []byte) (Movie, error) {
	var m Movie
	err := json.Unmarshal(doc, &m)
	return m, err
}

func (m Movie) ID() int               { return m.id }
func (m Movie) PosterPath() *string   { return m.images.Poster }
func (m Movie) BackdropPath() *string { return m.images.Backdrop }

func (m *Movie) UnmarshalJSON(data []byte) error {
	if firstByte(data) != '{' {
		return fmt.Errorf("expected a JSON object for movie, got %s", describe(data))
	}
	var head struct {
		ID int `json:"id"`
		ImagePaths
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("decode movie: %w", err)
	}
	m.id = head.ID
	m.images = head.ImagePaths
	m.raw = append(json.RawMessage(nil), data...)
	return nil
}

// PosterSource is anything that may carry a poster path.
type PosterSource interface {
	PosterPath() *string
}

// BackdropSource is anything that may carry a backdrop path.
type BackdropSource interface {
	BackdropPath() *string
}

func firstByte(data []byte) byte {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

func describe(data []byte) string {
	switch firstByte(data) {
	case 0:
		return "empty input"
	case '"':
		return "a string"
	case 'n':
		return "null"
	case 't', 'f':
		return "a boolean"
	default:
		return "a number"
	}
}
