package couchpotato

import (
	"bytes"
	"encoding/json"
)

// Status classifies a movie against the library and the wanted list
type Status string

const (
	// StatusNotFound means the movie is neither downloaded nor wanted
	StatusNotFound Status = "notFound"
	// StatusDownloaded means the movie is already in the library
	StatusDownloaded Status = "downloaded"
	// StatusWanted means the movie waits on an active wanted entry
	StatusWanted Status = "wanted"
)

// wantedStatusActive is the media status CouchPotato uses for wanted entries
const wantedStatusActive = "active"

// GetStatus classifies a movie. Downloaded takes precedence over wanted.
func GetStatus(inLibrary bool, inWanted *WantedEntry) Status {
	if inLibrary {
		return StatusDownloaded
	}
	if inWanted != nil && inWanted.Status == wantedStatusActive {
		return StatusWanted
	}
	return StatusNotFound
}

// Info holds the descriptive metadata CouchPotato attaches to a movie
type Info struct {
	Year          int      `json:"year"`
	Plot          string   `json:"plot"`
	Tagline       string   `json:"tagline,omitempty"`
	Imdb          string   `json:"imdb,omitempty"`
	TmdbID        int      `json:"tmdb_id,omitempty"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Titles        []string `json:"titles,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Runtime       int      `json:"runtime,omitempty"`
}

// Release is a single release tracked for a movie
type Release struct {
	ID      string `json:"_id"`
	MediaID string `json:"media_id"`
	Status  string `json:"status"`
	Quality string `json:"quality"`
}

// Media is a movie as stored in the CouchPotato database
type Media struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Type     string    `json:"type,omitempty"`
	Info     Info      `json:"info"`
	Releases []Release `json:"releases,omitempty"`
}

// IsActive reports whether the movie sits on the wanted list
func (m *Media) IsActive() bool {
	return m.Status == wantedStatusActive
}

// MediaResponse is returned by media.get
type MediaResponse struct {
	Media   *Media `json:"media"`
	Success bool   `json:"success"`
}

// WantedListResponse is returned by media.list
type WantedListResponse struct {
	Movies  []Media `json:"movies"`
	Total   int     `json:"total"`
	Empty   bool    `json:"empty,omitempty"`
	Success bool    `json:"success"`
}

// ChartItem is a single entry in a chart
type ChartItem struct {
	Title string `json:"title"`
	Info  Info   `json:"info"`
}

// Chart is a named, ordered list of trending movies
type Chart struct {
	Name string      `json:"name"`
	List []ChartItem `json:"list"`
}

// ChartsResponse is returned by charts.view. Count and Success are pointers
// so a missing field can be told apart from a zero value.
type ChartsResponse struct {
	Count   *int    `json:"count"`
	Charts  []Chart `json:"charts"`
	Ignored []Chart `json:"ignored,omitempty"`
	Success *bool   `json:"success"`
}

// validate checks the response carries count, charts and success
func (r *ChartsResponse) validate() error {
	if r == nil || r.Count == nil || r.Charts == nil || r.Success == nil {
		return ErrInvalidResponse
	}
	return nil
}

// AvailableResponse is returned by app.available
type AvailableResponse struct {
	Success bool `json:"success"`
}

// SuccessResponse is returned by mutating endpoints such as movie.add
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AddResponse is returned by movie.add
type AddResponse struct {
	Movie   *Media `json:"movie,omitempty"`
	Success bool   `json:"success"`
}

// WantedEntry is the in_wanted object attached to search results
type WantedEntry struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

// LibraryEntry is the in_library object attached to search results
type LibraryEntry struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

// SearchMovie is a single search result
type SearchMovie struct {
	Title     string        `json:"original_title"`
	Titles    []string      `json:"titles"`
	Year      int           `json:"year"`
	Plot      string        `json:"plot"`
	Imdb      string        `json:"imdb"`
	TmdbID    int           `json:"tmdb_id"`
	InLibrary *LibraryEntry `json:"in_library,omitempty"`
	InWanted  *WantedEntry  `json:"in_wanted,omitempty"`
}

// UnmarshalJSON accepts CouchPotato's habit of sending false instead of an
// object for in_library and in_wanted.
func (m *SearchMovie) UnmarshalJSON(data []byte) error {
	type alias SearchMovie
	aux := struct {
		*alias
		InLibrary json.RawMessage `json:"in_library"`
		InWanted  json.RawMessage `json:"in_wanted"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if m.InLibrary, err = decodeOptional[LibraryEntry](aux.InLibrary); err != nil {
		return err
	}
	if m.InWanted, err = decodeOptional[WantedEntry](aux.InWanted); err != nil {
		return err
	}
	return nil
}

// DisplayTitle prefers the original title and falls back to the first alias
func (m *SearchMovie) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if len(m.Titles) > 0 {
		return m.Titles[0]
	}
	return ""
}

// Status classifies the search result
func (m *SearchMovie) Status() Status {
	return GetStatus(m.InLibrary != nil, m.InWanted)
}

// SearchResponse is returned by search
type SearchResponse struct {
	Movies  []SearchMovie `json:"movies"`
	Success bool          `json:"success"`
}

func decodeOptional[T any](raw json.RawMessage) (*T, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false":
		return nil, nil
	case "true":
		return new(T), nil
	}

	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, err
	}
	return v, nil
}
