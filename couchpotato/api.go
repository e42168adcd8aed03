package couchpotato

import (
	"context"
)

// API defines the interface for CouchPotato operations
type API interface {
	// GetMediaByID retrieves a single movie
	GetMediaByID(ctx context.Context, id string) (*MediaResponse, error)

	// WantedList lists movies with an active wanted status
	WantedList(ctx context.Context) (*WantedListResponse, error)

	// Charts lists trending movies grouped by chart
	Charts(ctx context.Context) (*ChartsResponse, error)

	// IsAvailable probes the connection
	IsAvailable(ctx context.Context) (*AvailableResponse, error)

	// Search queries the catalog by free text
	Search(ctx context.Context, title string) (*SearchResponse, error)

	// AddToWanted adds a movie to the wanted list
	AddToWanted(ctx context.Context, opts AddOptions) (*AddResponse, error)

	// RemoveFromWanted removes a movie from the wanted list
	RemoveFromWanted(ctx context.Context, id string) (bool, error)
}

// MediaFormatter defines the interface for turning API results into chat text
type MediaFormatter interface {
	FormatConnectivityTest(success bool) string
	FormatCharts(result *ChartsResponse) (string, error)
	FormatWanted(result *WantedListResponse) string
	FormatSearch(title string, result *SearchResponse) string
}

var (
	_ API            = (*Client)(nil)
	_ MediaFormatter = (*SlackFormatter)(nil)
)
