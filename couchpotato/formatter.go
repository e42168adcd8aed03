package couchpotato

import (
	"fmt"
	"strconv"
	"strings"
)

// Slack emoji used as line markers
const (
	markerSuccess    = ":white_check_mark:"
	markerAlert      = ":exclamation:"
	markerEmpty      = ":x:"
	markerWanted     = ":clipboard:"
	markerNotOwned   = ":black_small_square:"
	connectionPrefix = "CouchPotato connection test"
)

// SlackFormatter renders API results as Slack-flavoured text
type SlackFormatter struct{}

// NewSlackFormatter creates a new Slack formatter
func NewSlackFormatter() *SlackFormatter {
	return &SlackFormatter{}
}

// FormatConnectivityTest renders the result of an availability probe
func (f *SlackFormatter) FormatConnectivityTest(success bool) string {
	if success {
		return fmt.Sprintf("%s\t%s successful!", markerSuccess, connectionPrefix)
	}
	return fmt.Sprintf("%s\t%s failed!", markerAlert, connectionPrefix)
}

// FormatCharts renders every chart as a bold header followed by its movies.
// Chart items are never owned or wanted, so every line gets the same marker.
func (f *SlackFormatter) FormatCharts(result *ChartsResponse) (string, error) {
	if err := result.validate(); err != nil {
		return "", err
	}

	if *result.Count == 0 || len(result.Charts) == 0 {
		return markerEmpty + "\tNo charts returned!", nil
	}

	var sb strings.Builder
	for _, chart := range result.Charts {
		fmt.Fprintf(&sb, "*%s*\n", chart.Name)
		for _, item := range chart.List {
			fmt.Fprintf(&sb, "%s\t%s - %s\n", markerNotOwned, item.Title, formatYear(item.Info.Year))
		}
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// FormatWanted renders the wanted list
func (f *SlackFormatter) FormatWanted(result *WantedListResponse) string {
	if result == nil || len(result.Movies) == 0 {
		return markerEmpty + "\tYour wanted list is empty!"
	}

	var sb strings.Builder

	noun := "movies"
	if len(result.Movies) == 1 {
		noun = "movie"
	}
	fmt.Fprintf(&sb, "Showing *%d* %s from your wanted list:\n", len(result.Movies), noun)

	for _, movie := range result.Movies {
		fmt.Fprintf(&sb, "%s\t*%s (%s)* - %s\n", markerNotOwned, movie.Title, formatYear(movie.Info.Year), movie.ID)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// FormatSearch renders search results, marking movies that are already
// downloaded or wanted
func (f *SlackFormatter) FormatSearch(title string, result *SearchResponse) string {
	if result == nil || len(result.Movies) == 0 {
		return fmt.Sprintf("%s\tNo results for *%s*", markerEmpty, title)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Searched for: *%s*\n", title)

	for _, movie := range result.Movies {
		fmt.Fprintf(&sb, "%s\t*%s* - %s", statusMarker(movie.Status()), movie.DisplayTitle(), formatYear(movie.Year))
		if movie.Imdb != "" {
			fmt.Fprintf(&sb, " (%s)", movie.Imdb)
		}
		sb.WriteString("\n")

		if movie.Plot != "" {
			fmt.Fprintf(&sb, "\t%s\n", movie.Plot)
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// statusMarker maps a status to its emoji
func statusMarker(status Status) string {
	switch status {
	case StatusDownloaded:
		return markerSuccess
	case StatusWanted:
		return markerWanted
	default:
		return markerNotOwned
	}
}

func formatYear(year int) string {
	if year <= 0 {
		return "n/a"
	}
	return strconv.Itoa(year)
}
