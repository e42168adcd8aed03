// Package couchpotato provides a client for the CouchPotato movie manager API
// and formatters that render its responses as Slack text.
//
// CouchPotato exposes every call as a GET below an API root that embeds the
// API key: http://host:5050/api/<key>/<endpoint>. The client builds that root
// once, at construction, and holds no other state.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client := couchpotato.NewClient(
//		"http://localhost:5050",
//		"your-api-key",
//		logger,
//		couchpotato.WithTimeout(10*time.Second),
//	)
//
//	charts, err := client.Charts(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	text, err := couchpotato.NewSlackFormatter().FormatCharts(charts)
//
// # Error Handling
//
// Argument and configuration problems are reported with sentinel errors
// whose messages are short tags (id-not-string, no-id-supplied,
// no-title-or-identifier-supplied, insufficient-settings). They are returned
// before any network call is made. Non-200 responses surface as *APIError,
// which matches ErrUnauthorized or ErrNotFound through errors.Is.
package couchpotato
