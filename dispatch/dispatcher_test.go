package dispatch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/mediabot/couchpotato"
)

// mockCatalog implements Catalog for testing
type mockCatalog struct {
	wanted    *couchpotato.WantedListResponse
	charts    *couchpotato.ChartsResponse
	available *couchpotato.AvailableResponse
	err       error

	// Track calls for verification
	wantedCalls    int
	chartsCalls    int
	availableCalls int
}

func (m *mockCatalog) WantedList(ctx context.Context) (*couchpotato.WantedListResponse, error) {
	m.wantedCalls++
	return m.wanted, m.err
}

func (m *mockCatalog) Charts(ctx context.Context) (*couchpotato.ChartsResponse, error) {
	m.chartsCalls++
	return m.charts, m.err
}

func (m *mockCatalog) IsAvailable(ctx context.Context) (*couchpotato.AvailableResponse, error) {
	m.availableCalls++
	return m.available, m.err
}

func (m *mockCatalog) calls() int {
	return m.wantedCalls + m.chartsCalls + m.availableCalls
}

type post struct {
	channel string
	text    string
}

// mockPoster records every post
type mockPoster struct {
	posts []post
	err   error
}

func (m *mockPoster) Post(ctx context.Context, channel, text string) error {
	if m.err != nil {
		return m.err
	}
	m.posts = append(m.posts, post{channel: channel, text: text})
	return nil
}

var testTokens = Tokens{Media: "media-token", M: "m-token"}

func newRequest(method MethodType, token, text string) Request {
	return Request{
		ChannelID:   "C123",
		ChannelName: "movies",
		Command:     "/media",
		TeamID:      "T123",
		TeamDomain:  "example",
		Text:        text,
		Token:       token,
		UserID:      "U123",
		UserName:    "bob",
		MethodType:  method,
	}
}

func newTestDispatcher(catalog *mockCatalog, poster *mockPoster, logger zerolog.Logger) *Dispatcher {
	return New(catalog, couchpotato.NewSlackFormatter(), poster, testTokens, logger)
}

func TestDispatcher_Authorize(t *testing.T) {
	d := newTestDispatcher(&mockCatalog{}, &mockPoster{}, zerolog.Nop())

	tests := []struct {
		name     string
		method   MethodType
		token    string
		expected error
	}{
		{name: "media token", method: MethodMedia, token: "media-token"},
		{name: "m token", method: MethodM, token: "m-token"},
		{name: "token of the other variant", method: MethodM, token: "media-token", expected: ErrAuthorizationFailed},
		{name: "absent token", method: MethodMedia, token: "", expected: ErrAuthorizationFailed},
		{name: "wrong token", method: MethodMedia, token: "nope", expected: ErrAuthorizationFailed},
		{name: "unknown method", method: "movies", token: "media-token", expected: ErrMethodTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Authorize(newRequest(tt.method, tt.token, "show test"))
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestDispatcher_AuthorizeUnconfiguredToken(t *testing.T) {
	d := New(&mockCatalog{}, couchpotato.NewSlackFormatter(), &mockPoster{}, Tokens{Media: "media-token"}, zerolog.Nop())

	err := d.Authorize(newRequest(MethodM, "", "show test"))
	assert.ErrorIs(t, err, ErrAuthorizationFailed)
}

func TestDispatcher_ShowWanted(t *testing.T) {
	catalog := &mockCatalog{wanted: &couchpotato.WantedListResponse{
		Movies:  []couchpotato.Media{{ID: "m1", Title: "Arrival", Info: couchpotato.Info{Year: 2016}}},
		Total:   1,
		Success: true,
	}}
	poster := &mockPoster{}
	d := newTestDispatcher(catalog, poster, zerolog.Nop())

	t.Run("matching token", func(t *testing.T) {
		result, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show wanted"))
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 1, catalog.wantedCalls)
		assert.Equal(t, 1, catalog.calls())
		require.Len(t, poster.posts, 1)
		assert.Equal(t, "#movies", poster.posts[0].channel)
		assert.Contains(t, poster.posts[0].text, "*Arrival (2016)* - m1")
	})

	t.Run("mismatched token", func(t *testing.T) {
		catalog.wantedCalls = 0
		poster.posts = nil

		result, err := d.Handle(context.Background(), newRequest(MethodMedia, "m-token", "show wanted"))
		assert.ErrorIs(t, err, ErrAuthorizationFailed)

		assert.Equal(t, "authorization-failed", result.Error)
		assert.False(t, result.Success)
		assert.Equal(t, 0, catalog.calls())
		assert.Empty(t, poster.posts)
	})
}

func TestDispatcher_ShowCharts(t *testing.T) {
	count, success := 1, true
	catalog := &mockCatalog{charts: &couchpotato.ChartsResponse{
		Count: &count,
		Charts: []couchpotato.Chart{
			{Name: "Box Office", List: []couchpotato.ChartItem{{Title: "Dune", Info: couchpotato.Info{Year: 2021}}}},
		},
		Success: &success,
	}}
	poster := &mockPoster{}
	d := newTestDispatcher(catalog, poster, zerolog.Nop())

	result, err := d.Handle(context.Background(), newRequest(MethodM, "m-token", "show charts"))
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.chartsCalls)
	require.Len(t, poster.posts, 1)
	assert.Equal(t, "*Box Office*\n:black_small_square:\tDune - 2021", poster.posts[0].text)
	assert.Equal(t, poster.posts[0].text, result.Message)
}

func TestDispatcher_ShowChartsInvalidResponse(t *testing.T) {
	catalog := &mockCatalog{charts: &couchpotato.ChartsResponse{}}
	poster := &mockPoster{}
	d := newTestDispatcher(catalog, poster, zerolog.Nop())

	_, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show charts"))
	assert.ErrorIs(t, err, couchpotato.ErrInvalidResponse)
	assert.Empty(t, poster.posts)
}

func TestDispatcher_ShowTest(t *testing.T) {
	for _, available := range []bool{true, false} {
		catalog := &mockCatalog{available: &couchpotato.AvailableResponse{Success: available}}
		poster := &mockPoster{}
		d := newTestDispatcher(catalog, poster, zerolog.Nop())

		_, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show test"))
		require.NoError(t, err)

		require.Len(t, poster.posts, 1)
		assert.Equal(t, couchpotato.NewSlackFormatter().FormatConnectivityTest(available), poster.posts[0].text)
	}
}

func TestDispatcher_ShowChartsWithoutCharts(t *testing.T) {
	count, success := 2, true
	catalog := &mockCatalog{charts: &couchpotato.ChartsResponse{Count: &count, Charts: []couchpotato.Chart{}, Success: &success}}
	poster := &mockPoster{}
	d := newTestDispatcher(catalog, poster, zerolog.Nop())

	_, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show charts"))
	require.NoError(t, err)

	require.Len(t, poster.posts, 1)
	assert.Equal(t, ":x:\tNo charts returned!", poster.posts[0].text)
}

func TestDispatcher_ShowTargetIsCaseSensitive(t *testing.T) {
	catalog := &mockCatalog{wanted: &couchpotato.WantedListResponse{Success: true}}
	poster := &mockPoster{}
	d := newTestDispatcher(catalog, poster, zerolog.Nop())

	_, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show Wanted"))
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Equal(t, 0, catalog.calls())
	assert.Empty(t, poster.posts)
}

func TestDispatcher_ShowNotImplemented(t *testing.T) {
	var logs bytes.Buffer
	catalog := &mockCatalog{}
	poster := &mockPoster{}
	d := newTestDispatcher(catalog, poster, zerolog.New(&logs))

	result, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show banana"))
	assert.ErrorIs(t, err, ErrNotImplemented)

	assert.False(t, result.Success)
	assert.Empty(t, poster.posts)
	assert.Equal(t, 0, catalog.calls())
	assert.Contains(t, logs.String(), "not-implemented")
}

func TestDispatcher_AddRemove(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{text: "add The Matrix", expected: "@bob has added The Matrix"},
		{text: "remove The Matrix", expected: "@bob has removed The Matrix"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			catalog := &mockCatalog{}
			poster := &mockPoster{}
			d := newTestDispatcher(catalog, poster, zerolog.Nop())

			result, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", tt.text))
			require.NoError(t, err)

			assert.Equal(t, tt.expected, result.Message)
			assert.Equal(t, 0, catalog.calls())
			require.Len(t, poster.posts, 1)
			assert.Equal(t, post{channel: "#movies", text: tt.expected}, poster.posts[0])
		})
	}
}

func TestDispatcher_Failures(t *testing.T) {
	t.Run("unknown method type", func(t *testing.T) {
		poster := &mockPoster{}
		d := newTestDispatcher(&mockCatalog{}, poster, zerolog.Nop())

		_, err := d.Handle(context.Background(), newRequest("movies", "media-token", "show test"))
		assert.ErrorIs(t, err, ErrMethodTypeNotFound)
		assert.Empty(t, poster.posts)
	})

	t.Run("catalog error suppresses the post", func(t *testing.T) {
		apiErr := &couchpotato.APIError{Endpoint: "media.list/", StatusCode: 500}
		catalog := &mockCatalog{err: apiErr}
		poster := &mockPoster{}
		d := newTestDispatcher(catalog, poster, zerolog.Nop())

		result, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show wanted"))

		var target *couchpotato.APIError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 500, target.StatusCode)
		assert.NotEmpty(t, result.Error)
		assert.Equal(t, 1, catalog.wantedCalls)
		assert.Empty(t, poster.posts)
	})

	t.Run("connection test transport error suppresses the post", func(t *testing.T) {
		transportErr := errors.New("dial tcp: connection refused")
		catalog := &mockCatalog{err: transportErr}
		poster := &mockPoster{}
		d := newTestDispatcher(catalog, poster, zerolog.Nop())

		result, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "show test"))
		assert.ErrorIs(t, err, transportErr)
		assert.False(t, result.Success)
		assert.Equal(t, 1, catalog.availableCalls)
		assert.Empty(t, poster.posts)
	})

	t.Run("post failure", func(t *testing.T) {
		postErr := errors.New("webhook down")
		d := newTestDispatcher(&mockCatalog{}, &mockPoster{err: postErr}, zerolog.Nop())

		result, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "add Heat"))
		assert.ErrorIs(t, err, postErr)
		assert.False(t, result.Success)
	})

	t.Run("unparseable text", func(t *testing.T) {
		poster := &mockPoster{}
		d := newTestDispatcher(&mockCatalog{}, poster, zerolog.Nop())

		_, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", "fetch Heat"))
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.Empty(t, poster.posts)
	})

	t.Run("empty text", func(t *testing.T) {
		d := newTestDispatcher(&mockCatalog{}, &mockPoster{}, zerolog.Nop())

		_, err := d.Handle(context.Background(), newRequest(MethodMedia, "media-token", ""))
		assert.ErrorIs(t, err, ErrMalformedRequest)
	})
}
