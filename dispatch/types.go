package dispatch

import "fmt"

// MethodType selects which configured token a request is checked against
type MethodType string

const (
	// MethodMedia is the /media slash command
	MethodMedia MethodType = "media"
	// MethodM is the /m slash command
	MethodM MethodType = "m"
)

// Request is an inbound slash command
type Request struct {
	ChannelID   string
	ChannelName string
	Command     string
	TeamID      string
	TeamDomain  string
	Text        string
	Token       string
	UserID      string
	UserName    string
	MethodType  MethodType
}

// Validate checks the fields the dispatcher relies on
func (r Request) Validate() error {
	switch {
	case r.Text == "":
		return fmt.Errorf("%w: text is required", ErrMalformedRequest)
	case r.UserName == "":
		return fmt.Errorf("%w: user_name is required", ErrMalformedRequest)
	case r.ChannelName == "":
		return fmt.Errorf("%w: channel_name is required", ErrMalformedRequest)
	}
	return nil
}

// Result is the outcome of handling one request
type Result struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// Tokens holds the verification token of each method variant
type Tokens struct {
	Media string
	M     string
}

func (t Tokens) lookup(method MethodType) (string, bool) {
	switch method {
	case MethodMedia:
		return t.Media, true
	case MethodM:
		return t.M, true
	default:
		return "", false
	}
}
