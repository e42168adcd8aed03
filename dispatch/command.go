package dispatch

import (
	"fmt"
	"regexp"
	"strings"
)

// Command is a parsed slash command. The set of implementations is closed.
type Command interface {
	verb() string
}

// AddCommand announces that a movie was added
type AddCommand struct {
	Media string
}

// RemoveCommand announces that a movie was removed
type RemoveCommand struct {
	Media string
}

// ShowCommand queries the catalog
type ShowCommand struct {
	Target ShowTarget
}

func (AddCommand) verb() string    { return "add" }
func (RemoveCommand) verb() string { return "remove" }
func (ShowCommand) verb() string   { return "show" }

// ShowTarget is what a show command asks for. The set of implementations is closed.
type ShowTarget interface {
	target() string
}

// ShowWanted lists the wanted movies
type ShowWanted struct{}

// ShowCharts lists the trending charts
type ShowCharts struct{}

// ShowTest probes the catalog connection
type ShowTest struct{}

// ShowIndividual looks up a single title
type ShowIndividual struct {
	Title string
}

func (ShowWanted) target() string     { return "wanted" }
func (ShowCharts) target() string     { return "charts" }
func (ShowTest) target() string       { return "test" }
func (ShowIndividual) target() string { return "individual" }

var leadingWord = regexp.MustCompile(`^\w+`)

// Parse splits text into a verb and its argument. The verb is the leading
// word; the argument is the remainder with one separating space removed.
// Verbs and show targets match exactly, so "show Wanted" is an individual
// title lookup.
func Parse(text string) (Command, error) {
	verb := leadingWord.FindString(text)
	if verb == "" {
		return nil, fmt.Errorf("%w: no command in %q", ErrMalformedRequest, text)
	}

	arg := strings.TrimPrefix(text[len(verb):], " ")

	switch verb {
	case "add", "remove", "show":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
	}

	if arg == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingArgument, verb)
	}

	switch verb {
	case "add":
		return AddCommand{Media: arg}, nil
	case "remove":
		return RemoveCommand{Media: arg}, nil
	default:
		return ShowCommand{Target: parseShowTarget(arg)}, nil
	}
}

func parseShowTarget(arg string) ShowTarget {
	switch arg {
	case "wanted":
		return ShowWanted{}
	case "charts":
		return ShowCharts{}
	case "test":
		return ShowTest{}
	default:
		return ShowIndividual{Title: arg}
	}
}
