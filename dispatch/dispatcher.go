package dispatch

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/mediabot/couchpotato"
	"github.com/s0up4200/mediabot/slack"
)

// Catalog is the subset of the CouchPotato API the dispatcher calls
type Catalog interface {
	WantedList(ctx context.Context) (*couchpotato.WantedListResponse, error)
	Charts(ctx context.Context) (*couchpotato.ChartsResponse, error)
	IsAvailable(ctx context.Context) (*couchpotato.AvailableResponse, error)
}

// Dispatcher routes slash commands to the catalog and posts the replies
type Dispatcher struct {
	catalog   Catalog
	formatter couchpotato.MediaFormatter
	poster    slack.Poster
	tokens    Tokens
	logger    zerolog.Logger
}

// New creates a dispatcher
func New(catalog Catalog, formatter couchpotato.MediaFormatter, poster slack.Poster, tokens Tokens, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		catalog:   catalog,
		formatter: formatter,
		poster:    poster,
		tokens:    tokens,
		logger:    logger,
	}
}

// Authorize checks the request token against the token configured for its
// method variant.
func (d *Dispatcher) Authorize(req Request) error {
	expected, ok := d.tokens.lookup(req.MethodType)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMethodTypeNotFound, req.MethodType)
	}

	if req.Token == "" || expected == "" {
		return ErrAuthorizationFailed
	}

	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(expected)) != 1 {
		return ErrAuthorizationFailed
	}

	return nil
}

// Handle authorizes, parses and executes req, posting the reply to the
// request's channel. Nothing is posted when any step fails.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (Result, error) {
	log := d.logger.With().
		Str("method", string(req.MethodType)).
		Str("user", req.UserName).
		Str("channel", req.ChannelName).
		Logger()

	if err := d.Authorize(req); err != nil {
		if errors.Is(err, ErrMethodTypeNotFound) {
			log.Error().Err(err).Msg("Unknown method type")
			return Result{}, err
		}
		log.Warn().Msg("Authorization failed")
		return Result{Error: ErrAuthorizationFailed.Error()}, ErrAuthorizationFailed
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("Rejected request")
		return Result{Error: err.Error()}, err
	}

	cmd, err := Parse(req.Text)
	if err != nil {
		log.Warn().Err(err).Str("text", req.Text).Msg("Could not parse command")
		return Result{Error: err.Error()}, err
	}

	log = log.With().Str("verb", cmd.verb()).Logger()

	text, err := d.execute(ctx, req, cmd)
	if err != nil {
		if errors.Is(err, ErrNotImplemented) {
			log.Warn().Err(err).Msg("Rejected command")
		} else {
			log.Error().Err(err).Msg("Command failed")
		}
		return Result{Error: err.Error()}, err
	}

	if err := d.poster.Post(ctx, "#"+req.ChannelName, text); err != nil {
		log.Error().Err(err).Msg("Failed to post reply")
		return Result{Error: err.Error()}, fmt.Errorf("failed to post reply: %w", err)
	}

	log.Info().Msg("Command handled")

	return Result{Message: text, Success: true}, nil
}

func (d *Dispatcher) execute(ctx context.Context, req Request, cmd Command) (string, error) {
	switch c := cmd.(type) {
	case AddCommand:
		return fmt.Sprintf("@%s has added %s", req.UserName, c.Media), nil
	case RemoveCommand:
		return fmt.Sprintf("@%s has removed %s", req.UserName, c.Media), nil
	case ShowCommand:
		return d.show(ctx, c.Target)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func (d *Dispatcher) show(ctx context.Context, target ShowTarget) (string, error) {
	switch t := target.(type) {
	case ShowWanted:
		wanted, err := d.catalog.WantedList(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to fetch wanted list: %w", err)
		}
		return d.formatter.FormatWanted(wanted), nil

	case ShowCharts:
		charts, err := d.catalog.Charts(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to fetch charts: %w", err)
		}
		return d.formatter.FormatCharts(charts)

	case ShowTest:
		available, err := d.catalog.IsAvailable(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to check availability: %w", err)
		}
		return d.formatter.FormatConnectivityTest(available.Success), nil

	case ShowIndividual:
		return "", fmt.Errorf("%w: show %s", ErrNotImplemented, t.Title)

	default:
		return "", fmt.Errorf("%w: %T", ErrNotImplemented, target)
	}
}
