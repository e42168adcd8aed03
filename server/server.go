package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/s0up4200/mediabot/dispatch"
)

// Dispatcher authorizes and handles slash commands
type Dispatcher interface {
	Authorize(req dispatch.Request) error
	Handle(ctx context.Context, req dispatch.Request) (dispatch.Result, error)
}

// Server receives slash commands over HTTP and hands them to a Dispatcher.
// Commands are acknowledged immediately and handled in the background.
type Server struct {
	dispatcher    Dispatcher
	signingSecret string
	logger        zerolog.Logger
	router        *mux.Router
	inflight      sync.WaitGroup
}

// New creates a server. An empty signingSecret disables request signature
// verification.
func New(dispatcher Dispatcher, signingSecret string, logger zerolog.Logger) *Server {
	s := &Server{
		dispatcher:    dispatcher,
		signingSecret: signingSecret,
		logger:        logger,
		router:        mux.NewRouter(),
	}

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/{method}", s.handleCommand).Methods(http.MethodPost)

	return s
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Wait blocks until every acknowledged command has been handled
func (s *Server) Wait() {
	s.inflight.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write health check response")
	}
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	method := dispatch.MethodType(mux.Vars(r)["method"])
	log := s.logger.With().Str("method", string(method)).Str("remote", r.RemoteAddr).Logger()

	if s.signingSecret != "" {
		if err := s.verify(r); err != nil {
			log.Warn().Err(err).Msg("Slack signature verification failed")
			http.Error(w, "Not Authorized", http.StatusUnauthorized)
			return
		}
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse slash command")
		http.Error(w, "failed to parse slash command", http.StatusBadRequest)
		return
	}

	req := requestFromSlashCommand(cmd, method)

	if err := s.dispatcher.Authorize(req); err != nil {
		if errors.Is(err, dispatch.ErrMethodTypeNotFound) {
			log.Warn().Err(err).Msg("Unknown method type")
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		log.Warn().Str("user", req.UserName).Msg("Rejected slash command")
		http.Error(w, "Not Authorized", http.StatusUnauthorized)
		return
	}

	log.Debug().Str("user", req.UserName).Str("text", req.Text).Msg("Slash command received")

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Processing..."))

	ctx := context.WithoutCancel(r.Context())

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		// Handle logs its own failures
		_, _ = s.dispatcher.Handle(ctx, req)
	}()
}

// verify checks the Slack request signature and restores the body for parsing
func (s *Server) verify(r *http.Request) error {
	var buf bytes.Buffer
	tee := io.TeeReader(r.Body, &buf)

	verifier, err := slack.NewSecretsVerifier(r.Header, s.signingSecret)
	if err != nil {
		return err
	}

	if _, err := io.Copy(&verifier, tee); err != nil {
		return err
	}

	if err := verifier.Ensure(); err != nil {
		return err
	}

	r.Body = io.NopCloser(&buf)
	return nil
}

func requestFromSlashCommand(cmd slack.SlashCommand, method dispatch.MethodType) dispatch.Request {
	return dispatch.Request{
		ChannelID:   cmd.ChannelID,
		ChannelName: cmd.ChannelName,
		Command:     cmd.Command,
		TeamID:      cmd.TeamID,
		TeamDomain:  cmd.TeamDomain,
		Text:        cmd.Text,
		Token:       cmd.Token,
		UserID:      cmd.UserID,
		UserName:    cmd.UserName,
		MethodType:  method,
	}
}
