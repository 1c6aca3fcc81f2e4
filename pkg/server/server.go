package server

import (
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordlearn/internal/logger"
	"github.com/bastiangx/wordlearn/internal/utils"
	"github.com/bastiangx/wordlearn/pkg/config"
	"github.com/bastiangx/wordlearn/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for training and completions
type Server struct {
	provider suggest.ICompleter
	config   *config.Config
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	log      *log.Logger
	requests int
}

// NewServer creates a server reading requests from r and writing responses to w
func NewServer(provider suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		provider: provider,
		config:   cfg,
		decoder:  msgpack.NewDecoder(r),
		encoder:  msgpack.NewEncoder(w),
		log:      logger.New("ipc"),
	}
}

// Start announces readiness and serves requests until the reader is
// exhausted. A clean EOF returns nil.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed", "requests", s.requests)
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return fmt.Errorf("read request: %w", err)
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError(requestID(raw), "invalid msgpack request", 400); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// requestID salvages the id of a request whose other fields do not decode
func requestID(raw msgpack.RawMessage) string {
	var envelope struct {
		ID string `msgpack:"id"`
	}
	if err := msgpack.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	return envelope.ID
}

func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case ActionComplete:
		return s.handleComplete(req)
	case ActionTrain:
		return s.handleTrain(req)
	case ActionStats:
		return s.send(StatusResponse{ID: req.ID, Status: "ok", Stats: s.provider.Stats()})
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleComplete(req Request) error {
	if n := utf8.RuneCountInString(req.Prefix); n > s.config.Server.MaxPrefix {
		s.log.Debug("Prefix too long", "id", req.ID, "len", n)
		return s.sendError(req.ID,
			fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), 400)
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.CLI.DefaultLimit
	}
	if limit < 1 || limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	candidates := s.provider.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(candidates))
	suggestions := make([]CompletionSuggestion, len(candidates))
	for i, c := range candidates {
		suggestions[i] = CompletionSuggestion{
			Word:       c.Word,
			Confidence: c.Confidence,
			Rank:       ranks[i],
		}
	}

	s.log.Debugf("Took [ %v ] for prefix '%s'", elapsed, req.Prefix)
	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleTrain(req Request) error {
	s.provider.Train(req.Text)
	stats := s.provider.Stats()
	resp := TrainResponse{
		ID:     req.ID,
		Status: "ok",
		Tokens: stats["trainedTokens"],
	}
	if words, ok := stats["distinctWords"]; ok {
		resp.Words = &words
	}
	return s.send(resp)
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
