package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/phrasematch/internal/logger"
	"github.com/bastiangx/phrasematch/pkg/config"
	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var knownActions = map[string]bool{
	ActionAdd: true, ActionAddBatch: true, ActionRemove: true, ActionRemoveBatch: true,
	ActionMatch: true, ActionPartial: true, ActionList: true, ActionStats: true, ActionHealth: true,
}

// Server answers requests against a shared matcher.
type Server struct {
	matcher textmatch.IMatcher
	cfg     config.ServerConfig
	cache   *HotCache
	logger  *log.Logger
}

// NewServer creates a server over m. m must be safe for concurrent use when
// the HTTP handler and the IPC loop run together.
func NewServer(m textmatch.IMatcher, cfg config.ServerConfig) *Server {
	s := &Server{
		matcher: m,
		cfg:     cfg,
		logger:  logger.New("ipc"),
	}
	if cfg.CacheSize > 0 {
		s.cache = NewHotCache(cfg.CacheSize)
	}
	return s
}

// Start serves msgpack requests on stdin/stdout until stdin closes.
func (s *Server) Start() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads msgpack requests from r and writes one response per request
// to w. It returns nil once r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	enc := msgpack.NewEncoder(w)

	s.logger.Debug("Starting server.")
	if err := enc.Encode(map[string]string{"status": "ready"}); err != nil {
		return fmt.Errorf("writing ready message: %w", err)
	}

	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping.")
				return nil
			}
			// the stream cannot be resynchronized after a bad message
			s.logger.Errorf("Decoding request: %v", err)
			enc.Encode(errorResponse(CodeBadRequest, "invalid msgpack request"))
			return fmt.Errorf("decoding request: %w", err)
		}
		resp := s.handle("ipc", req)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response %q: %w", req.ID, err)
		}
	}
}

// Handle runs one request and returns its response.
func (s *Server) Handle(req Request) Response {
	return s.handle("ipc", req)
}

func (s *Server) handle(transport string, req Request) Response {
	start := time.Now()
	resp := s.dispatch(req)
	elapsed := time.Since(start)

	resp.ID = req.ID
	resp.TimeTaken = elapsed.Microseconds()
	if resp.Status == "" {
		resp.Status = StatusOK
	}
	if !knownActions[req.Action] {
		req.Action = "unknown"
	}
	observe(transport, req, resp, elapsed)

	if resp.Failed() {
		s.logger.Debugf("Request %q (%s) failed: %d %s", req.ID, req.Action, resp.Code, resp.Error)
	} else {
		s.logger.Debugf("Request %q (%s): count=%d in %v", req.ID, req.Action, resp.Count, elapsed)
	}
	return resp
}

func (s *Server) dispatch(req Request) Response {
	switch req.Action {
	case ActionAdd:
		stored := 0
		if s.matcher.AddEntry(req.Key, req.Text) {
			stored = 1
		}
		storedEntries.Set(float64(s.matcher.Len()))
		return Response{Count: stored}

	case ActionAddBatch:
		if len(req.Entries) == 0 {
			return errorResponse(CodeBadRequest, "missing 'entries'")
		}
		stored := s.matcher.AddEntries(req.Entries)
		storedEntries.Set(float64(s.matcher.Len()))
		return Response{Count: stored}

	case ActionRemove:
		removed := 0
		if s.matcher.RemoveEntry(req.Key) {
			removed = 1
		}
		storedEntries.Set(float64(s.matcher.Len()))
		return Response{Count: removed}

	case ActionRemoveBatch:
		if len(req.Keys) == 0 {
			return errorResponse(CodeBadRequest, "missing 'keys'")
		}
		removed := s.matcher.RemoveEntries(req.Keys)
		storedEntries.Set(float64(s.matcher.Len()))
		return Response{Count: removed}

	case ActionMatch, ActionPartial:
		if resp, ok := s.checkText(req.Text); !ok {
			return resp
		}
		return s.cachedQuery(req)

	case ActionList:
		entries := limit(s.matcher.EntriesWithPrefix(req.Text), s.cfg.MaxResults)
		return Response{Entries: entries, Count: len(entries)}

	case ActionStats:
		resp := Response{Count: s.matcher.Len(), Digest: s.matcher.Digest()}
		if s.cache != nil {
			resp.Cache = s.cache.Stats()
		}
		return resp

	case ActionHealth:
		return Response{}

	default:
		return errorResponse(CodeBadRequest, fmt.Sprintf("unknown action: %q", req.Action))
	}
}

// cachedQuery answers match and partial requests, reusing a response
// computed at the current generation of the matcher.
func (s *Server) cachedQuery(req Request) Response {
	if s.cache == nil {
		return s.query(req)
	}
	// read before computing so a concurrent change never gets stored under
	// the newer generation
	gen := s.matcher.Generation()
	key := cacheKey(req.Action, req.Text)
	if resp, ok := s.cache.Get(key, gen); ok {
		return resp
	}
	resp := s.query(req)
	if !resp.Failed() {
		s.cache.Put(key, gen, resp)
	}
	return resp
}

func (s *Server) query(req Request) Response {
	if req.Action == ActionPartial {
		partials := limit(s.matcher.PartialMatch(req.Text), s.cfg.MaxResults)
		return Response{Partials: partials, Count: len(partials)}
	}
	matches, err := s.matcher.MatchText(req.Text)
	if err != nil {
		return matchError(err)
	}
	matches = limit(matches, s.cfg.MaxResults)
	return Response{Matches: matches, Count: len(matches)}
}

func (s *Server) checkText(text string) (Response, bool) {
	if text == "" {
		return errorResponse(CodeBadRequest, "missing 'text'"), false
	}
	if s.cfg.MaxText > 0 && utf8.RuneCountInString(text) > s.cfg.MaxText {
		return errorResponse(CodeTooLarge, fmt.Sprintf("text exceeds maximum length of %d characters", s.cfg.MaxText)), false
	}
	return Response{}, true
}

func matchError(err error) Response {
	var charErr *textmatch.UnsupportedCharacterError
	if errors.As(err, &charErr) {
		return errorResponse(CodeUnsupported, err.Error())
	}
	log.Errorf("Matching failed: %v", err)
	return errorResponse(CodeInternalError, "internal error")
}

func errorResponse(code int, message string) Response {
	return Response{Status: StatusError, Code: code, Error: message}
}

// limit keeps the first n results; n <= 0 keeps everything.
func limit[T any](results []T, n int) []T {
	if n > 0 && len(results) > n {
		return results[:n]
	}
	return results
}
