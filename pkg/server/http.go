package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type textBody struct {
	Text string `json:"text" validate:"required"`
}

type batchBody struct {
	Entries []batchEntry `json:"entries" validate:"required,min=1,dive"`
}

type batchEntry struct {
	Key  *int   `json:"key" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// httpError is a failure with the status code to answer with.
type httpError struct {
	Message    string
	StatusCode int
}

func (e *httpError) Error() string {
	return e.Message
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func decodeValidate(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		log.Debugf("Decoding body: %v", err)
		return &httpError{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	if err := validate.Struct(body); err != nil {
		log.Debugf("Validating body: %v", err)
		return &httpError{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// NewHTTPHandler routes the JSON API onto s. /metrics is mounted when
// withMetrics is set.
func NewHTTPHandler(s *Server, withMetrics bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/health", s.httpHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/entries", s.httpList)
		r.Post("/entries", s.httpAddBatch)
		r.Put("/entries/{key}", s.httpPut)
		r.Delete("/entries/{key}", s.httpDelete)
		r.Post("/match", s.httpMatch)
		r.Post("/partial", s.httpPartial)
		r.Get("/stats", s.httpStats)
	})
	if withMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

// ListenAndServe serves h on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) serveRequest(w http.ResponseWriter, r *http.Request, req Request) {
	req.ID = middleware.GetReqID(r.Context())
	writeResponse(w, s.handle("http", req))
}

func (s *Server) httpHealth(w http.ResponseWriter, r *http.Request) {
	s.serveRequest(w, r, Request{Action: ActionHealth})
}

func (s *Server) httpStats(w http.ResponseWriter, r *http.Request) {
	s.serveRequest(w, r, Request{Action: ActionStats})
}

func (s *Server) httpList(w http.ResponseWriter, r *http.Request) {
	s.serveRequest(w, r, Request{Action: ActionList, Text: r.URL.Query().Get("prefix")})
}

func (s *Server) httpMatch(w http.ResponseWriter, r *http.Request) {
	var body textBody
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}
	s.serveRequest(w, r, Request{Action: ActionMatch, Text: body.Text})
}

func (s *Server) httpPartial(w http.ResponseWriter, r *http.Request) {
	var body textBody
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}
	s.serveRequest(w, r, Request{Action: ActionPartial, Text: body.Text})
}

func (s *Server) httpAddBatch(w http.ResponseWriter, r *http.Request) {
	var body batchBody
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}
	entries := make(map[int]string, len(body.Entries))
	for _, e := range body.Entries {
		entries[*e.Key] = e.Text
	}
	s.serveRequest(w, r, Request{Action: ActionAddBatch, Entries: entries})
}

func (s *Server) httpPut(w http.ResponseWriter, r *http.Request) {
	key, err := keyParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body textBody
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}
	if textmatch.Normalize(body.Text) == "" {
		writeError(w, &httpError{Message: "entry text is blank", StatusCode: http.StatusUnprocessableEntity})
		return
	}
	s.serveRequest(w, r, Request{Action: ActionAdd, Key: key, Text: body.Text})
}

func (s *Server) httpDelete(w http.ResponseWriter, r *http.Request) {
	key, err := keyParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := Request{ID: middleware.GetReqID(r.Context()), Action: ActionRemove, Key: key}
	resp := s.handle("http", req)
	if !resp.Failed() && resp.Count == 0 {
		writeError(w, &httpError{Message: fmt.Sprintf("entry %d not found", key), StatusCode: CodeNotFound})
		return
	}
	writeResponse(w, resp)
}

func keyParam(r *http.Request) (int, error) {
	key, err := strconv.Atoi(chi.URLParam(r, "key"))
	if err != nil {
		return 0, &httpError{Message: "Key must be an integer", StatusCode: http.StatusBadRequest}
	}
	return key, nil
}

func writeResponse(w http.ResponseWriter, resp Response) {
	status := http.StatusOK
	if resp.Failed() {
		status = resp.Code
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var he *httpError
	if errors.As(err, &he) {
		http.Error(w, he.Message, he.StatusCode)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
