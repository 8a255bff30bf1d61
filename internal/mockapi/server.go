// Package mockapi serves a local in-memory imitation of the GetAlts API.
//
// It speaks the same wire protocol as the production endpoint (GET
// requests, token query parameter, JSON bodies with an error envelope)
// so the client, the CLI, and integration tests can run without
// touching the real service.
package mockapi

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/getalts/getalts-go/pkg/getalts"
)

// Option configures the mock server.
type Option func(*Server)

// WithToken restricts access to a single accepted token.
// By default any non-empty token is accepted.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithBalance sets the starting account balance.
func WithBalance(balance float64) Option {
	return func(s *Server) { s.balance = balance }
}

// WithPrice sets the flat per-number price.
func WithPrice(price float64) Option {
	return func(s *Server) { s.price = price }
}

// WithCodeDelay sets how many status polls pass before a bought number
// receives its verification code.
func WithCodeDelay(polls int) Option {
	return func(s *Server) { s.codeDelay = polls }
}

// Server is an in-memory GetAlts API.
// Safe for concurrent use.
type Server struct {
	mu        sync.Mutex
	token     string
	balance   float64
	price     float64
	codeDelay int
	nextID    int64
	acts      map[int64]*activation
}

type activation struct {
	phone  string
	status getalts.Status
	code   int
	polls  int
	price  float64
}

// New creates a mock server with a generous default balance.
func New(opts ...Option) *Server {
	s := &Server{
		balance:   100,
		price:     0.5,
		codeDelay: 2,
		nextID:    100,
		acts:      make(map[int64]*activation),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requireToken)

	r.Get("/get_balance", s.handleBalance)
	r.Get("/get_amount", s.handleAmount)
	r.Get("/get_prices_by_country", s.handlePricesByCountry)
	r.Get("/get_prices_by_service", s.handlePricesByService)
	r.Get("/buy_number", s.handleBuy)
	r.Get("/get_activation_status", s.handleStatus)
	r.Get("/set_activation_status", s.handleSetStatus)

	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" || (s.token != "" && token != s.token) {
			writeError(w, "bad_token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	balance := s.balance
	s.mu.Unlock()
	writeJSON(w, map[string]float64{"balance": balance})
}

func (s *Server) handleAmount(w http.ResponseWriter, r *http.Request) {
	if _, ok := parseCountry(w, r); !ok {
		return
	}
	counts := make(map[string]int, len(getalts.Services()))
	for _, svc := range getalts.Services() {
		counts[svc.String()] = 10 + rand.Intn(90)
	}
	writeJSON(w, counts)
}

func (s *Server) handlePricesByCountry(w http.ResponseWriter, r *http.Request) {
	if _, ok := parseCountry(w, r); !ok {
		return
	}
	s.mu.Lock()
	price := s.price
	s.mu.Unlock()

	prices := make(map[string]float64, len(getalts.Services()))
	for _, svc := range getalts.Services() {
		prices[svc.String()] = price
	}
	writeJSON(w, prices)
}

func (s *Server) handlePricesByService(w http.ResponseWriter, r *http.Request) {
	if _, err := getalts.ParseService(r.URL.Query().Get("service")); err != nil {
		writeError(w, "bad_service")
		return
	}

	s.mu.Lock()
	price := s.price
	s.mu.Unlock()

	prices := make(map[string]float64, len(getalts.Countries()))
	for _, c := range getalts.Countries() {
		prices[c.String()] = price
	}
	writeJSON(w, prices)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	if _, err := getalts.ParseService(r.URL.Query().Get("service")); err != nil {
		writeError(w, "bad_service")
		return
	}
	if _, ok := parseCountry(w, r); !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balance < s.price {
		writeError(w, "no_money")
		return
	}

	s.balance -= s.price
	s.nextID++
	id := s.nextID
	act := &activation{
		phone:  "7" + strconv.FormatInt(9000000000+rand.Int63n(999999999), 10),
		status: getalts.StatusReady,
		price:  s.price,
	}
	s.acts[id] = act

	writeJSON(w, map[string]any{
		"phone_number":  act.phone,
		"activation_id": id,
		"status":        act.status,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	act, ok := s.lookup(w, r)
	if !ok {
		return
	}

	if act.status == getalts.StatusWaitingForCode && act.code == 0 {
		act.polls++
		if act.polls >= s.codeDelay {
			act.code = 1000 + rand.Intn(9000)
			act.status = getalts.StatusOK
		}
	}

	resp := map[string]any{"status": act.status}
	if act.code != 0 {
		resp["code"] = act.code
	}
	writeJSON(w, resp)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	act, ok := s.lookup(w, r)
	if !ok {
		return
	}

	switch r.URL.Query().Get("status") {
	case "sms_sent":
		if act.status != getalts.StatusReady && act.status != getalts.StatusAccessReady {
			writeError(w, "wrong_status")
			return
		}
		act.status = getalts.StatusWaitingForCode
		act.polls = 0
	case "one_more_code":
		if act.code == 0 {
			writeError(w, "wrong_status")
			return
		}
		act.code = 0
		act.polls = 0
		act.status = getalts.StatusWaitingForCode
	case "cancel":
		// the real service rejects cancel once an SMS was requested
		if act.status != getalts.StatusReady && act.status != getalts.StatusAccessReady {
			writeError(w, "cannot_cancel")
			return
		}
		act.status = getalts.StatusCancelled
		s.balance += act.price
	case "already_used":
		if act.status == getalts.StatusCancelled {
			writeError(w, "wrong_status")
			return
		}
		act.status = getalts.StatusCancelled
		s.balance += act.price
	case "end":
		act.status = getalts.StatusOK
	default:
		writeError(w, "bad_status")
		return
	}

	resp := map[string]any{"status": act.status}
	if act.code != 0 {
		resp["code"] = act.code
	}
	writeJSON(w, resp)
}

// lookup resolves the activation_id query param. Callers must hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*activation, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("activation_id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "bad_activation_id")
		return nil, false
	}
	act, ok := s.acts[id]
	if !ok {
		writeError(w, "no_activation")
		return nil, false
	}
	return act, true
}

func parseCountry(w http.ResponseWriter, r *http.Request) (getalts.Country, bool) {
	c, err := getalts.ParseCountry(r.URL.Query().Get("country"))
	if err != nil {
		writeError(w, "bad_country")
		return "", false
	}
	return c, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ListenAndServe runs the mock API on addr until ctx is cancelled or
// the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
