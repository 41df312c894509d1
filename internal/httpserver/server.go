// internal/httpserver/server.go
//
// HTTP front end for the guessing game.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, access log, JSON, CORS).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Round endpoints: POST /game/new (public), and behind a session token
//     POST /game/guess, POST /game/reset, GET /game/state, DELETE /game.
//   - Idle round pruning while the server runs.
//
// Notes:
//   - Each round is single-player; the store serialises access to it.
//   - Rejected guesses are normal outcomes: 422 with the outcome body.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/guessnum/internal/config"
	"github.com/robalobadob/guessnum/internal/game"
	"github.com/robalobadob/guessnum/internal/metrics"
	"github.com/robalobadob/guessnum/internal/score"
	"github.com/robalobadob/guessnum/internal/store"
	"github.com/robalobadob/guessnum/internal/validate"
)

// pruneEvery is how often idle rounds are swept.
const pruneEvery = time.Minute

// Server bundles router, session store, token issuer and metrics.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	store    store.Store
	sessions *Sessions
	metrics  *metrics.Metrics

	lang     language.Tag
	val      *validate.Validator
	gameOpts []game.Option
}

// New constructs a Server, installs middleware, and registers routes.
// m may be nil to run without metrics.
func New(cfg config.Config, st store.Store, m *metrics.Metrics) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		store:    st,
		sessions: NewSessions(cfg),
		metrics:  m,
		lang:     cfg.Language(),
		val:      validate.New(cfg.Language()),
		gameOpts: cfg.GameOptions(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "guessnum",
			"endpoints": []string{"/health", "/metrics", "POST /game/new", "POST /game/guess", "POST /game/reset", "GET /game/state", "DELETE /game"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", m.Handler())

	// --- rounds ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireRound())
		r.Post("/game/guess", s.handleGuess)
		r.Post("/game/reset", s.handleReset)
		r.Get("/game/state", s.handleState)
		r.Delete("/game", s.handleAbandon)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.pruneLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// pruneLoop drops rounds idle longer than the session TTL; their tokens have expired anyway.
func (s *Server) pruneLoop(ctx context.Context) {
	t := time.NewTicker(pruneEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.prune(ctx, now)
		}
	}
}

func (s *Server) prune(ctx context.Context, now time.Time) {
	if n := s.store.Prune(ctx, now.Add(-s.cfg.SessionTTL)); n > 0 {
		log.Debug().Int("pruned", n).Msg("pruned idle rounds")
	}
	s.metrics.SetActive(s.store.Len())
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one line per request through the request-scoped logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ ROUNDS -------------------------------------

// newGameReq carries the optional range as raw form fields.
type newGameReq struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type newGameRes struct {
	GameID    string     `json:"gameId"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	State     game.State `json:"state"`
}

// rejection is the body of a 422 for a refused range.
type rejection struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// handleNewGame starts a round, stores it and hands back a session token.
// Blank min/max use the configured range; anything else goes through the range validator.
// A round already bound to the caller's token is discarded.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	min, max := s.cfg.MinRange, s.cfg.MaxRange
	if req.Min != "" || req.Max != "" {
		rr := s.val.Range(req.Min, req.Max)
		if !rr.Valid {
			writeJSON(w, http.StatusUnprocessableEntity, rejection{Reason: rr.Reason.String(), Message: rr.Message})
			return
		}
		min, max = rr.Min, rr.Max
	}

	g, err := game.New(min, max, s.gameOpts...)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, rejection{Reason: "invalid_range", Message: err.Error()})
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	if old, err := s.sessions.FromRequest(r); err == nil {
		if oldID, err := s.sessions.Parse(old); err == nil {
			_ = s.store.Delete(r.Context(), oldID)
		}
	}

	tok, exp, err := s.sessions.Issue(g.ID())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("issue session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.sessions.SetCookie(w, tok, exp)
	s.metrics.RoundStarted()
	s.metrics.SetActive(s.store.Len())

	hlog.FromRequest(r).Info().Str("gameId", g.ID()).Int("min", min).Int("max", max).Msg("round started")
	writeJSON(w, http.StatusCreated, newGameRes{GameID: g.ID(), Token: tok, ExpiresAt: exp, State: g.State()})
}

type guessReq struct {
	Guess string `json:"guess"`
}

// guessRes is the outcome plus display helpers.
type guessRes struct {
	game.Outcome
	Statistics string `json:"statistics,omitempty"`
	Score      *int   `json:"score,omitempty"`
}

// handleGuess applies a guess to the caller's round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var res guessRes
	err := s.store.Update(r.Context(), roundID(r.Context()), func(g *game.Game) error {
		res.Outcome = g.MakeGuess(req.Guess)
		if !res.Outcome.Valid {
			return nil
		}
		secret, _ := g.State().Secret.Value()
		res.Statistics = score.FormatStatisticsIn(s.lang, res.Attempts, secret, res.Status)
		if res.Status == game.StatusWin {
			sc := score.Calculate(res.Attempts, s.cfg.MaxAttempts)
			res.Score = &sc
		}
		return nil
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.metrics.ObserveGuess(res.Outcome)

	if !res.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	if res.Status == game.StatusWin {
		hlog.FromRequest(r).Info().Str("gameId", roundID(r.Context())).Int("attempts", res.Attempts).Msg("round won")
	}
	writeJSON(w, http.StatusOK, res)
}

// handleReset draws a new secret for the caller's round.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var st game.State
	err := s.store.Update(r.Context(), roundID(r.Context()), func(g *game.Game) error {
		g.Reset()
		st = g.State()
		return nil
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.metrics.RoundStarted()
	writeJSON(w, http.StatusOK, st)
}

// handleState returns the caller's round snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var st game.State
	err := s.store.Update(r.Context(), roundID(r.Context()), func(g *game.Game) error {
		st = g.State()
		return nil
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleAbandon drops the caller's round and clears the cookie.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), roundID(r.Context())); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.sessions.ClearCookie(w)
	s.metrics.SetActive(s.store.Len())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	hlog.FromRequest(r).Error().Err(err).Msg("store")
	writeError(w, http.StatusInternalServerError, "store_failed")
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
