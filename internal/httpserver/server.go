// internal/httpserver/server.go
//
// HTTP server wiring for the word scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     zerolog access logs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, and token-gated GET /game/{id},
//     POST /game/{id}/words, POST /game/{id}/restart.
//
// Notes:
//   - Games are held in the session store only; nothing is persisted.
//   - Read-modify-write of a game happens under s.mu, so each game sees one
//     submission at a time.
//   - Rejected words are a normal outcome (422), not a server error.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Options configures a Server.
type Options struct {
	Roots        words.List
	Validator    *game.Validator
	Store        store.Store
	TokenSecret  string
	TokenTTL     time.Duration
	ClientOrigin string
	SecureCookie bool
	Logger       *zerolog.Logger // defaults to the global logger
}

// Server bundles the router, session store, and game rules.
type Server struct {
	r         *chi.Mux
	roots     words.List
	validator *game.Validator
	store     store.Store
	tokens    *tokenIssuer
	secure    bool
	mu        sync.Mutex // serialises game read-modify-write
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	logger := log.Logger
	if o.Logger != nil {
		logger = *o.Logger
	}
	ttl := o.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	origin := o.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}

	s := &Server{
		r:         chi.NewRouter(),
		roots:     o.Roots,
		validator: o.Validator,
		store:     o.Store,
		tokens:    &tokenIssuer{secret: []byte(o.TokenSecret), ttl: ttl, now: time.Now},
		secure:    o.SecureCookie,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(origin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordscramble-go",
			"endpoints": []string{
				"/health", "POST /game/new", "GET /game/{id}",
				"POST /game/{id}/words", "POST /game/{id}/restart",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"roots": s.roots.Len()})
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGameToken)
		r.Get("/", s.handleGetGame)
		r.Post("/words", s.handleSubmitWord)
		r.Post("/restart", s.handleRestart)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// logFor returns the request-scoped logger.
func logFor(r *http.Request) *zerolog.Logger { return hlog.FromRequest(r) }

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
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// stateRes is the client view of a game.
type stateRes struct {
	GameID    string   `json:"gameId"`
	RootWord  string   `json:"rootWord"`
	UsedWords []string `json:"usedWords"`
	Score     int      `json:"score"`
}

func toState(g *game.Game) stateRes {
	used := g.UsedWords
	if used == nil {
		used = []string{}
	}
	return stateRes{GameID: g.ID, RootWord: g.RootWord, UsedWords: used, Score: g.Score}
}

// ------------------------------ GAME ---------------------------------------

type newGameRes struct {
	stateRes
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleNewGame starts a game, stores it, and issues its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := game.Start(s.roots)
	if err := s.store.Save(r.Context(), g); err != nil {
		logFor(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.sign(g.ID)
	if err != nil {
		logFor(r).Error().Err(err).Str("gameId", g.ID).Msg("sign game token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	setGameCookie(w, g.ID, tok, exp, s.secure)
	logFor(r).Info().Str("gameId", g.ID).Str("root", g.RootWord).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{stateRes: toState(g), Token: tok, ExpiresAt: exp})
}

// loadGame fetches the game named in the request, writing 404/500 on failure.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.store.Get(r.Context(), gameIDFrom(r))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		logFor(r).Error().Err(err).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return g, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toState(g))
}

type submitReq struct {
	Word string `json:"word"`
}

type submitRes struct {
	stateRes
	Accepted bool `json:"accepted"`
}

type validationRes struct {
	Error struct {
		Kind    game.Kind `json:"kind"`
		Title   string    `json:"title"`
		Message string    `json:"message"`
	} `json:"error"`
}

// handleSubmitWord runs a submission through the validator.
//   - 200 with accepted=true and the new state when the word scores.
//   - 200 with accepted=false and the unchanged state for blank input.
//   - 422 with the validation error otherwise.
func (s *Server) handleSubmitWord(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	next, err := s.validator.SubmitWord(r.Context(), g, req.Word)
	var ve *game.ValidationError
	switch {
	case errors.As(err, &ve):
		logFor(r).Debug().Str("gameId", g.ID).Str("kind", string(ve.Kind)).Msg("word rejected")
		var res validationRes
		res.Error.Kind, res.Error.Title, res.Error.Message = ve.Kind, ve.Title, ve.Message
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	case err != nil:
		logFor(r).Error().Err(err).Str("gameId", g.ID).Msg("submit word")
		writeError(w, http.StatusInternalServerError, "dictionary_unavailable")
		return
	}

	accepted := next != g
	if accepted {
		if err := s.store.Save(r.Context(), next); err != nil {
			logFor(r).Error().Err(err).Str("gameId", g.ID).Msg("save game")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
	}
	writeJSON(w, http.StatusOK, submitRes{stateRes: toState(next), Accepted: accepted})
}

// handleRestart replaces the game with a fresh one under the same ID.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	next := game.Restart(g, s.roots)
	if err := s.store.Save(r.Context(), next); err != nil {
		logFor(r).Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	logFor(r).Info().Str("gameId", g.ID).Str("root", next.RootWord).Msg("game restarted")
	writeJSON(w, http.StatusOK, toState(next))
}
