package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"time"

	"ewintr.nl/yt2blog/session"
	"ewintr.nl/yt2blog/storage"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const SessionCookie = "yt2blog_session"

type stateKey struct{}

type Server struct {
	apis     map[string]http.Handler
	sessions storage.SessionRepository
	ttl      time.Duration
	logger   *slog.Logger
}

func NewServer(flow *session.Flow, sessions storage.SessionRepository, ttl time.Duration, logger *slog.Logger) *Server {
	return &Server{
		apis: map[string]http.Handler{
			"transcript": NewTranscriptAPI(flow, logger),
			"blog":       NewBlogAPI(flow, logger),
			"export":     NewExportAPI(flow, logger),
		},
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	originalPath := r.URL.Path
	rec := httptest.NewRecorder() // records the response to be able to mix writing headers and content

	w.Header().Add("Content-Type", "application/json")

	state, err := s.loadSession(r)
	if err != nil {
		s.logger.Error("could not load session", slog.String("error", err.Error()))
		Error(rec, http.StatusInternalServerError, "Could not load session.")
		returnResponse(w, rec)
		return
	}
	r = r.WithContext(context.WithValue(r.Context(), stateKey{}, state))

	// route to api
	head, tail := ShiftPath(r.URL.Path)
	switch api, ok := s.apis[head]; {
	case len(head) == 0:
		Index(rec)
	case !ok:
		Message(rec, http.StatusNotFound, "not found", fmt.Sprintf("%s is not a valid path", originalPath))
	default:
		r.URL.Path = tail
		api.ServeHTTP(rec, r)
	}

	if err := s.sessions.Save(r.Context(), state); err != nil {
		s.logger.Error("could not save session", slog.String("session", state.ID.String()), slog.String("error", err.Error()))
		rec = httptest.NewRecorder()
		Error(rec, http.StatusInternalServerError, "Could not save session.")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    state.ID.String(),
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	returnResponse(w, rec)
	s.logger.Info("request served", slog.String("method", r.Method), slog.String("path", originalPath), slog.Int("status", rec.Code), slog.String("session", state.ID.String()))
}

// loadSession returns the session from the cookie, or a new one if there is
// no valid cookie or the session expired.
func (s *Server) loadSession(r *http.Request) (*session.State, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return s.newSession(), nil
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return s.newSession(), nil
	}

	state, err := s.sessions.Find(r.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s.newSession(), nil
	case err != nil:
		return nil, err
	}

	return state, nil
}

func (s *Server) newSession() *session.State {
	state := session.NewState()
	s.logger.Info("new session created", slog.String("session", state.ID.String()))
	return state
}

func stateFrom(ctx context.Context) *session.State {
	state, _ := ctx.Value(stateKey{}).(*session.State)
	return state
}

func returnResponse(w http.ResponseWriter, rec *httptest.ResponseRecorder) {
	for k, v := range rec.Header() {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.Code)
	w.Write(rec.Body.Bytes())
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
// See https://blog.merovius.de/posts/2017-06-18-how-not-to-use-an-http-router/
func ShiftPath(p string) (string, string) {
	p = path.Clean("/" + p)

	// restore iri prefixes that might be mangled by path.Clean
	for k, v := range map[string]string{
		"http:/":  "http://",
		"https:/": "https://",
	} {
		p = strings.Replace(p, k, v, -1)
	}

	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}
