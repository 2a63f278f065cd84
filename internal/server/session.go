package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/credibility-report/internal/page"
	"github.com/jonathan/credibility-report/internal/session"
)

// SessionCookie carries the browsing-session id.
const SessionCookie = "credview_session"

// sessionID returns the caller's session id, issuing a new cookie when it is
// missing or not a UUID.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) sessionStore(id string) session.Store {
	return session.Scoped(s.store, id)
}

// loadPage returns the results view for a session, loading it from the session
// store on first use.
func (s *Server) loadPage(ctx context.Context, id string) (*page.Page, error) {
	if cached, ok := s.pages.Get(id); ok {
		return cached.(*page.Page), nil
	}

	p, err := page.Load(ctx, s.sessionStore(id), page.Deps{
		Engine:    s.engine,
		Scheduler: s.scheduler,
	})
	if err != nil {
		return nil, err
	}

	if err := s.pages.Add(id, p, 0); err != nil {
		if cached, ok := s.pages.Get(id); ok {
			return cached.(*page.Page), nil
		}
	}
	return p, nil
}

// resetPage drops the cached view so the next request reads the new report.
func (s *Server) resetPage(id string) {
	s.pages.Delete(id)
}
