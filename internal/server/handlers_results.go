package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/credibility-report/internal/export"
	"github.com/jonathan/credibility-report/internal/menu"
	"github.com/jonathan/credibility-report/internal/modal"
	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/page"
	"github.com/jonathan/credibility-report/internal/types"
	"github.com/jonathan/credibility-report/internal/view"
)

// ResultsResponse is the full state of a results view.
type ResultsResponse struct {
	View  view.State     `json:"view"`
	Modal modal.Snapshot `json:"modal"`
	Menus menu.State     `json:"menus"`
}

// SelectRequest opens the modal for a category.
type SelectRequest struct {
	Category string `json:"category"`
}

// DismissRequest closes the modal.
type DismissRequest struct {
	Reason string `json:"reason"`
}

// MenuRequest is one menu interaction.
type MenuRequest struct {
	Action string `json:"action"`
}

// Menu actions
const (
	MenuToggleExport = "toggle_export"
	MenuToggleShare  = "toggle_share"
	MenuOutside      = "outside"
)

// NoticeResponse reports the outcome of an export or share.
type NoticeResponse struct {
	Notice export.Notice `json:"notice"`
}

// ShareResponse carries a share payload and its notice.
type ShareResponse struct {
	Share  export.SharePayload `json:"share"`
	Notice export.Notice       `json:"notice"`
}

// withPage resolves the session's results view, answering with a redirect when
// there is no report to show.
func (s *Server) withPage(w http.ResponseWriter, r *http.Request) (*page.Page, bool) {
	id := s.sessionID(w, r)
	p, err := s.loadPage(r.Context(), id)
	if err == nil {
		return p, true
	}

	var redirect *page.RedirectError
	if errors.As(err, &redirect) {
		w.Header().Set("Location", redirect.To)
		s.jsonResponse(w, http.StatusSeeOther, map[string]string{"redirect": redirect.To})
		return nil, false
	}

	observability.Log.WithError(err).Error("failed to load results view")
	s.errorResponse(w, http.StatusInternalServerError, "Failed to load results")
	return nil, false
}

func (s *Server) resultsResponse(p *page.Page) ResultsResponse {
	return ResultsResponse{View: p.View(), Modal: p.Modal(), Menus: p.Menus()}
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	p, ok := s.withPage(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.resultsResponse(p))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	p, ok := s.withPage(w, r)
	if !ok {
		return
	}

	var req SelectRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	category, known := types.ParseCategory(req.Category)
	if !known {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown category %q", req.Category))
		return
	}

	opened := p.Select(category)
	s.jsonResponse(w, http.StatusOK, map[string]any{"opened": opened, "modal": p.Modal()})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	p, ok := s.withPage(w, r)
	if !ok {
		return
	}

	req := DismissRequest{Reason: string(modal.ReasonCloseButton)}
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	reason, known := modal.ParseReason(req.Reason)
	if !known {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown dismiss reason %q", req.Reason))
		return
	}

	closed := p.Dismiss(reason)
	s.jsonResponse(w, http.StatusOK, map[string]any{"closed": closed, "modal": p.Modal()})
}

// handleModalStream streams the modal state and animation frames until the client disconnects.
func (s *Server) handleModalStream(w http.ResponseWriter, r *http.Request) {
	p, ok := s.withPage(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	frames := make(chan modal.Frame, 64)
	unsubscribe := p.SubscribeModal(func(f modal.Frame) {
		select {
		case frames <- f:
		default:
			// Slow reader; it will still see the final frame or the next snapshot.
		}
	})
	defer unsubscribe()

	if err := sse.WriteEvent("modal", p.Modal()); err != nil {
		streamFailed(sse, err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case f := <-frames:
			if err := sse.WriteEvent("frame", f); err != nil {
				streamFailed(sse, err)
				return
			}
		}
	}
}

// streamFailed ends a modal stream. Encoding failures are reported to the
// client as an error event; write failures mean the client is gone.
func streamFailed(sse *SSEWriter, err error) {
	if !errors.Is(err, errEncode) {
		observability.Log.WithError(err).Debug("modal stream closed")
		return
	}
	observability.Log.WithError(err).Error("modal stream event could not be encoded")
	sse.WriteError("Failed to encode modal state")
}

func (s *Server) handleMenus(w http.ResponseWriter, r *http.Request) {
	p, ok := s.withPage(w, r)
	if !ok {
		return
	}

	var req MenuRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var state menu.State
	switch req.Action {
	case MenuToggleExport:
		state = p.ToggleExportMenu()
	case MenuToggleShare:
		state = p.ToggleShareMenu()
	case MenuOutside:
		state = p.ClickOutside()
	default:
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown menu action %q", req.Action))
		return
	}
	s.jsonResponse(w, http.StatusOK, state)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := s.withPage(w, r)
	if !ok {
		return
	}

	artifact, notice := p.ChooseExport(r.Context(), format)
	if artifact == nil {
		s.jsonResponse(w, http.StatusConflict, NoticeResponse{Notice: notice})
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("X-Export-Notice", notice.Message)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Body); err != nil {
		observability.Log.WithError(err).Warn("failed to write export")
	}
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	kind, err := export.ParseShareKind(r.PathValue("kind"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := s.withPage(w, r)
	if !ok {
		return
	}

	pageURL := r.URL.Query().Get("page_url")
	if pageURL == "" {
		pageURL = resultsURL(r)
	}

	payload, notice := p.ChooseShare(r.Context(), kind, pageURL)
	status := http.StatusOK
	if notice.Severity == export.SeverityError {
		status = http.StatusConflict
	}
	s.jsonResponse(w, status, ShareResponse{Share: payload, Notice: notice})
}

// resultsURL is the public address of the results view as seen by the client.
func resultsURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host + ResultsPath
}
