// Package page is the results view: one report, its projection, one modal, one
// pair of menus and the export actions, all driven from user events.
package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/credibility-report/internal/export"
	"github.com/jonathan/credibility-report/internal/menu"
	"github.com/jonathan/credibility-report/internal/modal"
	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/report"
	"github.com/jonathan/credibility-report/internal/session"
	"github.com/jonathan/credibility-report/internal/types"
	"github.com/jonathan/credibility-report/internal/view"
)

// Deps are the collaborators of a results view.
type Deps struct {
	Engine    *export.Engine
	Scheduler modal.Scheduler
	Deliverer export.Deliverer
}

// Page owns the state of one results view.
type Page struct {
	store     session.Store
	engine    *export.Engine
	deliverer export.Deliverer
	modal     *modal.Controller
	menus     *menu.Controller

	mu     sync.Mutex
	raw    []byte
	report *types.Report
	state  view.State
}

// Load reads the report once from the session store. A missing or undecodable
// report yields a *RedirectError to the submission view.
func Load(ctx context.Context, store session.Store, deps Deps) (*Page, error) {
	raw, err := store.Get(ctx, session.ReportKey)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return nil, fmt.Errorf("failed to read report from session: %w", err)
	}

	r, err := report.Parse(raw)
	if err != nil {
		observability.Log.WithFields(logrus.Fields{"reason": err.Error()}).Info("no report to show, redirecting")
		return nil, &RedirectError{To: SubmissionPath, Cause: err}
	}

	if deps.Engine == nil {
		deps.Engine = export.NewEngine(nil)
	}
	state := view.Project(r)
	logDowngradedLinks(state.Articles)

	return &Page{
		store:     store,
		engine:    deps.Engine,
		deliverer: deps.Deliverer,
		modal:     modal.NewController(deps.Scheduler),
		menus:     menu.New(),
		raw:       r.Raw(),
		report:    r,
		state:     state,
	}, nil
}

func logDowngradedLinks(articles []view.Article) {
	for _, a := range articles {
		if a.LinkDowngraded {
			observability.Log.WithField("url", a.URL).Debug("recommended article link did not parse")
		}
	}
}

// View returns the projected render state.
func (p *Page) View() view.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Report returns the loaded report.
func (p *Page) Report() *types.Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.report
}

// Select opens the modal for a rendered card. Categories without a card or
// without an explanation are a no-op and report false.
func (p *Page) Select(category types.Category) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	card, ok := p.state.Card(category)
	if !ok {
		return false
	}
	return p.modal.Select(p.report, card)
}

// Dismiss closes the modal.
func (p *Page) Dismiss(reason modal.Reason) bool {
	return p.modal.Dismiss(reason)
}

// Modal returns the modal state.
func (p *Page) Modal() modal.Snapshot {
	return p.modal.Snapshot()
}

// SubscribeModal registers fn for animation frames.
func (p *Page) SubscribeModal(fn func(modal.Frame)) func() {
	return p.modal.Subscribe(fn)
}

// Menus returns the menu state.
func (p *Page) Menus() menu.State {
	return p.menus.State()
}

// ToggleExportMenu opens or closes the export options.
func (p *Page) ToggleExportMenu() menu.State {
	return p.menus.Toggle(menu.GroupExport)
}

// ToggleShareMenu opens or closes the share options.
func (p *Page) ToggleShareMenu() menu.State {
	return p.menus.Toggle(menu.GroupShare)
}

// ClickOutside handles an interaction outside both menus.
func (p *Page) ClickOutside() menu.State {
	p.menus.ClickOutside()
	return p.menus.State()
}

// ChooseExport runs the export for an item of the export menu, closing the menu
// when it is open. API callers may export without opening the menu first; the
// menu state is then left unchanged. The report is re-read from the session so
// an expired session yields an error notice.
func (p *Page) ChooseExport(ctx context.Context, format export.Format) (*export.Artifact, export.Notice) {
	if _, fromMenu := p.menus.Choose(menu.GroupExport, string(format)); !fromMenu {
		observability.Log.WithField("format", format).Debug("export requested without the export menu")
	}

	r := p.current(ctx)
	a, err := p.engine.Export(ctx, r, format)
	return a, export.NoticeFor(a, err)
}

// ChooseShare builds the payload for kind, closing the share menu when it is
// open. As with ChooseExport, API callers may bypass the menu. When the page
// has a delivery target the payload is handed to it.
func (p *Page) ChooseShare(ctx context.Context, kind export.ShareKind, pageURL string) (export.SharePayload, export.Notice) {
	if _, fromMenu := p.menus.Choose(menu.GroupShare, string(kind)); !fromMenu {
		observability.Log.WithField("kind", kind).Debug("share requested without the share menu")
	}

	payload, err := export.Share(p.current(ctx), kind, pageURL)
	if err != nil {
		return export.SharePayload{}, export.Notice{Severity: export.SeverityError, Message: err.Error()}
	}

	if p.deliverer.Native == nil && p.deliverer.Clipboard == nil {
		return payload, export.Notice{Severity: export.SeveritySuccess, Message: "Share text ready"}
	}
	method, err := p.deliverer.Deliver(ctx, payload)
	if err != nil {
		return payload, export.Notice{Severity: export.SeverityError, Message: err.Error()}
	}
	if method == export.DeliveredClipboard {
		return payload, export.Notice{Severity: export.SeveritySuccess, Message: "Copied to clipboard"}
	}
	return payload, export.Notice{Severity: export.SeveritySuccess, Message: "Shared"}
}

// current returns the report as persisted now, or nil when the session no longer holds one.
func (p *Page) current(ctx context.Context) *types.Report {
	raw, err := p.store.Get(ctx, session.ReportKey)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			observability.Log.WithError(err).Warn("failed to re-read report from session")
		}
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if bytes.Equal(bytes.TrimSpace(raw), p.raw) {
		return p.report
	}
	r, err := report.Parse(raw)
	if err != nil {
		return nil
	}
	return r
}
