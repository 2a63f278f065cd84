package export

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/types"
)

// Engine runs the three serializers over one report.
type Engine struct {
	loader *Loader
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for timestamps and filenames.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine. The loader supplies the document library.
func NewEngine(loader *Loader, opts ...Option) *Engine {
	e := &Engine{loader: loader, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DocumentReady reports whether the document library has been loaded, so a
// PDF export will not wait on the first load.
func (e *Engine) DocumentReady() bool {
	return e.loader != nil && e.loader.Loaded()
}

// Export produces the artifact for format. A nil report or a failed library load
// yields an *UnavailableError and no artifact.
func (e *Engine) Export(ctx context.Context, r *types.Report, format Format) (*Artifact, error) {
	if r == nil {
		return nil, &UnavailableError{Format: format, Message: ErrNoReport}
	}

	now := e.now()
	var body []byte
	switch format {
	case FormatJSON:
		out, err := JSON(r)
		if err != nil {
			return nil, &UnavailableError{Format: format, Message: "could not serialize report", Cause: err}
		}
		body = out

	case FormatText:
		body = Text(r, now)

	case FormatPDF:
		if e.loader == nil {
			return nil, &UnavailableError{Format: format, Message: "document library not configured"}
		}
		lib, err := e.loader.Library(ctx)
		if err != nil {
			observability.Log.WithError(err).Warn("document library failed to load")
			return nil, &UnavailableError{Format: format, Message: "document library failed to load", Cause: err}
		}
		out, err := Document(lib.NewTypesetter(), r, now)
		if err != nil {
			return nil, &UnavailableError{Format: format, Message: "could not render document", Cause: err}
		}
		body = out

	default:
		return nil, &UnavailableError{Format: format, Message: "unsupported format"}
	}

	a := &Artifact{
		Format:      format,
		Filename:    Filename(format, now),
		ContentType: format.ContentType(),
		Body:        body,
	}
	observability.Log.WithFields(logrus.Fields{
		"format":   format,
		"filename": a.Filename,
		"bytes":    len(body),
	}).Info("report exported")
	return a, nil
}
