package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/credibility-report/internal/observability"
)

// Library creates typesetters for the document export.
type Library interface {
	NewTypesetter() Typesetter
}

// LoadFunc performs the one-time library load.
type LoadFunc func(ctx context.Context) (Library, error)

// Loader memoizes a Library. Concurrent callers share a single in-flight load; a
// successful result is kept for the life of the loader and a failure is returned
// to every waiting caller without being cached.
type Loader struct {
	load  LoadFunc
	group singleflight.Group

	mu  sync.RWMutex
	lib Library
}

// NewLoader wraps load.
func NewLoader(load LoadFunc) *Loader {
	return &Loader{load: load}
}

// Library returns the loaded library, loading it on first use.
func (l *Loader) Library(ctx context.Context) (Library, error) {
	l.mu.RLock()
	lib := l.lib
	l.mu.RUnlock()
	if lib != nil {
		return lib, nil
	}

	ch := l.group.DoChan("library", func() (interface{}, error) {
		l.mu.RLock()
		cached := l.lib
		l.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		loaded, err := l.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.lib = loaded
		l.mu.Unlock()
		return loaded, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Library), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Loaded reports whether the library is ready.
func (l *Loader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lib != nil
}

// FontLoader returns a LoadFunc for the fpdf library. When fontURL is set, a TTF
// font is fetched from it and registered with every typesetter.
func FontLoader(client *http.Client, fontURL string) LoadFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) (Library, error) {
		if fontURL == "" {
			return &fpdfLibrary{}, nil
		}

		log := observability.Log.WithFields(logrus.Fields{"url": fontURL})
		log.Info("fetching document font")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fontURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build font request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch font: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch font: unexpected status %d", resp.StatusCode)
		}
		font, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		if len(font) == 0 {
			return nil, fmt.Errorf("failed to fetch font: empty body")
		}

		log.WithField("bytes", len(font)).Info("document font loaded")
		return &fpdfLibrary{font: font}, nil
	}
}
