// Package session stores the submitted report for the lifetime of one browsing session.
package session

import (
	"context"
	"errors"
)

// ReportKey is the fixed key the serialized report is stored under.
const ReportKey = "credibility_report"

// ErrNotFound is returned by Get when a key holds no value.
var ErrNotFound = errors.New("session: key not found")

// Store is session-lifetime key/value storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type scoped struct {
	backend Store
	prefix  string
}

// Scoped namespaces every key of backend under one session id.
func Scoped(backend Store, id string) Store {
	return &scoped{backend: backend, prefix: id + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.backend.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.backend.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.prefix+key)
}
