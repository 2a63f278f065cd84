package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	_, err := s.Get(ctx, ReportKey)
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`{"overall_credibility":78}`)
	require.NoError(t, s.Set(ctx, ReportKey, value))
	value[0] = 'X'

	got, err := s.Get(ctx, ReportKey)
	require.NoError(t, err)
	assert.Equal(t, `{"overall_credibility":78}`, string(got), "stored value is a copy")
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, ReportKey))
	_, err = s.Get(ctx, ReportKey)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, ReportKey))
}

func TestMemoryStore_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10 * time.Millisecond)
	require.NoError(t, s.Set(ctx, ReportKey, []byte("x")))

	time.Sleep(30 * time.Millisecond)
	_, err := s.Get(ctx, ReportKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScoped_IsolatesSessions(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore(time.Minute)
	a := Scoped(backend, "a")
	b := Scoped(backend, "b")

	require.NoError(t, a.Set(ctx, ReportKey, []byte("report-a")))

	_, err := b.Get(ctx, ReportKey)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := backend.Get(ctx, "a:"+ReportKey)
	require.NoError(t, err)
	assert.Equal(t, "report-a", string(got))

	require.NoError(t, a.Delete(ctx, ReportKey))
	assert.Equal(t, 0, backend.Len())
}

type fakeRedis struct {
	values  map[string][]byte
	ttls    map[string]time.Duration
	failErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failErr != nil {
		return redis.NewStringResult("", f.failErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.failErr != nil {
		return redis.NewStatusResult("", f.failErr)
	}
	f.values[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	n := int64(0)
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, f.failErr)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	s := newRedisStore(fake, 30*time.Minute)

	_, err := s.Get(ctx, ReportKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, ReportKey, []byte("payload")))
	assert.Equal(t, 30*time.Minute, fake.ttls[KeyPrefix+ReportKey])

	got, err := s.Get(ctx, ReportKey)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	require.NoError(t, s.Delete(ctx, ReportKey))
	_, err = s.Get(ctx, ReportKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.failErr = errors.New("connection refused")
	s := newRedisStore(fake, time.Minute)

	_, err := s.Get(ctx, ReportKey)
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Error(t, s.Set(ctx, ReportKey, []byte("x")))
	assert.Error(t, s.Delete(ctx, ReportKey))
}
