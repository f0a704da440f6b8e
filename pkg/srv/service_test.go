package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	name    string
	mu      *sync.Mutex
	order   *[]string
	started chan struct{}
	err     error
}

func (s *recordingService) Start(ctx context.Context) error {
	close(s.started)
	return nil
}

func (s *recordingService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	*s.order = append(*s.order, s.name)
	return s.err
}

func TestServices_StartAndShutdownInReverse(t *testing.T) {
	var mu sync.Mutex
	var order []string

	newSvc := func(name string, err error) *recordingService {
		return &recordingService{name: name, mu: &mu, order: &order, started: make(chan struct{}), err: err}
	}
	a, b, c := newSvc("storage", nil), newSvc("web", errors.New("still logged")), newSvc("cli", nil)
	services := []Service{a, b, c}

	ctx, cancel := context.WithCancel(context.Background())
	StartServices(ctx, services)

	for _, s := range []*recordingService{a, b, c} {
		select {
		case <-s.started:
		case <-time.After(time.Second):
			t.Fatalf("%s did not start", s.name)
		}
	}

	cancel()
	ShutdownServices(ctx, services)

	require.Len(t, order, 3)
	assert.Equal(t, []string{"cli", "web", "storage"}, order)
}

func TestCleanup(t *testing.T) {
	called := false
	svc := NewCleanup("db", func() error {
		called = true
		return nil
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	require.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)

	assert.NoError(t, NewCleanup("noop", nil).Shutdown(context.Background()))
}
