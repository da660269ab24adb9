package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/canonical/ratings/auth"
	"github.com/canonical/ratings/store"
)

type fakeCatalog struct {
	mu    sync.Mutex
	names map[string]string
	err   error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{names: make(map[string]string)}
}

func (f *fakeCatalog) DisplayName(_ context.Context, snapID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if name, ok := f.names[snapID]; ok {
		return name, nil
	}
	return snapID + "-display-name", nil
}

type fakeCoordinator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeCoordinator) EnsureCategoriesAsync(snapID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, snapID)
}

func (f *fakeCoordinator) calledWith() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func newTestDeps() (Deps, *store.Memory, *fakeCatalog, *fakeCoordinator) {
	mem := store.NewMemory()
	cat := newFakeCatalog()
	coord := &fakeCoordinator{}

	return Deps{
		Store:       mem,
		Codec:       auth.NewCodec([]byte("test-signing-key")),
		Coordinator: coord,
		Catalog:     cat,
		Caches:      NewDisabledResponseCaches(),
	}, mem, cat, coord
}

// claimContext runs a freshly issued token through the real
// authentication interceptor and captures the context it hands the
// wrapped handler, so tests exercise the same attachment path
// production traffic does instead of poking unexported state.
func claimContext(t *testing.T, codec *auth.Codec, clientHash string) context.Context {
	t.Helper()

	token, err := codec.Issue(clientHash)
	require.NoError(t, err)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	info := &grpc.UnaryServerInfo{FullMethod: "/ratings.User/Vote"}

	var captured context.Context
	_, err = auth.UnaryServerInterceptor(codec)(ctx, nil, info, func(ctx context.Context, _ interface{}) (interface{}, error) {
		captured = ctx
		return nil, nil
	})
	require.NoError(t, err)

	return captured
}

func statusCode(t *testing.T, err error) codes.Code {
	t.Helper()
	require.Error(t, err)
	return status.Convert(err).Code()
}
