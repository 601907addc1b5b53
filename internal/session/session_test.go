package session

import (
	"context"
	"net"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/genlang"
	"github.com/agentstation/modelprobe/pkg/models"
)

type fakeCatalog struct {
	calls   atomic.Int32
	gate    chan struct{}
	started chan context.Context
	keys    sync.Map
	list    func(credential string) ([]models.Descriptor, error)
}

func (f *fakeCatalog) List(ctx context.Context, credential, _ string) ([]models.Descriptor, error) {
	f.calls.Add(1)
	f.keys.Store(credential, true)
	if f.started != nil {
		f.started <- ctx
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.list(credential)
}

type fakeGenerator struct {
	gate    chan struct{}
	started chan struct{}
	model   string
	result  *genlang.Result
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, _, modelName, _ string) (*genlang.Result, error) {
	f.model = modelName
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.result, f.err
}

func twoModels(string) ([]models.Descriptor, error) {
	return []models.Descriptor{
		{Name: "models/alpha", DisplayName: "Alpha", SupportedGenerationMethods: []string{"generateContent"}},
		{Name: "models/beta", DisplayName: "Beta", SupportedGenerationMethods: []string{"generateContent"}},
	}, nil
}

func TestLoadModelsSelectsFirst(t *testing.T) {
	s := New(&fakeCatalog{list: twoModels}, &fakeGenerator{})
	s.SetCredential("key")

	assert.Equal(t, StateNotFetched, s.State())
	list, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	assert.Len(t, list, 2)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, "models/alpha", s.Selected())
}

func TestLoadModelsKeepsSelection(t *testing.T) {
	s := New(&fakeCatalog{list: twoModels}, &fakeGenerator{})
	s.SetCredential("key")
	_, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Select("beta"))
	_, err = s.LoadModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "models/beta", s.Selected())
}

func TestLoadModelsNoneUsable(t *testing.T) {
	catalog := &fakeCatalog{list: func(string) ([]models.Descriptor, error) {
		return nil, errors.NewNotFoundError(genlang.OperationListModels, "no models support capability generateContent")
	}}
	s := New(catalog, &fakeGenerator{})
	s.SetCredential("key")

	_, err := s.LoadModels(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateNoneUsable, s.State())
	assert.Equal(t, "no models support capability generateContent", s.CatalogMessage())
	assert.Empty(t, s.Selected())
}

func TestLoadModelsNetworkFailure(t *testing.T) {
	catalog := &fakeCatalog{list: func(string) ([]models.Descriptor, error) {
		return nil, errors.NewNetworkError(genlang.OperationListModels,
			&url.Error{Op: "Get", URL: "https://example.com", Err: &net.OpError{Op: "dial"}})
	}}
	s := New(catalog, &fakeGenerator{})
	s.SetCredential("key")

	_, err := s.LoadModels(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, constants.ErrMsgNetworkBlocked, s.CatalogMessage())
}

func TestLoadModelsCollapsesConcurrentCalls(t *testing.T) {
	catalog := &fakeCatalog{gate: make(chan struct{}), list: twoModels}
	s := New(catalog, &fakeGenerator{})
	s.SetCredential("key")

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.LoadModels(context.Background())
			errs <- err
		}()
	}

	// Wait for the one shared call to reach the catalog.
	require.Eventually(t, func() bool { return catalog.calls.Load() == 1 }, timeout, tick)
	close(catalog.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, catalog.calls.Load(), int32(n))
	assert.Equal(t, StateReady, s.State())
}

func TestLoadModelsSharedLoadSurvivesCallerCancel(t *testing.T) {
	catalog := &fakeCatalog{
		gate:    make(chan struct{}),
		started: make(chan context.Context, 2),
		list:    twoModels,
	}
	s := New(catalog, &fakeGenerator{})
	s.SetCredential("key")

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := s.LoadModels(ctx)
		firstErr <- err
	}()
	shared := <-catalog.started

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)
	assert.NoError(t, shared.Err(), "shared request must not inherit the caller's cancellation")
	assert.Equal(t, StateNotFetched, s.State())

	secondErr := make(chan error, 1)
	go func() {
		_, err := s.LoadModels(context.Background())
		secondErr <- err
	}()
	close(catalog.gate)

	require.NoError(t, <-secondErr)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, "models/alpha", s.Selected())
}

func TestSetCredentialResetsCatalog(t *testing.T) {
	catalog := &fakeCatalog{list: twoModels}
	s := New(catalog, &fakeGenerator{})
	s.SetCredential("key-1")
	_, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	s.SetCredential("key-1")
	assert.Equal(t, StateReady, s.State())

	s.SetCredential("key-2")
	assert.Equal(t, StateNotFetched, s.State())
	assert.Empty(t, s.Models())
	assert.Empty(t, s.Selected())

	_, err = s.LoadModels(context.Background())
	require.NoError(t, err)
	_, ok := catalog.keys.Load("key-2")
	assert.True(t, ok)
}

func TestSelectUnknownModel(t *testing.T) {
	s := New(&fakeCatalog{list: twoModels}, &fakeGenerator{})
	s.SetCredential("key")
	_, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	err = s.Select("models/gamma")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.Equal(t, "models/alpha", s.Selected())
}

func TestSendText(t *testing.T) {
	gen := &fakeGenerator{result: &genlang.Result{Text: "hello"}}
	s := New(&fakeCatalog{list: twoModels}, gen)
	s.SetCredential("key")
	_, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	out, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Text)
	assert.False(t, out.Failed())
	assert.Equal(t, "models/alpha", gen.model)
}

func TestSendWithoutSelection(t *testing.T) {
	s := New(&fakeCatalog{list: twoModels}, &fakeGenerator{})
	_, err := s.Send(context.Background(), "hi")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestSendEmptyResponse(t *testing.T) {
	gen := &fakeGenerator{result: &genlang.Result{FinishReason: "SAFETY"}}
	s := New(&fakeCatalog{list: twoModels}, gen)
	s.SetCredential("key")
	_, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	out, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.True(t, out.Empty)
	assert.False(t, out.Failed())
	assert.Contains(t, out.Message, "SAFETY")
}

func TestSendFailureKeepsResponse(t *testing.T) {
	gen := &fakeGenerator{result: &genlang.Result{Text: "first"}}
	s := New(&fakeCatalog{list: twoModels}, gen)
	s.SetCredential("key")
	_, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	_, err = s.Send(context.Background(), "hi")
	require.NoError(t, err)

	gen.result = nil
	gen.err = errors.FromAPIError(genlang.OperationGenerateContent, &errors.APIError{StatusCode: 429, Message: "quota exceeded"})

	out, err := s.Send(context.Background(), "again")
	require.Error(t, err)
	assert.True(t, out.Failed())
	assert.Equal(t, "quota exceeded", out.Message)
	assert.Equal(t, "quota exceeded", s.SendError())

	prev, ok := s.Response()
	require.True(t, ok)
	assert.Equal(t, "first", prev.Text)
}

func TestSendBusy(t *testing.T) {
	gen := &fakeGenerator{
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
		result:  &genlang.Result{Text: "done"},
	}
	s := New(&fakeCatalog{list: twoModels}, gen)
	s.SetCredential("key")
	_, err := s.LoadModels(context.Background())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "slow")
		done <- err
	}()
	<-gen.started

	assert.True(t, s.Busy())
	_, err = s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(gen.gate)
	require.NoError(t, <-done)
	assert.False(t, s.Busy())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not_fetched", StateNotFetched.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "none_usable", StateNoneUsable.String())
	assert.Equal(t, "failed", StateFailed.String())
}
