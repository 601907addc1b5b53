// Package session holds the state of one interactive probe: the API key, the
// fetched catalog, the selected model and the latest response. It is the
// presentation-side counterpart of the stateless clients in pkg/genlang.
package session

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/genlang"
	"github.com/agentstation/modelprobe/pkg/logging"
	"github.com/agentstation/modelprobe/pkg/models"
)

// ErrBusy is returned by Send while another send is in flight.
var ErrBusy = errors.New("a request is already in progress")

// State describes the catalog held by a Session.
type State int

const (
	// StateNotFetched means no catalog has been loaded for the current key.
	StateNotFetched State = iota
	// StateReady means at least one usable model was loaded.
	StateReady
	// StateNoneUsable means the catalog loaded but no model supports generation.
	StateNoneUsable
	// StateFailed means the last load failed.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateNoneUsable:
		return "none_usable"
	case StateFailed:
		return "failed"
	}
	return "not_fetched"
}

// Outcome is what the user sees after a send. Exactly one of Text, Empty or
// Message is meaningful.
type Outcome struct {
	Text    string
	Empty   bool
	Message string
	Result  *genlang.Result
}

// Failed reports whether the outcome describes an error.
func (o Outcome) Failed() bool {
	return o.Message != "" && !o.Empty
}

// Session is safe for concurrent use.
type Session struct {
	catalog   genlang.Catalog
	generator genlang.Generator
	group     singleflight.Group

	mu         sync.Mutex
	credential string
	epoch      uint64
	state      State
	models     []models.Descriptor
	selected   string
	catalogMsg string
	response   *Outcome
	sendErr    string
	busy       bool
}

// New creates a Session over the given clients.
func New(catalog genlang.Catalog, generator genlang.Generator) *Session {
	return &Session{catalog: catalog, generator: generator}
}

// SetCredential replaces the API key. A different key discards the loaded
// catalog and the selection.
func (s *Session) SetCredential(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key == s.credential {
		return
	}
	s.credential = key
	s.epoch++
	s.state = StateNotFetched
	s.models = nil
	s.selected = ""
	s.catalogMsg = ""
}

// HasCredential reports whether a non-empty key is set.
func (s *Session) HasCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential != ""
}

type loadResult struct {
	models []models.Descriptor
	err    error
}

// LoadModels fetches the catalog for the current key. Concurrent calls for
// the same key share one request. On success the first model is selected
// unless the current selection is still present. A caller whose context ends
// returns ctx.Err() and leaves the catalog state untouched.
func (s *Session) LoadModels(ctx context.Context) ([]models.Descriptor, error) {
	s.mu.Lock()
	credential, epoch := s.credential, s.epoch
	s.mu.Unlock()

	// The shared request outlives any one caller; each caller stops waiting
	// when its own context ends.
	ch := s.group.DoChan(strconv.FormatUint(epoch, 10), func() (any, error) {
		list, err := s.catalog.List(context.WithoutCancel(ctx), credential, "")
		return loadResult{models: list, err: err}, nil
	})

	var res loadResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		res = r.Val.(loadResult)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The key changed while the request was in flight.
	if epoch != s.epoch {
		return cloneAll(res.models), res.err
	}

	if res.err != nil {
		s.models = nil
		s.selected = ""
		s.catalogMsg = errors.Normalize(res.err)
		if errors.KindOf(res.err) == errors.KindNotFound {
			s.state = StateNoneUsable
		} else {
			s.state = StateFailed
		}
		logging.FromContext(ctx).Debug().Str("state", s.state.String()).Msg("catalog load failed")
		return nil, res.err
	}

	s.models = res.models
	s.state = StateReady
	s.catalogMsg = ""
	if _, ok := models.Find(s.models, s.selected); !ok {
		s.selected = s.models[0].Name
	}
	return cloneAll(s.models), nil
}

// State returns the catalog state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CatalogMessage returns the normalized message of the last failed load.
func (s *Session) CatalogMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogMsg
}

// Models returns a copy of the loaded models.
func (s *Session) Models() []models.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.models)
}

// Selected returns the selected model name, or "" when none is selected.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select chooses one of the loaded models by name or ID.
func (s *Session) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := models.Find(s.models, name)
	if !ok {
		return errors.NewValidationError("model", name, "not one of the loaded models")
	}
	s.selected = d.Name
	return nil
}

// Busy reports whether a send is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Send submits prompt to the selected model. It returns ErrBusy while
// another send is running. Provider and network failures are reported in
// Outcome.Message and do not replace the last successful response.
func (s *Session) Send(ctx context.Context, prompt string) (Outcome, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	if s.selected == "" {
		s.mu.Unlock()
		return Outcome{}, errors.NewValidationError("model", "", "no model selected")
	}
	s.busy = true
	credential, model := s.credential, s.selected
	s.mu.Unlock()

	result, err := s.generator.Generate(ctx, credential, model, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		s.sendErr = errors.Normalize(err)
		return Outcome{Message: s.sendErr}, err
	}

	outcome := Outcome{Result: result}
	if result.Empty() {
		outcome.Empty = true
		outcome.Message = result.Err().Error()
	} else {
		outcome.Text = result.Text
	}
	s.sendErr = ""
	s.response = &outcome
	return outcome, nil
}

// Response returns the last successful outcome.
func (s *Session) Response() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.response == nil {
		return Outcome{}, false
	}
	return *s.response, true
}

// SendError returns the normalized message of the last failed send, cleared
// by the next successful one.
func (s *Session) SendError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendErr
}

func cloneAll(descs []models.Descriptor) []models.Descriptor {
	if descs == nil {
		return nil
	}
	out := make([]models.Descriptor, len(descs))
	for i, d := range descs {
		out[i] = d.Clone()
	}
	return out
}
