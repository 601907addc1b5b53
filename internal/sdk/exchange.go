package sdk

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/agentstation/modelprobe/pkg/logging"
)

// exchange is the RoundTripper of one genai client. genai rebuilds API
// errors from the response body alone, dropping the HTTP status when the
// body has no error.code, so the last failed response is kept here and
// classified the same way the REST clients classify theirs.
type exchange struct {
	base http.RoundTripper

	mu     sync.Mutex
	status int
	body   []byte
}

func newExchange(hc *http.Client) (*exchange, *http.Client) {
	client := &http.Client{}
	if hc != nil {
		*client = *hc
	}

	ex := &exchange{base: client.Transport}
	if ex.base == nil {
		ex.base = http.DefaultTransport
	}
	client.Transport = ex
	return ex, client
}

// RoundTrip implements http.RoundTripper.
func (e *exchange) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := e.base.RoundTrip(req)

	event := logging.FromContext(req.Context()).Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))

	e.mu.Lock()
	defer e.mu.Unlock()
	e.status, e.body = 0, nil

	if err != nil {
		event.Err(err).Msg("provider request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("provider request")

	e.status = resp.StatusCode
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		e.body = body
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}
	return resp, nil
}

// failure returns the status and body of the last response when it was not
// a 2xx, and a zero status otherwise.
func (e *exchange) failure() (int, []byte) {
	if e == nil {
		return 0, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status >= http.StatusOK && e.status < http.StatusMultipleChoices {
		return 0, nil
	}
	return e.status, e.body
}

// guard runs fn and turns a panic inside the SDK into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("genai: %v", r)
		}
	}()
	return fn()
}
