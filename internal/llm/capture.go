package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// failure holds the status and raw body of a non-2xx provider answer.
type failure struct {
	status int
	body   []byte
}

func (f *failure) captured() bool {
	return f != nil && f.status != 0
}

func (f *failure) apiError(err error) *APIError {
	return &APIError{StatusCode: f.status, Body: string(f.body), Err: err}
}

type failureKey struct{}

// captureFailure returns a context whose requests record failed responses
// into the returned slot when sent through a captureTransport.
func captureFailure(ctx context.Context) (context.Context, *failure) {
	f := &failure{}
	return context.WithValue(ctx, failureKey{}, f), f
}

// captureTransport buffers the body of failed responses so the provider SDK
// can still decode it while the caller keeps the exact bytes.
type captureTransport struct {
	next http.RoundTripper
}

func (t captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || (resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusBadRequest) {
		return resp, err
	}

	f, ok := req.Context().Value(failureKey{}).(*failure)
	if !ok {
		return resp, nil
	}

	// A short read still yields whatever arrived; the SDK reports its own decode error.
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	f.status = resp.StatusCode
	f.body = body
	return resp, nil
}

// captureClient copies c with its transport wrapped by captureTransport.
func captureClient(c *http.Client) *http.Client {
	if c == nil {
		c = &http.Client{}
	}
	cp := *c
	next := cp.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	cp.Transport = captureTransport{next: next}
	return &cp
}
