package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/legacyvault/internal/common"
	"github.com/google/uuid"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// rawResponse is what a round trip produced when the server did answer.
type rawResponse struct {
	status int
	body   []byte
}

func (r *rawResponse) ok() bool {
	return r.status >= 200 && r.status < 300
}

type requester struct {
	baseURL string
	http    *http.Client
}

func newRequester(baseURL string, timeout time.Duration) requester {
	return requester{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do performs one JSON round trip. The only error it returns is a transport
// *Error; HTTP failure statuses are left for the caller to interpret.
func (r requester) do(ctx context.Context, method, path string, query url.Values, body any, header http.Header) (*rawResponse, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindDecode, Message: "Could not encode request.", Err: err}
		}
		reader = bytes.NewReader(b)
	}

	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, transportError(err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(err)
	}

	return &rawResponse{status: resp.StatusCode, body: data}, nil
}

// serverMessage pulls a human-readable message out of an error body.
// Both the auth API ({"message": ...}) and PostgREST ({"message": ..., "hint": ...})
// use the same field.
func serverMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}
