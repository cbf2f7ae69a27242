package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"adcopy_studio_v1/internal/apperr"
)

func newTestClient(url string, retries int) *RESTClient {
	return NewRESTClient(Config{
		APIKey:       "test-key",
		Model:        "gemini-test",
		BaseURL:      url,
		Timeout:      2 * time.Second,
		MaxRetries:   retries,
		RetryWait:    time.Millisecond,
		RetryMaxWait: 5 * time.Millisecond,
	})
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(GenerateContentResponse{
		Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: text}}}}},
	})
}

func TestRESTClient_Generate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody GenerateContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeText(w, `{"ok":true}`)
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL, 0).Generate(context.Background(), "hello")

	assert.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	if assert.Len(t, gotBody.Contents, 1) {
		assert.Equal(t, "hello", gotBody.Contents[0].Parts[0].Text)
	}
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
}

func TestRESTClient_Generate_RetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		switch n {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			writeText(w, `{"ok":true}`)
		}
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL, 3).Generate(context.Background(), "hello")

	assert.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRESTClient_Generate_RetriesExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).Generate(context.Background(), "hello")

	assert.True(t, apperr.IsKind(err, apperr.KindProviderUnavailable))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRESTClient_Generate_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Generate(context.Background(), "hello")

	assert.True(t, apperr.IsKind(err, apperr.KindProviderUnavailable))
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRESTClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Generate(context.Background(), "hello")

	assert.True(t, apperr.IsKind(err, apperr.KindMalformedResponse))
}

func TestRESTClient_Generate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, 1).Generate(context.Background(), "hello")

	assert.True(t, apperr.IsKind(err, apperr.KindProviderUnavailable))
}

func TestRESTClient_Generate_MissingKey(t *testing.T) {
	c := NewRESTClient(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := c.Generate(context.Background(), "hello")

	assert.True(t, apperr.IsKind(err, apperr.KindProviderUnavailable))
	assert.Equal(t, DefaultModel, c.Model())
}
