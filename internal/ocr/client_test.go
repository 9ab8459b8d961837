package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExtractText(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"  Question 1 Write an essay.  "}}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	defer c.Close()

	text, err := c.ExtractText(context.Background(), []byte("fake png"), "image/png")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "Question 1 Write an essay." {
		t.Errorf("text = %q", text)
	}

	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.1 {
		t.Errorf("temperature = %v", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 1 || len(gotReq.Messages[0].Content) != 2 {
		t.Fatalf("unexpected message shape: %+v", gotReq.Messages)
	}
	img := gotReq.Messages[0].Content[1]
	if img.ImageURL == nil || !strings.HasPrefix(img.ImageURL.URL, "data:image/png;base64,") {
		t.Errorf("image content = %+v", img)
	}
}

func TestExtractText_RetryableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			fmt.Fprint(w, "overloaded")
		}))

		c := NewClient(srv.URL, "k", "m", 5*time.Second)
		_, err := c.ExtractText(context.Background(), []byte("x"), "image/png")
		if !IsRetryable(err) {
			t.Errorf("status %d: expected retryable error, got %v", status, err)
		}
		var retryErr *RetryableError
		if errors.As(err, &retryErr) && retryErr.StatusCode != status {
			t.Errorf("status code = %d, want %d", retryErr.StatusCode, status)
		}
		srv.Close()
		c.Close()
	}
}

func TestExtractText_ClientErrorNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"type":"auth","message":"bad key"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", 5*time.Second)
	defer c.Close()

	_, err := c.ExtractText(context.Background(), []byte("x"), "image/png")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsRetryable(err) {
		t.Errorf("401 must not be retryable: %v", err)
	}
}

func TestExtractText_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", 5*time.Second)
	defer c.Close()

	if _, err := c.ExtractText(context.Background(), []byte("x"), "image/png"); err == nil {
		t.Error("expected error for empty choices")
	}
}
