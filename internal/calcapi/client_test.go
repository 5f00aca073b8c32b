package calcapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/yourorg/calcctl/internal/calcapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*calcapi.Client, func()) {
	t.Helper()

	server := httptest.NewServer(handler)

	cfg := calcapi.ClientConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/",
	}
	client := calcapi.NewClient(cfg)
	client.WithLimiter(rate.NewLimiter(rate.Inf, 0))
	client.WithSleeper(func(time.Duration) {})

	return client, server.Close
}

func TestClientSetsHeaders(t *testing.T) {
	var capturedHeaders http.Header

	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"expression":"1+1","result":"2"}`)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})
	defer cleanup()

	if _, err := client.Evaluate(context.Background(), "1+1"); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	if got, want := capturedHeaders.Get("X-Api-Key"), "test-key"; got != want {
		t.Fatalf("X-Api-Key header = %q, want %q", got, want)
	}
	if got := capturedHeaders.Get("User-Agent"); got == "" {
		t.Fatalf("User-Agent header missing")
	}
}

func TestEvaluateParsesDecimalResult(t *testing.T) {
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req calcapi.EvalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Expression != "3 / 4" {
			t.Fatalf("expression = %q, want %q", req.Expression, "3 / 4")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(calcapi.EvalResponse{
			Expression: req.Expression,
			Result:     "0.75",
		}); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	})
	defer cleanup()

	got, err := client.Evaluate(context.Background(), "3 / 4")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if got.String() != "0.75" {
		t.Fatalf("Evaluate = %s, want 0.75", got)
	}
}

func TestClientRetriesOn429(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte(`{"error":{"status":429,"code":"rate_limited","message":"slow down"}}`)); err != nil {
				t.Fatalf("write retry response: %v", err)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"expression":"1+1","result":"2"}`)); err != nil {
			t.Fatalf("write success response: %v", err)
		}
	})
	defer cleanup()

	var waitCalls int
	client.WithSleeper(func(time.Duration) {
		waitCalls++
	})

	if _, err := client.Evaluate(context.Background(), "1+1"); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if waitCalls == 0 {
		t.Fatalf("expected sleep to be invoked for retry")
	}
}

func TestClientRetriesOn5xx(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, err := w.Write([]byte(`{"error":{"status":503,"code":"unavailable","message":"try again"}}`)); err != nil {
				t.Fatalf("write retry response: %v", err)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"expression":"1+1","result":"2"}`)); err != nil {
			t.Fatalf("write success response: %v", err)
		}
	})
	defer cleanup()

	if _, err := client.Evaluate(context.Background(), "1+1"); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestClientSurfacesTerminalErrors(t *testing.T) {
	attempts := 0
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnprocessableEntity)
		if _, err := w.Write([]byte(`{"error":{"status":422,"code":"invalid_expression","message":"division by zero"}}`)); err != nil {
			t.Fatalf("write error response: %v", err)
		}
	})
	defer cleanup()

	_, err := client.Evaluate(context.Background(), "1/0")
	if err == nil {
		t.Fatalf("expected error for terminal status")
	}

	var apiErr *calcapi.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *calcapi.Error", err)
	}
	if apiErr.Code != "invalid_expression" || apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if apiErr.Message != "division by zero" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "division by zero")
	}
	if attempts != 1 {
		t.Fatalf("terminal status should not retry, got %d attempts", attempts)
	}
}

func TestListConstants(t *testing.T) {
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/constants" {
			t.Fatalf("path = %q, want /v1/constants", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(calcapi.ConstantsResponse{
			Constants: []calcapi.ConstantInfo{{Name: "pi", Value: "3.14"}},
		}); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	})
	defer cleanup()

	constants, err := client.ListConstants(context.Background())
	if err != nil {
		t.Fatalf("ListConstants returned error: %v", err)
	}
	if len(constants) != 1 || constants[0].Name != "pi" {
		t.Fatalf("unexpected constants: %+v", constants)
	}
}
