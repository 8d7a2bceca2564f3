package paystack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/passgate/passgate/internal/config"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(config.Config{
		PaystackBaseURL:   server.URL,
		PaystackSecretKey: "sk_test_secret",
	}, zap.NewNop())
	return client, server
}

func TestVerifySuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/TX1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_secret" {
			t.Errorf("auth header = %q", got)
		}
		w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"success","reference":"TX1","amount":150000,"channel":"card","customer":{"email":"a@b.com"}}}`))
	}))

	data, err := client.Verify(context.Background(), "TX1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if data.AmountMinor != 150000 || data.Channel != "card" || data.CustomerEmail != "a@b.com" {
		t.Errorf("data = %+v", data)
	}
}

func TestVerifyRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"success","reference":"TX1","amount":100,"channel":"card"}}`))
	}))

	if _, err := client.Verify(context.Background(), "TX1"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestVerifyDoesNotRetryFailedPayment(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"failed","reference":"TX1","amount":100,"channel":"card"}}`))
	}))

	if _, err := client.Verify(context.Background(), "TX1"); !errors.Is(err, ErrPaymentNotSuccessful) {
		t.Fatalf("got %v, want ErrPaymentNotSuccessful", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (terminal error must not retry)", got)
	}
}

func TestInitiateReturnsAuthorizationURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/initialize" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"https://pay.example/abc","access_code":"abc","reference":"TXNEW"}}`))
	}))

	out, err := client.Initiate(context.Background(), InitiateRequest{
		Email:       "a@b.com",
		AmountMinor: 150000,
	})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if out.AuthorizationURL != "https://pay.example/abc" || out.Reference != "TXNEW" {
		t.Errorf("out = %+v", out)
	}
}

func TestUnconfiguredClient(t *testing.T) {
	client := New(config.Config{PaystackBaseURL: "https://api.paystack.co"}, zap.NewNop())
	if _, err := client.Verify(context.Background(), "TX1"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("got %v, want ErrNotConfigured", err)
	}
}
