package image

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCloudinaryUploadSendsSignedForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/demo-cloud/image/upload" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("api_key"); got != "key123" {
			t.Errorf("api_key = %q", got)
		}

		timestamp := r.FormValue("timestamp")
		if timestamp == "" {
			t.Error("timestamp missing")
		}
		sum := sha1.Sum([]byte("timestamp=" + timestamp + "secret456"))
		if got := r.FormValue("signature"); got != hex.EncodeToString(sum[:]) {
			t.Errorf("signature = %q, want sha1 over timestamp and secret", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "banner.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		if data, _ := io.ReadAll(file); string(data) != "png-bytes" {
			t.Errorf("file contents = %q", data)
		}

		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo-cloud/image/upload/v1/banner.png"}`))
	}))
	t.Cleanup(server.Close)

	provider := NewCloudinary(Config{
		CloudName: "demo-cloud",
		APIKey:    "key123",
		APISecret: "secret456",
		BaseURL:   server.URL,
	})

	url, err := provider.Upload(context.Background(), []byte("png-bytes"), "banner.png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://res.cloudinary.com/demo-cloud/image/upload/v1/banner.png" {
		t.Errorf("url = %q", url)
	}
}

func TestCloudinaryUploadRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid signature"}}`))
	}))
	t.Cleanup(server.Close)

	provider := NewCloudinary(Config{CloudName: "demo-cloud", BaseURL: server.URL})
	if _, err := provider.Upload(context.Background(), []byte("x"), "x.png"); err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}

func TestNoOpProviderReportsNotConfigured(t *testing.T) {
	var p Provider = &NoOpProvider{}
	if _, err := p.Upload(context.Background(), []byte("x"), "x.png"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("got %v, want ErrNotConfigured", err)
	}
}
