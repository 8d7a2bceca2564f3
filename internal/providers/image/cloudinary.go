package image

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
}

const cloudinaryBaseURL = "https://api.cloudinary.com/v1_1"

type CloudinaryProvider struct {
	cfg    Config
	client *http.Client
}

func NewCloudinary(cfg Config) *CloudinaryProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = cloudinaryBaseURL
	}
	return &CloudinaryProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *CloudinaryProvider) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	_ = form.WriteField("api_key", p.cfg.APIKey)
	_ = form.WriteField("timestamp", timestamp)
	_ = form.WriteField("signature", p.sign(timestamp))
	if err := form.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", p.cfg.BaseURL, p.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("cloudinary: status %d: %s", resp.StatusCode, string(detail))
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("cloudinary: decode response: %w", err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: response missing secure_url")
	}
	return out.SecureURL, nil
}

// sign covers the signed parameters of the upload call, here only the
// timestamp, per Cloudinary's authentication scheme.
func (p *CloudinaryProvider) sign(timestamp string) string {
	sum := sha1.Sum([]byte("timestamp=" + timestamp + p.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}
