package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"business-eval/api/internal/enrich"
)

const DefaultModelURL = "https://api-inference.huggingface.co/models/google/flan-t5-large"

type Engine struct {
	APIKey string
	URL    string
	httpc  *http.Client
}

func New(key, url string) *Engine {
	if strings.TrimSpace(url) == "" {
		url = DefaultModelURL
	}
	return &Engine{
		APIKey: strings.TrimSpace(key),
		URL:    url,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return enrich.ProviderHuggingFace }

// Generate posts {"inputs": prompt} and returns the first generated_text.
func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("HUGGINGFACE_API_KEY is empty")
	}
	payload, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", &enrich.StatusError{Engine: e.Name(), Code: resp.StatusCode, Body: strings.TrimSpace(string(x))}
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("huggingface: bad response body: %w", err)
	}
	if len(out) == 0 {
		return "", errors.New("huggingface: empty response")
	}
	return out[0].GeneratedText, nil
}
