package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-yacht-cms/internal/config"
)

// HTTPTranslator calls the configured text-translation provider.
type HTTPTranslator struct {
	BaseURL    string
	APIKey     string
	HttpClient *http.Client
}

// NewTranslator returns the HTTP implementation when a provider URL is
// configured, otherwise a Noop.
func NewTranslator(cfg *config.Config) Translator {
	if cfg.TranslateAPIURL == "" {
		return Noop{}
	}
	return &HTTPTranslator{
		BaseURL: cfg.TranslateAPIURL,
		APIKey:  cfg.TranslateAPIKey,
		HttpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
	SourceLang string `json:"source_lang"`
}

type translateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (t *HTTPTranslator) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Text:       text,
		TargetLang: targetLang,
		SourceLang: sourceLang,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.APIKey != "" {
		req.Header.Set("X-API-Key", t.APIKey)
	}

	resp, err := t.HttpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("translation provider returned status %d", resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("translation provider error: %s", out.Error)
	}
	return out.Text, nil
}
