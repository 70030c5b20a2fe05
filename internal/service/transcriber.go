package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hireloop/interview-api/config"
	"github.com/hireloop/interview-api/internal/constants"
)

// RemoteTranscriber sends stored audio to the scoring API's transcription
// endpoint.
type RemoteTranscriber struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRemoteTranscriber returns nil when no scoring endpoint is configured,
// which disables audio processing.
func NewRemoteTranscriber(cfg config.ScoringConfig) *RemoteTranscriber {
	if cfg.Endpoint == "" {
		return nil
	}
	return &RemoteTranscriber{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/") + "/transcribe",
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type transcriptionResponse struct {
	Text            string  `json:"text"`
	Confidence      float64 `json:"confidence"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (t *RemoteTranscriber) Transcribe(ctx context.Context, audioPath string) (string, float64, float64, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", 0, 0, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", 0, 0, fmt.Errorf("failed to read audio file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", 0, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, &body)
	if err != nil {
		return "", 0, 0, err
	}
	req.Header.Set(constants.HeaderContentType, writer.FormDataContentType())
	if t.apiKey != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, 0, fmt.Errorf("transcription api returned status %d", resp.StatusCode)
	}

	var result transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, 0, err
	}

	return result.Text, result.Confidence, result.DurationSeconds, nil
}
