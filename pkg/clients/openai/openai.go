package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	baseURL        = "https://api.openai.com/v1"
	whisperModel   = "whisper-1"
	visionModel    = "gpt-4o-mini"
	ocrPrompt      = "Transcribe all handwritten or printed text in this image exactly as written. The text is likely Bengali, English, or a mix. Output only the text, nothing else."
	requestTimeout = 30 * time.Second
)

// Client defines the speech-to-text and OCR operations the bot delegates to
// OpenAI. Both calls return the recognized plain text.
type Client interface {
	TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error)
	ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error)
}

type apiClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured OpenAI client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey)).
		SetTimeout(requestTimeout)

	return &apiClient{httpClient: client}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// TranscribeAudio sends a voice note through the Whisper transcription
// endpoint and returns the recognized text.
func (c *apiClient) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	filename := "voice" + extensionFor(mimeType)

	var respBody transcriptionResponse
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(audio)).
		SetFormData(map[string]string{"model": whisperModel}).
		SetResult(&respBody).
		SetError(apiErr).
		Post("/audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("openai transcription call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai transcription error: %s", apiErr.Error.Message)
	}

	return strings.TrimSpace(respBody.Text), nil
}

// ExtractImageText runs OCR over a photo via the vision chat endpoint and
// returns the recognized text.
func (c *apiClient) ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	payload := map[string]any{
		"model": visionModel,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": ocrPrompt},
					{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
	}

	var respBody chatResponse
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&respBody).
		SetError(apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai ocr call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai ocr error: %s", apiErr.Error.Message)
	}
	if len(respBody.Choices) == 0 {
		return "", fmt.Errorf("openai ocr: empty response")
	}

	return strings.TrimSpace(respBody.Choices[0].Message.Content), nil
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "ogg"):
		return ".ogg"
	case strings.Contains(mimeType, "mpeg"):
		return ".mp3"
	case strings.Contains(mimeType, "mp4"):
		return ".m4a"
	case strings.Contains(mimeType, "wav"):
		return ".wav"
	default:
		return ".ogg" // WhatsApp voice notes are ogg/opus
	}
}
