package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tahmidrayat/dukandost/internal/config"
)

// Client exposes the WhatsApp Cloud API operations used by the application.
type Client interface {
	SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendTextMessageResponse, error)
	DownloadMedia(ctx context.Context, mediaID string) ([]byte, string, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient    *resty.Client
	phoneNumberID string
}

// NewClient builds a WhatsApp API client using the provided configuration values.
func NewClient(cfg config.WhatsAppConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AccessToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:    restyClient,
		phoneNumberID: cfg.PhoneNumberID,
	}
}

// SendTextMessageRequest represents a simplified text message payload.
type SendTextMessageRequest struct {
	To         string
	Body       string
	PreviewURL bool
}

// SendTextMessageResponse mirrors the successful response from Meta.
type SendTextMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// mediaLookupResponse mirrors Meta's media metadata lookup.
type mediaLookupResponse struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	SHA256   string `json:"sha256"`
	FileSize int64  `json:"file_size"`
	ID       string `json:"id"`
}

// apiError represents a WhatsApp Cloud API error payload.
type apiError struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorData    any    `json:"error_data"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

func (c *APIClient) SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendTextMessageResponse, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                req.To,
		"type":              "text",
		"text": map[string]any{
			"body":        req.Body,
			"preview_url": req.PreviewURL,
		},
	}

	result := new(SendTextMessageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", c.phoneNumberID))
	if err != nil {
		return nil, fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, asAPIError(resp, apiErr)
	}

	return result, nil
}

// DownloadMedia resolves a webhook media ID to its download URL and fetches
// the bytes. The URL returned by Meta is short-lived, so both steps happen in
// one call. Returns the media bytes and their MIME type.
func (c *APIClient) DownloadMedia(ctx context.Context, mediaID string) ([]byte, string, error) {
	lookup := new(mediaLookupResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(lookup).
		SetError(apiErr).
		Get(mediaID)
	if err != nil {
		return nil, "", fmt.Errorf("lookup whatsapp media %s: %w", mediaID, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, "", asAPIError(resp, apiErr)
	}
	if lookup.URL == "" {
		return nil, "", fmt.Errorf("lookup whatsapp media %s: empty download url", mediaID)
	}

	// The download URL is absolute, outside the graph base URL.
	dlResp, err := c.httpClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(lookup.URL)
	if err != nil {
		return nil, "", fmt.Errorf("download whatsapp media %s: %w", mediaID, err)
	}
	defer dlResp.RawBody().Close()

	if dlResp.StatusCode() >= http.StatusBadRequest {
		return nil, "", fmt.Errorf("download whatsapp media %s: status %d", mediaID, dlResp.StatusCode())
	}

	body, err := io.ReadAll(dlResp.RawBody())
	if err != nil {
		return nil, "", fmt.Errorf("read whatsapp media %s: %w", mediaID, err)
	}

	return body, lookup.MimeType, nil
}

func asAPIError(resp *resty.Response, apiErr *apiError) error {
	message := ""
	code := resp.StatusCode()
	if apiErr != nil {
		message = apiErr.Error.Message
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
	}
	return fmt.Errorf("whatsapp api error: code=%d, message=%s", code, message)
}
