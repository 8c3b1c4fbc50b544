package whatsapp

//go:generate go run go.uber.org/mock/mockgen -source=./whatsapp.go -destination=./mocks/whatsapp_mock.go -package=mocks

import (
	"bytes"
	"concierge/config"
	"concierge/infras/otel"
	"concierge/shared/constant"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrRecipient = "recipient"
	otelAttrMediaID   = "media_id"

	requestTimeout = 30 * time.Second
)

// Button is a quick-reply option. The Cloud API caps interactive button
// messages at three buttons per message.
type Button struct {
	ID    string
	Title string
}

type Row struct {
	ID          string
	Title       string
	Description string
}

type Section struct {
	Title string
	Rows  []Row
}

// Client is the outbound messaging gateway plus media retrieval. All send
// failures surface as errors; the callers decide whether a failure is fatal
// for the conversation turn.
type Client interface {
	SendText(ctx context.Context, to, body string) error
	SendMedia(ctx context.Context, to, imageURL, caption string) error
	SendLocation(ctx context.Context, to string, latitude, longitude float64, name, address string) error
	SendButtons(ctx context.Context, to, body string, buttons []Button) error
	SendList(ctx context.Context, to, body, buttonText string, sections []Section) error
	DownloadMedia(ctx context.Context, mediaID string) (tempPath string, err error)
}

type clientImpl struct {
	config     *config.Config
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	return &clientImpl{
		config: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		otel: otl,
	}
}

func (c *clientImpl) messagesURL() string {
	return fmt.Sprintf("%s/%s/%s/messages", c.config.WhatsApp.APIURL, c.config.WhatsApp.APIVersion, c.config.WhatsApp.PhoneNumberID)
}

func (c *clientImpl) send(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.messagesURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build message request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+c.config.WhatsApp.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("WhatsApp API rejected message")

		return fmt.Errorf("whatsapp api returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *clientImpl) SendText(ctx context.Context, to, body string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".whatsapp.SendText")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, to)

	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"body": body},
	})
}

func (c *clientImpl) SendMedia(ctx context.Context, to, imageURL, caption string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".whatsapp.SendMedia")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, to)

	image := map[string]any{"link": imageURL}
	if caption != "" {
		image["caption"] = caption
	}

	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "image",
		"image":             image,
	})
}

func (c *clientImpl) SendLocation(ctx context.Context, to string, latitude, longitude float64, name, address string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".whatsapp.SendLocation")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, to)

	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "location",
		"location": map[string]any{
			"latitude":  latitude,
			"longitude": longitude,
			"name":      name,
			"address":   address,
		},
	})
}

func (c *clientImpl) SendButtons(ctx context.Context, to, body string, buttons []Button) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".whatsapp.SendButtons")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, to)

	const maxButtons = 3
	if len(buttons) > maxButtons {
		return fmt.Errorf("interactive messages support at most %d buttons, got %d", maxButtons, len(buttons))
	}

	actionButtons := make([]map[string]any, 0, len(buttons))
	for _, button := range buttons {
		actionButtons = append(actionButtons, map[string]any{
			"type": "reply",
			"reply": map[string]any{
				"id":    button.ID,
				"title": button.Title,
			},
		})
	}

	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]any{"text": body},
			"action": map[string]any{"buttons": actionButtons},
		},
	})
}

func (c *clientImpl) SendList(ctx context.Context, to, body, buttonText string, sections []Section) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".whatsapp.SendList")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, to)

	apiSections := make([]map[string]any, 0, len(sections))

	for _, section := range sections {
		rows := make([]map[string]any, 0, len(section.Rows))
		for _, row := range section.Rows {
			apiRow := map[string]any{
				"id":    row.ID,
				"title": row.Title,
			}
			if row.Description != "" {
				apiRow["description"] = row.Description
			}

			rows = append(rows, apiRow)
		}

		apiSections = append(apiSections, map[string]any{
			"title": section.Title,
			"rows":  rows,
		})
	}

	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "list",
			"body":   map[string]any{"text": body},
			"action": map[string]any{"button": buttonText, "sections": apiSections},
		},
	})
}

type mediaMetadata struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// DownloadMedia resolves the media id against the API, downloads the binary
// and stores it under the configured media dir. The caller owns the returned
// file and must remove it when done.
func (c *clientImpl) DownloadMedia(ctx context.Context, mediaID string) (tempPath string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".whatsapp.DownloadMedia")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrMediaID, mediaID)

	metadataURL := fmt.Sprintf("%s/%s/%s", c.config.WhatsApp.APIURL, c.config.WhatsApp.APIVersion, mediaID)

	metadata := mediaMetadata{}
	if err = c.getJSON(ctx, metadataURL, &metadata); err != nil {
		return "", fmt.Errorf("failed to resolve media %s: %w", mediaID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadata.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build media download request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+c.config.WhatsApp.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download media %s: %w", mediaID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media download returned status %d", resp.StatusCode)
	}

	if err = os.MkdirAll(c.config.WhatsApp.MediaDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	tempPath = filepath.Join(c.config.WhatsApp.MediaDir, uuid.New().String()+extensionFor(metadata.MimeType))

	file, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer file.Close()

	if _, err = io.Copy(file, resp.Body); err != nil {
		os.Remove(tempPath)

		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return tempPath, nil
}

func (c *clientImpl) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+c.config.WhatsApp.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
