package ocr

//go:generate go run go.uber.org/mock/mockgen -source=./ocr.go -destination=./mocks/ocr_mock.go -package=mocks

import (
	"bytes"
	"concierge/config"
	"concierge/infras/otel"
	"concierge/shared/constant"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	otelAttrIDType    = "id_type"
	otelAttrBookingID = "booking_id"
)

// ExtractedID is the verification collaborator's reading of a guest ID image.
type ExtractedID struct {
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
	Name     string `json:"name"`
	DOB      string `json:"dob"`
	RawText  string `json:"raw_text"`
	Verified bool   `json:"verified"`
}

// Verifier extracts identity fields from an ID image. Implementations must
// honor the context deadline; the orchestrating service sets an explicit
// timeout so a stuck collaborator cannot hold a conversation turn open.
type Verifier interface {
	Verify(ctx context.Context, imagePath, idType, bookingID string) (ExtractedID, error)
}

type verifierImpl struct {
	config     *config.Config
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Verifier {
	return &verifierImpl{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Verification.OCRTimeoutSecs) * time.Second,
		},
		otel: otl,
	}
}

func (v *verifierImpl) Verify(ctx context.Context, imagePath, idType, bookingID string) (result ExtractedID, err error) {
	ctx, scope := v.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".ocr.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrIDType:    idType,
		otelAttrBookingID: bookingID,
	})

	file, err := os.Open(imagePath)
	if err != nil {
		return result, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return result, fmt.Errorf("failed to build multipart form: %w", err)
	}

	if _, err = io.Copy(part, file); err != nil {
		return result, fmt.Errorf("failed to read image: %w", err)
	}

	if err = writer.WriteField("id_type", idType); err != nil {
		return result, fmt.Errorf("failed to build multipart form: %w", err)
	}

	if err = writer.WriteField("booking_id", bookingID); err != nil {
		return result, fmt.Errorf("failed to build multipart form: %w", err)
	}

	if err = writer.Close(); err != nil {
		return result, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	url := v.config.Verification.OCRBaseURL + "/verify"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return result, fmt.Errorf("failed to build verify request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("verification collaborator unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("verification collaborator returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode verification result: %w", err)
	}

	return result, nil
}
