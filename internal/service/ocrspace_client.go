package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"formadoc/pkg/config"

	"go.uber.org/zap"
)

// OCRSpaceClient talks to the hosted OCR.space parse API, the primary text
// extraction path for image documents.
type OCRSpaceClient struct {
	config     *config.OCRSpaceConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOCRSpaceClient(cfg *config.OCRSpaceConfig, logger *zap.Logger) *OCRSpaceClient {
	return &OCRSpaceClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type ocrSpaceResponse struct {
	OCRExitCode           int  `json:"OCRExitCode"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	// ErrorMessage is a string or an array of strings depending on the failure.
	ErrorMessage  json.RawMessage `json:"ErrorMessage"`
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
}

// ParseImage sends image bytes as a base64 data URI and returns the parsed
// text. Engine 2 with French language matches identity cards and scanned
// administrative documents best.
func (c *OCRSpaceClient) ParseImage(ctx context.Context, imageBytes []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	encoded := base64.StdEncoding.EncodeToString(imageBytes)
	fields := map[string]string{
		"base64Image":       "data:image/jpeg;base64," + encoded,
		"language":          "fre",
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		"OCREngine":         "2",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("apikey", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR API failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}

	if parsed.OCRExitCode != 1 || parsed.IsErroredOnProcessing || len(parsed.ParsedResults) == 0 {
		return "", fmt.Errorf("OCR processing failed: %s", string(parsed.ErrorMessage))
	}

	text := strings.TrimSpace(parsed.ParsedResults[0].ParsedText)

	c.logger.Info("OCR.space extraction completed",
		zap.Int("text_length", len(text)),
	)

	return text, nil
}
