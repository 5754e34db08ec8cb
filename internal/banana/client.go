package banana

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"banana-product-listing/internal/models"
)

// TransportError means the generation service could not be reached at all
// (DNS failure, connection refused, dropped connection).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a failure response from the generation service. Body holds
// the raw response text so service-side diagnostics reach the caller verbatim.
type ServiceError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service error: status %d (%s), body: %s", e.StatusCode, e.Status, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the product listing generation service.
// No request timeout is set: generation runs long and a request is left to
// settle on its own.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Submit posts both images as one multipart request to
// /generate-product-listing and returns the decoded analysis. outputName is
// sent only when non-empty. There is exactly one attempt, no retries.
func (c *Client) Submit(clothing, model models.ImageInput, outputName string) (*models.GenerationResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writeImagePart(writer, "clothing_image", clothing); err != nil {
		return nil, fmt.Errorf("failed to encode clothing image: %w", err)
	}
	if err := writeImagePart(writer, "model_image", model); err != nil {
		return nil, fmt.Errorf("failed to encode model image: %w", err)
	}
	if outputName != "" {
		if err := writer.WriteField("output_filename", outputName); err != nil {
			return nil, fmt.Errorf("failed to encode output filename: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := c.baseURL + "/generate-product-listing"
	req, err := http.NewRequest("POST", url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var result models.GenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}
	if !result.Success {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Status: resp.Status, Body: result.Message}
	}

	return &result, nil
}

// ImageURL resolves a service-relative image reference against the service
// origin. Already-absolute references pass through unchanged.
func (c *Client) ImageURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

func writeImagePart(writer *multipart.Writer, field string, img models.ImageInput) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, img.Filename))
	header.Set("Content-Type", img.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(img.Data)
	return err
}
