package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuralTrust/TrustMask/fonts"
	"github.com/NeuralTrust/TrustMask/pkg/app/document"
	"github.com/NeuralTrust/TrustMask/pkg/app/redaction"
	"github.com/NeuralTrust/TrustMask/pkg/app/redaction/mocks"
	"github.com/NeuralTrust/TrustMask/pkg/detection"
	"github.com/NeuralTrust/TrustMask/pkg/domain"
	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
	"github.com/go-pdf/fpdf"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestMaskHandler_Success(t *testing.T) {
	service := new(mocks.Service)
	app := fiber.New()
	app.Post("/api/mask", NewMaskHandler(testLogger(), service).Handle)

	text := "TC: 12345678950"
	service.On("AnalyzeAndMask", mock.Anything, text).Return(&redaction.MaskResult{
		OriginalText: text,
		MaskedText:   "TC: 12*******50",
		Detections: detection.Spans{
			{EntityType: pii_entities.TCKimlik, Start: 4, End: 15, Text: "12345678950", Confidence: 0.95},
		},
		DetectionCount: 1,
		DetectionTypes: redaction.DetectionCounts{Regex: 1},
	}, nil)

	status, body := postJSON(t, app, "/api/mask", `{"text":"TC: 12345678950"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "TC: 12*******50", data["masked_text"])
	assert.Equal(t, float64(1), data["detection_count"])
	assert.Equal(t, float64(1), data["detection_types"].(map[string]interface{})["regex"])
	service.AssertExpectations(t)
}

func TestMaskHandler_Validation(t *testing.T) {
	service := new(mocks.Service)
	app := fiber.New()
	app.Post("/api/mask", NewMaskHandler(testLogger(), service).Handle)

	tests := []struct {
		name  string
		body  string
		error string
	}{
		{"missing text", `{}`, "Text is required"},
		{"empty text", `{"text":""}`, "Text cannot be empty"},
		{"blank text", `{"text":"   "}`, "Text cannot be empty"},
		{"malformed json", `{"text":`, "Text is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postJSON(t, app, "/api/mask", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, tt.error, body["error"])
		})
	}
	service.AssertNotCalled(t, "AnalyzeAndMask", mock.Anything, mock.Anything)
}

func TestMaskHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", domain.ErrInvalidInput, fiber.StatusBadRequest},
		{"detector failure", domain.NewDetectorError("ner", errors.New("timeout")), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.Service)
			app := fiber.New()
			app.Post("/api/mask", NewMaskHandler(testLogger(), service).Handle)
			service.On("AnalyzeAndMask", mock.Anything, "metin").Return(nil, tt.err)

			status, body := postJSON(t, app, "/api/mask", `{"text":"metin"}`)
			assert.Equal(t, tt.status, status)
			if tt.status == fiber.StatusInternalServerError {
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestAnalyzeHandler(t *testing.T) {
	service := new(mocks.Service)
	app := fiber.New()
	app.Post("/api/analyze", NewAnalyzeHandler(testLogger(), service).Handle)

	service.On("Analyze", mock.Anything, "Ankara").Return(&redaction.AnalysisResult{
		RegexDetections:    detection.Spans{},
		NERDetections:      detection.Spans{},
		LocationDetections: detection.Spans{{EntityType: pii_entities.LocationName, Start: 0, End: 6, Text: "Ankara", Confidence: 0.85}},
		MedicalDetections:  detection.Spans{},
		TotalDetections:    1,
	}, nil)

	status, body := postJSON(t, app, "/api/analyze", `{"text":"Ankara"}`)
	assert.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_detections"])
	assert.Len(t, data["location_detections"], 1)
	assert.Len(t, data["nlp_detections"], 0)
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile(fileFormField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestMaskFileHandler(t *testing.T) {
	service := new(mocks.Service)
	app := fiber.New()
	app.Post("/api/mask_file", NewMaskFileHandler(testLogger(), service, 1024).Handle)

	service.On("AnalyzeAndMask", mock.Anything, "sayfa 1\nsayfa 2\nson").
		Return(&redaction.MaskResult{OriginalText: "sayfa 1\nsayfa 2\nson", MaskedText: "sayfa 1\nsayfa 2\nson"}, nil)

	tests := []struct {
		name     string
		filename string
		content  []byte
		status   int
	}{
		{"text file with page breaks", "belge.TXT", []byte("\xEF\xBB\xBFsayfa 1\fsayfa 2\r\nson"), fiber.StatusOK},
		{"unreadable pdf", "belge.pdf", []byte("%PDF-1.4"), fiber.StatusBadRequest},
		{"unsupported type", "belge.docx", []byte("PK"), fiber.StatusUnsupportedMediaType},
		{"no file part", "", nil, fiber.StatusBadRequest},
		{"too large", "buyuk.txt", bytes.Repeat([]byte("a"), 2048), fiber.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartUpload(t, tt.filename, tt.content)
			req := httptest.NewRequest(fiber.MethodPost, "/api/mask_file", body)
			req.Header.Set(fiber.HeaderContentType, contentType)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
	service.AssertNumberOfCalls(t, "AnalyzeAndMask", 1)
}

func TestExportHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/api/export", NewExportHandler(testLogger()).Handle)

	t.Run("attachment", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/api/export", bytes.NewBufferString(`{"masked_text":"TC: 12*******50"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "maskelenmis_metin.txt")
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "TC: 12*******50", string(b))
	})

	t.Run("missing text", func(t *testing.T) {
		status, body := postJSON(t, app, "/api/export", `{"masked_text":""}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Eksik metin", body["error"])
	})
}

func TestMaskFileHandler_PDF(t *testing.T) {
	service := new(mocks.Service)
	app := fiber.New()
	app.Post("/api/mask_file", NewMaskFileHandler(testLogger(), service, 1<<20).Handle)

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	doc.Cell(0, 10, "TC 12345678950")
	var pdf bytes.Buffer
	require.NoError(t, doc.Output(&pdf))

	service.On("AnalyzeAndMask", mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "12345678950")
	})).Return(&redaction.MaskResult{MaskedText: "TC 12*******50\n"}, nil)

	body, contentType := multipartUpload(t, "rapor.pdf", pdf.Bytes())
	req := httptest.NewRequest(fiber.MethodPost, "/api/mask_file", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	service.AssertExpectations(t)
}

func TestExportPDFHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/api/export_pdf", NewExportPDFHandler(testLogger(), document.NewPDFWriter(fonts.DejaVuSansCondensed())).Handle)

	t.Run("attachment", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/api/export_pdf", bytes.NewBufferString(`{"masked_text":"Ad: A*** Y****, Şehir: İs******"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "maskelenmis_metin.pdf")
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
	})

	t.Run("missing text", func(t *testing.T) {
		status, body := postJSON(t, app, "/api/export_pdf", `{}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Eksik metin", body["error"])
	})

	t.Run("broken font", func(t *testing.T) {
		broken := fiber.New()
		broken.Post("/api/export_pdf", NewExportPDFHandler(testLogger(), document.NewPDFWriter(nil)).Handle)
		status, body := postJSON(t, broken, "/api/export_pdf", `{"masked_text":"x"}`)
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.NotEmpty(t, body["error"])
	})
}

type staticStatus string

func (s staticStatus) Status() string { return string(s) }

func TestHealthHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/api/health", NewHealthHandler(testLogger(), staticStatus("closed")).Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "closed", body["ner"])
	assert.Len(t, body["features"], len(features))
}
