// Package handler exposes the converter over HTTP
package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/damon-houk/simplifi-csv-converter/internal/application/service"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/middleware"
)

const (
	// DefaultMaxUploadSize is used when the handler is given a non-positive limit
	DefaultMaxUploadSize int64 = 10 << 20

	fileField = "file"
	bankField = "bank"
	csvType   = "text/csv"
)

var errBadUpload = errors.New("invalid upload")

// upload is a CSV statement submitted for conversion
type upload struct {
	filename string
	bankID   string
	content  string
}

// ConversionHandler handles previews and downloads of converted statements
type ConversionHandler struct {
	service       *service.ConversionService
	maxUploadSize int64
	logger        logger.Logger
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(service *service.ConversionService, maxUploadSize int64, log logger.Logger) *ConversionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}

	return &ConversionHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		logger:        log,
	}
}

// Preview converts the uploaded statement and returns the first records and totals
func (h *ConversionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	log := middleware.LoggerFromContext(r.Context(), h.logger)

	up, err := h.readUpload(w, r)
	if err != nil {
		sendConversionError(w, log, err, requestID)
		return
	}

	result, err := h.service.Convert(r.Context(), up.content, up.bankID)
	if err != nil {
		sendConversionError(w, log, err, requestID)
		return
	}

	preview := result.Preview()
	records := make([]PreviewRecordResponse, 0, len(preview))
	for _, rec := range preview {
		records = append(records, PreviewRecordResponse{
			Date:       rec.OutputDate,
			Payee:      rec.Payee,
			Amount:     rec.Amount,
			AmountUSD:  rec.ConvertedAmount,
			Rate:       rec.ExchangeRate,
			RateSource: string(rec.RateSource),
		})
	}

	sendJSON(w, log, http.StatusOK, PreviewResponse{
		RunID:            result.RunID,
		Bank:             BankResponse{ID: string(result.BankID), Name: result.BankName},
		TransactionCount: len(result.Converted),
		Records:          records,
		TotalAmount:      result.TotalSourceAmount,
		TotalAmountUSD:   result.TotalConvertedAmount,
	})
}

// Download converts the uploaded statement and returns the Simplifi import file
func (h *ConversionHandler) Download(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	log := middleware.LoggerFromContext(r.Context(), h.logger)

	up, err := h.readUpload(w, r)
	if err != nil {
		sendConversionError(w, log, err, requestID)
		return
	}

	result, err := h.service.Convert(r.Context(), up.content, up.bankID)
	if err != nil {
		sendConversionError(w, log, err, requestID)
		return
	}

	output, err := h.service.BuildOutputFile(r.Context(), result.Transactions, up.bankID)
	if err != nil {
		sendConversionError(w, log, err, requestID)
		return
	}

	name := service.OutputFileName(up.filename)
	log.Info("Output file built", map[string]interface{}{
		"run_id":   result.RunID,
		"filename": name,
		"records":  len(result.Transactions),
	})

	w.Header().Set("Content-Type", csvType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, output); err != nil {
		log.Error("Failed to write output file", map[string]interface{}{"error": err.Error()})
	}
}

// readUpload extracts the statement and the selected bank from a multipart form
func (h *ConversionHandler) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", errBadUpload, err.Error())
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		return nil, fmt.Errorf("%w: missing %q file field", errBadUpload, fileField)
	}
	defer file.Close()

	if !isCSV(header.Filename, header.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("%w: %s is not a CSV file", errBadUpload, header.Filename)
	}

	bankID := strings.TrimSpace(r.FormValue(bankField))
	if bankID == "" {
		return nil, fmt.Errorf("%w: missing %q field", errBadUpload, bankField)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errBadUpload, err.Error())
	}

	return &upload{filename: header.Filename, bankID: bankID, content: string(data)}, nil
}

func isCSV(filename, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == csvType
}

// RegisterRoutes registers the conversion handler routes
func (h *ConversionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/conversions/preview", h.Preview).Methods(http.MethodPost)
	router.HandleFunc("/conversions/download", h.Download).Methods(http.MethodPost)

	h.logger.Info("Conversion routes registered", map[string]interface{}{
		"routes": []string{
			"POST /conversions/preview",
			"POST /conversions/download",
		},
	})
}
