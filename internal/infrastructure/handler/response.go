package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/bank"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

func sendJSON(w http.ResponseWriter, log logger.Logger, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"status_code": statusCode,
		"message":     message,
	})

	sendJSON(w, log, statusCode, ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}

// sendConversionError maps a conversion or upload failure to its status code
func sendConversionError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	var mismatch *bank.FormatMismatchError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		log.Warn("Upload too large", map[string]interface{}{"limit": tooLarge.Limit})
		sendErrorResponse(w, log, "File too large", err.Error(), http.StatusRequestEntityTooLarge, requestID)
	case errors.As(err, &mismatch):
		log.Warn("File does not match the selected bank", map[string]interface{}{"bank": mismatch.BankName})
		sendErrorResponse(w, log, "Invalid file format", mismatch.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, bank.ErrUnknownBank):
		log.Warn("Unknown bank", map[string]interface{}{"error": err.Error()})
		sendErrorResponse(w, log, "Unknown bank", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, errBadUpload):
		log.Warn("Invalid upload", map[string]interface{}{"error": err.Error()})
		sendErrorResponse(w, log, "Invalid upload", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, bank.ErrEmptyResult):
		log.Warn("No transactions in file", nil)
		sendErrorResponse(w, log, "No transactions found",
			"The file was recognized but contains no valid transactions", http.StatusUnprocessableEntity, requestID)
	case errors.Is(err, bank.ErrInvalidDate):
		log.Warn("Invalid transaction date", map[string]interface{}{"error": err.Error()})
		sendErrorResponse(w, log, "Invalid transaction date", err.Error(), http.StatusUnprocessableEntity, requestID)
	default:
		log.Error("Unexpected error in conversion handler", map[string]interface{}{"error": err.Error()})
		sendErrorResponse(w, log, "Internal server error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError, requestID)
	}
}
