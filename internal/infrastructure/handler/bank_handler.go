package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/damon-houk/simplifi-csv-converter/internal/application/service"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

// BankHandler serves the list of supported bank formats
type BankHandler struct {
	service *service.ConversionService
	logger  logger.Logger
}

// NewBankHandler creates a new bank handler
func NewBankHandler(service *service.ConversionService, log logger.Logger) *BankHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BankHandler{
		service: service,
		logger:  log,
	}
}

// ListBanks returns the id and display name of every supported bank
func (h *BankHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks := h.service.Banks()

	resp := make([]BankResponse, 0, len(banks))
	for _, b := range banks {
		resp = append(resp, BankResponse{ID: string(b.ID), Name: b.Name})
	}

	sendJSON(w, h.logger, http.StatusOK, resp)
}

// RegisterRoutes registers the bank handler routes
func (h *BankHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/banks", h.ListBanks).Methods(http.MethodGet)

	h.logger.Info("Bank routes registered", map[string]interface{}{
		"routes": []string{"GET /banks"},
	})
}
