package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/authn"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/ledger"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/transfer"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/service"
)

// TransferHandler handles HTTP requests for transfer operations
type TransferHandler struct {
	transferService service.TransferService
	ledgerRepo      ledger.Repository
	logger          *slog.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(logger *slog.Logger, transferService service.TransferService, ledgerRepo ledger.Repository) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		ledgerRepo:      ledgerRepo,
		logger:          logger,
	}
}

// Create submits a new transfer. Authorization credentials travel with the
// request: an optional PIN and an explicit override flag.
func (h *TransferHandler) Create(c *gin.Context) {
	var req SubmitTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.transferService.SubmitTransfer(c.Request.Context(), service.TransferRequest{
		RecipientName: req.RecipientName,
		AmountInput:   req.Amount,
		Note:          req.Note,
		Prompter: &authn.StaticPrompter{
			PIN:           req.PIN,
			AllowOverride: req.AllowOverride,
		},
	})
	if err != nil {
		h.respondTransferError(c, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}

// Recent returns up to `limit` most recent transactions, newest first
func (h *TransferHandler) Recent(c *gin.Context) {
	var query RecentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	entries, err := h.ledgerRepo.Recent(c.Request.Context(), query.Limit)
	if err != nil {
		h.logger.Error("Failed to load recent transactions", "error", err)
		RespondInternalError(c)
		return
	}

	transactions := make([]TransactionResponse, 0, len(entries))
	for _, tx := range entries {
		transactions = append(transactions, mapTransactionToResponse(tx))
	}

	RespondOK(c, transactions)
}

// respondTransferError maps the transfer error taxonomy onto HTTP statuses.
// Every failure kind gets a distinct code and message.
func (h *TransferHandler) respondTransferError(c *gin.Context, err error) {
	var authDenied transfer.AuthDeniedError

	switch {
	case errors.Is(err, transfer.ErrInvalidInput):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, transfer.ErrInsufficientFunds):
		RespondWithError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds")
	case errors.As(err, &authDenied):
		RespondWithError(c, http.StatusForbidden, "AUTH_DENIED", authDenied.Error())
	case errors.Is(err, transfer.ErrTransferInProgress):
		RespondWithError(c, http.StatusConflict, "TRANSFER_IN_PROGRESS", "Another transfer is already in progress")
	case errors.Is(err, transfer.SettlementError{}):
		RespondWithError(c, http.StatusBadGateway, "SETTLEMENT_FAILED", "Transfer failed. Please try again.")
	default:
		h.logger.Error("Unexpected transfer failure", "error", err)
		RespondInternalError(c)
	}
}

// mapTransactionToResponse maps a transaction to its response DTO
func mapTransactionToResponse(tx *transfer.Transaction) TransactionResponse {
	return TransactionResponse{
		ID: tx.ID,
		Recipient: RecipientResponse{
			ID:            tx.Recipient.ID,
			Name:          tx.Recipient.Name,
			AccountNumber: tx.Recipient.AccountNumber,
		},
		Amount: tx.Amount.String(),
		Note:   tx.Note,
		Date:   tx.Date.Format(time.RFC3339),
		Status: string(tx.Status),
	}
}
