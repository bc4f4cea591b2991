package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/contacts"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/balance"
)

// AccountHandler handles HTTP requests for balance and contact reads
type AccountHandler struct {
	balanceStore  *balance.Store
	contactSource contacts.Source
	logger        *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, balanceStore *balance.Store, contactSource contacts.Source) *AccountHandler {
	return &AccountHandler{
		balanceStore:  balanceStore,
		contactSource: contactSource,
		logger:        logger,
	}
}

// GetBalance returns the current account balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	RespondOK(c, BalanceResponse{Balance: h.balanceStore.Balance().String()})
}

// ListContacts returns recipient suggestions. A denied contacts permission
// yields an empty list, not an error.
func (h *AccountHandler) ListContacts(c *gin.Context) {
	list, err := h.contactSource.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list contacts", "error", err)
		RespondInternalError(c)
		return
	}

	out := make([]ContactResponse, 0, len(list))
	for _, contact := range list {
		out = append(out, ContactResponse{ID: contact.ID, Name: contact.Name})
	}

	RespondOK(c, out)
}
