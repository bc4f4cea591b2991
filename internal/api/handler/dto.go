package handler

// SubmitTransferRequest represents a request to submit a new transfer.
// Amount is the raw user entry and is validated by the transfer service.
// PIN and AllowOverride feed the authorization fallback for this attempt:
// a PIN selects PIN entry, AllowOverride selects the explicit override, and
// neither means the fallback prompt is cancelled.
type SubmitTransferRequest struct {
	RecipientName string `json:"recipient_name" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Note          string `json:"note,omitempty"`
	PIN           string `json:"pin,omitempty"`
	AllowOverride bool   `json:"allow_override,omitempty"`
}

// RecipientResponse represents a transfer recipient in API responses
type RecipientResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID        string            `json:"id"`
	Recipient RecipientResponse `json:"recipient"`
	Amount    string            `json:"amount"`
	Note      string            `json:"note,omitempty"`
	Date      string            `json:"date"`
	Status    string            `json:"status"`
}

// BalanceResponse represents the account balance in API responses
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecentQuery represents query parameters for the recent-transactions endpoint
type RecentQuery struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=10"`
}
