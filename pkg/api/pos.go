package api

import "time"

// CartLine is one item in a cart.
type CartLine struct {
	ItemID    int64  `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal,omitempty"`
}

// SyncStatus is the replication state of a transaction.
type SyncStatus struct {
	// State is "pending", "ok" or "failed".
	State string `json:"state"`

	Reason      string     `json:"reason,omitempty"`
	AttemptedAt *time.Time `json:"attemptedAt,omitempty"`

	// ErrorKind is "unavailable" or "configuration" for a failed attempt
	// made by this call.
	ErrorKind string `json:"errorKind,omitempty"`
}

type Transaction struct {
	ID         int64      `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Lines      []CartLine `json:"lines"`
	Total      int64      `json:"total"`
	AmountPaid int64      `json:"amountPaid"`
	Change     int64      `json:"change"`
	Options    []int64    `json:"options"`

	// ChosenOption is "1", "2", "3" or "Manual".
	ChosenOption string `json:"chosenOption"`

	Sync *SyncStatus `json:"sync,omitempty"`
}

// Cart is the live cart of a session.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Lines     []CartLine `json:"lines"`
	Total     int64      `json:"total"`

	// Options are the suggested payment amounts. Empty for an empty cart.
	Options []int64 `json:"options,omitempty"`
}

type ComputeTotalRequest struct {
	Lines []CartLine `json:"lines"`
}

type ComputeTotalResponse struct {
	Total int64 `json:"total"`
}

type SuggestPaymentOptionsRequest struct {
	Total int64 `json:"total"`
}

type SuggestPaymentOptionsResponse struct {
	Options []int64 `json:"options"`
}

type FinalizeTransactionRequest struct {
	Lines      []CartLine `json:"lines"`
	AmountPaid int64      `json:"amountPaid"`

	// ClickedOption is the suggestion button last pressed, if any. The
	// recorded option is always derived from AmountPaid.
	ClickedOption string `json:"clickedOption,omitempty"`
}

type FinalizeTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type GetSyncStatusRequest struct {
	TransactionID int64 `json:"transactionId"`
}

type GetSyncStatusResponse struct {
	Sync *SyncStatus `json:"sync"`
}

type ResyncTransactionRequest struct {
	TransactionID int64 `json:"transactionId"`
}

type ResyncTransactionResponse struct {
	Sync *SyncStatus `json:"sync"`
}

type ListTransactionsRequest struct{}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type GetTransactionRequest struct {
	TransactionID int64 `json:"transactionId"`
}

type GetTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type GetSalesSummaryRequest struct{}

type GetSalesSummaryResponse struct {
	TransactionCount int64 `json:"transactionCount"`
	Revenue          int64 `json:"revenue"`
	ItemsSold        int64 `json:"itemsSold"`
}

type CheckSyncRequest struct{}

type CheckSyncResponse struct {
	// Mode is "remote" or "local-only".
	Mode string `json:"mode"`

	Connected     bool   `json:"connected"`
	SheetName     string `json:"sheetName"`
	SheetExists   bool   `json:"sheetExists"`
	SpreadsheetID string `json:"spreadsheetId,omitempty"`
	LoggedRows    int64  `json:"loggedRows"`
	Error         string `json:"error,omitempty"`
}

type OpenSessionRequest struct{}

type OpenSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type AddToCartRequest struct {
	SessionID string `json:"sessionId"`
	ItemID    int64  `json:"itemId"`

	// Quantity defaults to 1.
	Quantity int64 `json:"quantity,omitempty"`
}

type AddToCartResponse struct {
	Cart *Cart `json:"cart"`
}

type RemoveFromCartRequest struct {
	SessionID string `json:"sessionId"`
	ItemID    int64  `json:"itemId"`
}

type RemoveFromCartResponse struct {
	Cart *Cart `json:"cart"`
}

type GetCartRequest struct {
	SessionID string `json:"sessionId"`
}

type GetCartResponse struct {
	Cart *Cart `json:"cart"`
}

type ClearCartRequest struct {
	SessionID string `json:"sessionId"`
}

type ClearCartResponse struct {
	Cart *Cart `json:"cart"`
}

type CheckoutRequest struct {
	SessionID     string `json:"sessionId"`
	AmountPaid    int64  `json:"amountPaid"`
	ClickedOption string `json:"clickedOption,omitempty"`
}

type CheckoutResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type CloseSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type CloseSessionResponse struct{}

// GetSessionID lets interceptors tag logs with the cart session.
func (r *AddToCartRequest) GetSessionID() string {
	return r.SessionID
}

func (r *RemoveFromCartRequest) GetSessionID() string {
	return r.SessionID
}

func (r *GetCartRequest) GetSessionID() string {
	return r.SessionID
}

func (r *ClearCartRequest) GetSessionID() string {
	return r.SessionID
}

func (r *CheckoutRequest) GetSessionID() string {
	return r.SessionID
}

func (r *CloseSessionRequest) GetSessionID() string {
	return r.SessionID
}
