package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Currency:      a.Currency,
		CreatedAt:     a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	ToAccount       string          `json:"to_account,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		Description:     t.Description,
		ToAccount:       t.ToAccount,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// GoldHoldingResponse represents a gold holding in API responses.
type GoldHoldingResponse struct {
	Grams        decimal.Decimal `json:"grams"`
	CurrentValue decimal.Decimal `json:"current_value"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// GoldHoldingFromDomain converts domain gold holding to response.
func GoldHoldingFromDomain(h *domain.GoldHolding) *GoldHoldingResponse {
	return &GoldHoldingResponse{
		Grams:        h.Grams,
		CurrentValue: h.CurrentValue,
		LastUpdated:  h.LastUpdated,
	}
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	User    *UserResponse    `json:"user"`
	Account *AccountResponse `json:"account"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        *UserResponse `json:"user"`
}

// MutationResponse is returned after a deposit or withdrawal.
type MutationResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal      `json:"new_balance"`
}

// TransferResponse is returned after a transfer: both legs plus the sender's
// new balance.
type TransferResponse struct {
	OutTransaction *TransactionResponse `json:"out_transaction"`
	InTransaction  *TransactionResponse `json:"in_transaction"`
	NewBalance     decimal.Decimal      `json:"new_balance"`
}

// BuyGoldResponse is returned after a gold purchase is initiated.
type BuyGoldResponse struct {
	GramsBought    decimal.Decimal `json:"grams_bought"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	TotalGoldGrams decimal.Decimal `json:"total_gold_grams"`
	TransactionID  string          `json:"transaction_id"`
	Status         string          `json:"status"`
}

// BuyGoldFromResult converts a use case result to response.
func BuyGoldFromResult(r *usecase.BuyGoldResult) *BuyGoldResponse {
	return &BuyGoldResponse{
		GramsBought:    r.GramsBought,
		NewBalance:     r.NewBalance,
		TotalGoldGrams: r.TotalGrams,
		TransactionID:  r.TransactionID,
		Status:         r.Status,
	}
}

// DashboardResponse aggregates the user overview.
type DashboardResponse struct {
	TotalBalance       decimal.Decimal        `json:"total_balance"`
	Accounts           []*AccountResponse     `json:"accounts"`
	RecentTransactions []*TransactionResponse `json:"recent_transactions"`
	DigitalGold        *GoldHoldingResponse   `json:"digital_gold,omitempty"`
	User               *UserResponse          `json:"user"`
}

// DashboardFromUseCase converts a dashboard aggregate to response.
func DashboardFromUseCase(d *usecase.Dashboard) *DashboardResponse {
	resp := &DashboardResponse{
		TotalBalance:       d.TotalBalance,
		Accounts:           AccountsFromDomain(d.Accounts),
		RecentTransactions: TransactionsFromDomain(d.RecentTransactions),
		User:               UserFromDomain(d.User),
	}
	if d.Gold != nil {
		resp.DigitalGold = GoldHoldingFromDomain(d.Gold)
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
