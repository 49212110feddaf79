package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// DepositRequest represents a deposit request.
type DepositRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// TransferRequest represents a transfer request. The recipient is addressed
// by account number, not account id.
type TransferRequest struct {
	FromAccountID   string          `json:"from_account_id"`
	ToAccountNumber string          `json:"to_account_number"`
	Amount          decimal.Decimal `json:"amount"`
}

// BuyGoldRequest represents a digital gold purchase request. Amount is the
// rupee amount to invest, not grams.
type BuyGoldRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
