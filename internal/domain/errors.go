package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountNumberTaken = errors.New("account number already in use")

	// Transfer errors
	ErrMissingRecipient  = errors.New("recipient account required")
	ErrRecipientNotFound = errors.New("recipient account not found")

	// Transaction errors
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidTransactionState = errors.New("transaction is not pending")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateRegistration = errors.New("username or email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user account is inactive")

	// Gold errors
	ErrGoldHoldingNotFound = errors.New("gold holding not found")
)
