package wallet

import "errors"

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletBlocked       = errors.New("wallet is blocked")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSelfTransfer        = errors.New("cannot transfer to the same wallet")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrUnsupportedUndo     = errors.New("operation kind cannot be undone")
)
