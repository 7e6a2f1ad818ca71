package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeBalance   = errors.New("balance cannot be negative")
	ErrInvalidAmount     = errors.New("amount cannot be negative")
)

// InsufficientFundsError carries what the caller must show the user.
type InsufficientFundsError struct {
	Required  int
	Available int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %d, available %d", e.Required, e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// Balance is the spend currency. It never goes negative.
type Balance struct {
	amount int
}

func NewBalance(amount int) (Balance, error) {
	if amount < 0 {
		return Balance{}, ErrNegativeBalance
	}
	return Balance{amount: amount}, nil
}

func (b Balance) Amount() int {
	return b.amount
}

func (b Balance) CanAfford(cost int) bool {
	return cost >= 0 && b.amount >= cost
}

func (b Balance) Debit(cost int) (Balance, error) {
	if cost < 0 {
		return b, ErrInvalidAmount
	}
	if b.amount < cost {
		return b, &InsufficientFundsError{Required: cost, Available: b.amount}
	}
	return Balance{amount: b.amount - cost}, nil
}

func (b Balance) Credit(amount int) (Balance, error) {
	if amount < 0 {
		return b, ErrInvalidAmount
	}
	return Balance{amount: b.amount + amount}, nil
}
