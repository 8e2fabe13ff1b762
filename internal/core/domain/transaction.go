package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is an immutable ledger entry. Deposits and withdrawals carry the
// same user on both sides; transfers reference two distinct users.
type Transaction struct {
	ID         int64           `json:"id"`
	SenderID   int64           `json:"sender_id"`
	ReceiverID int64           `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       TransactionType `json:"type"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IsSelfDirected returns true for entries whose sender and receiver coincide
// (deposit/withdraw shape).
func (t *Transaction) IsSelfDirected() bool {
	return t.SenderID == t.ReceiverID
}
