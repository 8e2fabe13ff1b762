package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"plain user", "USER", RoleUser, false},
		{"plain admin", "ADMIN", RoleAdmin, false},
		{"lowercase", "admin", RoleAdmin, false},
		{"mixed case with spaces", "  UsEr  ", RoleUser, false},
		{"empty defaults to user", "", RoleUser, false},
		{"blank defaults to user", "   ", RoleUser, false},
		{"unknown role", "SUPERUSER", "", true},
		{"garbage", "42", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewUser_ZeroBalance(t *testing.T) {
	u := NewUser("alice", "$2a$10$hash", RoleUser)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.Balance.IsZero())
	assert.False(t, u.CreatedAt.IsZero())
}

func TestUser_ApplyBalanceDelta(t *testing.T) {
	u := NewUser("bob", "hash", RoleUser)

	require.NoError(t, u.ApplyBalanceDelta(decimal.RequireFromString("300.00")))
	assert.True(t, u.Balance.Equal(decimal.RequireFromString("300.00")))

	require.NoError(t, u.ApplyBalanceDelta(decimal.RequireFromString("-120.00")))
	assert.True(t, u.Balance.Equal(decimal.RequireFromString("180.00")))
}

func TestUser_ApplyBalanceDelta_RejectsNegativeResult(t *testing.T) {
	u := NewUser("carol", "hash", RoleUser)
	require.NoError(t, u.ApplyBalanceDelta(decimal.RequireFromString("50.00")))

	err := u.ApplyBalanceDelta(decimal.RequireFromString("-50.01"))
	assert.Error(t, err)
	// Balance untouched on failure.
	assert.True(t, u.Balance.Equal(decimal.RequireFromString("50.00")))
}

func TestUser_ApplyBalanceDelta_ToExactZero(t *testing.T) {
	u := NewUser("dave", "hash", RoleUser)
	require.NoError(t, u.ApplyBalanceDelta(decimal.RequireFromString("10.00")))
	require.NoError(t, u.ApplyBalanceDelta(decimal.RequireFromString("-10.00")))
	assert.True(t, u.Balance.IsZero())
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, NewUser("root", "hash", RoleAdmin).IsAdmin())
	assert.False(t, NewUser("joe", "hash", RoleUser).IsAdmin())
}

func TestTransaction_IsSelfDirected(t *testing.T) {
	tests := []struct {
		name     string
		sender   int64
		receiver int64
		want     bool
	}{
		{"deposit shape", 7, 7, true},
		{"transfer shape", 7, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{SenderID: tt.sender, ReceiverID: tt.receiver}
			assert.Equal(t, tt.want, tx.IsSelfDirected())
		})
	}
}

func TestTransactionType_Constants(t *testing.T) {
	assert.Equal(t, TransactionType("DEPOSIT"), TransactionTypeDeposit)
	assert.Equal(t, TransactionType("WITHDRAW"), TransactionTypeWithdraw)
	assert.Equal(t, TransactionType("TRANSFER"), TransactionTypeTransfer)
}
