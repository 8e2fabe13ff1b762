package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// NormalizeRole maps free-form input to a Role. Empty input defaults to USER.
func NormalizeRole(raw string) (Role, error) {
	r := strings.ToUpper(strings.TrimSpace(raw))
	switch r {
	case "":
		return RoleUser, nil
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("role must be USER or ADMIN, got %q", raw)
	}
}

// User is an account holder. Username is immutable after creation and the
// balance is only ever changed through ApplyBalanceDelta.
type User struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"` // Never expose
	Balance      decimal.Decimal `json:"balance"`
	Role         Role            `json:"role"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewUser constructs a user with a zero balance. The password hash is produced
// by the credential component; raw passwords never reach the domain.
func NewUser(username, passwordHash string, role Role) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      decimal.Zero,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

// ApplyBalanceDelta mutates the balance by delta, rejecting any result below
// zero. This is the only balance mutation the domain exposes.
func (u *User) ApplyBalanceDelta(delta decimal.Decimal) error {
	next := u.Balance.Add(delta)
	if next.IsNegative() {
		return fmt.Errorf("balance of user %d would drop below zero", u.ID)
	}
	u.Balance = next
	return nil
}

// IsAdmin returns true if the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
