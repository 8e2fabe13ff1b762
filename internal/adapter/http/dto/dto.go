package dto

// RegisterRequest is the request body for user self-registration.
// The role is always USER; admin accounts go through /auth/register-admin.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_username"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// AdminRegisterRequest is the request body for admin registration.
type AdminRegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_username"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token for refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AmountRequest is the request body for deposits and withdrawals.
// The amount travels as a string so the value never passes through
// binary floating point.
type AmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// TransferRequest is the request body for transfers between accounts.
type TransferRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TokenResponse is the response body for login and refresh.
type TokenResponse struct {
	AccessToken   string `json:"access_token"`
	AccessExpiry  int64  `json:"access_expiry"` // Unix timestamp
	RefreshToken  string `json:"refresh_token"`
	RefreshExpiry int64  `json:"refresh_expiry"` // Unix timestamp
}

// TransactionResponse is the response body for a single ledger entry.
type TransactionResponse struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Amount     string `json:"amount"`
	Type       string `json:"type"`
	CreatedAt  string `json:"created_at"`
}

// AccountResponse is the response for the balance-and-history query.
type AccountResponse struct {
	UserID       int64                 `json:"user_id"`
	Balance      string                `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}
