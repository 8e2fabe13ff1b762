package handler

import (
	"time"

	"banking-ledger/internal/adapter/http/dto"
	"banking-ledger/internal/adapter/http/middleware"
	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"
	"banking-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles account and money-movement endpoints. The acting
// account is always the authenticated caller; account ids in the URL are
// deliberately not accepted.
type AccountHandler struct {
	ledger ports.LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledger ports.LedgerService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// GetAccount handles GET /api/v1/account.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	statement, err := h.ledger.GetAccount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	transactions := make([]dto.TransactionResponse, 0, len(statement.History))
	for _, txn := range statement.History {
		transactions = append(transactions, toTransactionResponse(&txn))
	}

	response.OK(c, dto.AccountResponse{
		UserID:       userID,
		Balance:      statement.Balance.StringFixed(2),
		Transactions: transactions,
	})
}

// Deposit handles POST /api/v1/account/deposit.
func (h *AccountHandler) Deposit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.ledger.Deposit(c.Request.Context(), userID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Withdraw handles POST /api/v1/account/withdraw.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.ledger.Withdraw(c.Request.Context(), userID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Transfer handles POST /api/v1/account/transfer.
func (h *AccountHandler) Transfer(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.ledger.Transfer(c.Request.Context(), userID, req.ReceiverID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

func callerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:         txn.ID,
		SenderID:   txn.SenderID,
		ReceiverID: txn.ReceiverID,
		Amount:     txn.Amount.StringFixed(2),
		Type:       string(txn.Type),
		CreatedAt:  txn.CreatedAt.UTC().Format(time.RFC3339),
	}
}
