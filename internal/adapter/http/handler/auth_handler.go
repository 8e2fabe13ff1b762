package handler

import (
	"net/http"

	"banking-ledger/internal/adapter/http/dto"
	"banking-ledger/internal/adapter/http/middleware"
	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"
	"banking-ledger/pkg/apperror"
	"banking-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc ports.AuthService
	ledger  ports.LedgerService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService, ledger ports.LedgerService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, ledger: ledger}
}

// Register handles POST /api/v1/auth/register. Self-registration always
// produces a USER account; the role field is not accepted here.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	user, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Password, string(domain.RoleUser))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toRegisterResponse(user))
}

// RegisterAdmin handles POST /api/v1/auth/register-admin.
// While the user table is empty the endpoint is open, so the very first
// admin can be created without a token. Afterwards only an authenticated
// ADMIN may create further accounts through it.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req dto.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	hasUsers, err := h.ledger.HasAnyUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if hasUsers {
		role, authenticated := c.Get(middleware.CtxRole)
		if !authenticated || role.(domain.Role) != domain.RoleAdmin {
			response.Error(c, apperror.ErrForbidden())
			return
		}
	}

	// Blank role defaults to ADMIN on this endpoint.
	roleName := req.Role
	if roleName == "" {
		roleName = string(domain.RoleAdmin)
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Password, roleName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toRegisterResponse(user))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	pair, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTokenResponse(pair))
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	pair, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTokenResponse(pair))
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"logged_out": true})
}

func toRegisterResponse(user *domain.User) dto.RegisterResponse {
	return dto.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

func toTokenResponse(pair *ports.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:   pair.AccessToken,
		AccessExpiry:  pair.AccessExpiry.Unix(),
		RefreshToken:  pair.RefreshToken,
		RefreshExpiry: pair.RefreshExpiry.Unix(),
	}
}

// HealthCheck handles GET /health — deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
