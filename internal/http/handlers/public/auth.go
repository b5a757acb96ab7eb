package public

import (
	"github.com/taazabazaar/internal/http/handlers/shared"
	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 顾客登录请求
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 顾客登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBadRequest(c, "invalid request body")
		return
	}
	result, err := h.SessionService.SignIn(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, result)
}

// Register 顾客注册
func (h *Handler) Register(c *gin.Context) {
	var req service.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBadRequest(c, "invalid request body")
		return
	}
	result, err := h.SessionService.SignUp(c.Request.Context(), req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, result)
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBadRequest(c, "invalid request body")
		return
	}
	result, err := h.SessionService.SignInAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 退出登录，token 缺失或已失效时也返回成功
func (h *Handler) Logout(c *gin.Context) {
	token := shared.SessionTokenFromRequest(c)
	if err := h.SessionService.SignOut(c.Request.Context(), token); err != nil {
		shared.RequestLog(c).Warnw("session_sign_out_failed", "error", err)
	}
	response.Success(c, nil)
}
