package public

import (
	"github.com/taazabazaar/internal/geo"
	"github.com/taazabazaar/internal/http/handlers/shared"
	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/models"
	"github.com/taazabazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  *models.Quantity `json:"quantity"`
}

// CartQuantityRequest 修改数量请求
type CartQuantityRequest struct {
	Quantity *models.Quantity `json:"quantity"`
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	PermissionDenied bool     `json:"permission_denied"`
}

// PlaceOrderResponse 下单响应
type PlaceOrderResponse struct {
	Order   *models.Order `json:"order"`
	Message string        `json:"message"`
}

// GetCurrentUser 当前会话信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	response.Success(c, session)
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	current, err := h.CartService.Get(c.Request.Context(), session.ID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, current)
}

// AddCartItem 加入购物车，未指定数量时按 1 处理
func (h *Handler) AddCartItem(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		shared.RespondBadRequest(c, "product_id is required")
		return
	}
	var quantity models.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	current, err := h.CartService.AddProduct(c.Request.Context(), session.ID, req.ProductID, quantity.Decimal)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, current)
}

// UpdateCartItem 修改数量，小于等于 0 时移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBadRequest(c, "quantity must be a number")
		return
	}
	if req.Quantity == nil {
		shared.RespondBadRequest(c, "quantity is required")
		return
	}
	current, err := h.CartService.UpdateQuantity(c.Request.Context(), session.ID, c.Param("product_id"), req.Quantity.Decimal)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, current)
}

// DeleteCartItem 移除购物车商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	current, err := h.CartService.Remove(c.Request.Context(), session.ID, c.Param("product_id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, current)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	current, err := h.CartService.Clear(c.Request.Context(), session.ID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, current)
}

// CreateOrder 用当前购物车下单
func (h *Handler) CreateOrder(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			shared.RespondBadRequest(c, "invalid request body")
			return
		}
	}
	input := service.PlaceOrderInput{PermissionDenied: req.PermissionDenied}
	if req.Latitude != nil && req.Longitude != nil {
		input.Coordinates = &geo.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	result, err := h.OrderService.PlaceOrder(c.Request.Context(), session, input)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithMsg(c, result.Message, PlaceOrderResponse{Order: result.Order, Message: result.Message})
}

// ListOrders 我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	page, pageSize := shared.QueryPagination(c)
	orders, err := h.OrderService.ListForUser(session.ID, page, pageSize)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, orders)
}

// ListNotifications 我的通知
func (h *Handler) ListNotifications(c *gin.Context) {
	session, ok := shared.GetSession(c)
	if !ok {
		return
	}
	notifications, err := h.NotificationService.ListForUser(session.ID, shared.QueryInt(c, "limit", 0))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, notifications)
}
