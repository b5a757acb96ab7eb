package admin

import (
	"strings"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/http/handlers/shared"
	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/models"
	"github.com/taazabazaar/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderFilter(c *gin.Context) repository.OrderListFilter {
	page, pageSize := shared.QueryPagination(c)
	return repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   strings.TrimSpace(c.Query("user_id")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
}

// ListOrders 后台订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.OrderService.ListAdmin(orderFilter(c))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, orders)
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBadRequest(c, "status is required")
		return
	}
	order, err := h.OrderService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, order)
}

// SubscribeOrders 以 SSE 推送一次订单快照后结束
func (h *Handler) SubscribeOrders(c *gin.Context) {
	unsubscribe, err := h.OrderService.Subscribe(c.Request.Context(), orderFilter(c), func(orders []models.Order) {
		c.SSEvent(constants.SubscriptionEventOrders, orders)
		c.Writer.Flush()
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	defer unsubscribe()
}
