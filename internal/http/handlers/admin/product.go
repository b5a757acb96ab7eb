package admin

import (
	"strings"

	"github.com/taazabazaar/internal/http/handlers/shared"
	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/repository"
	"github.com/taazabazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 后台商品列表（库存管理）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)
	products, err := h.ProductService.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, products)
}

// CreateProduct 新增商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBadRequest(c, "invalid request body")
		return
	}
	product, err := h.ProductService.Create(req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBadRequest(c, "invalid request body")
		return
	}
	product, err := h.ProductService.Update(c.Param("id"), req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.ProductService.Delete(c.Param("id")); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, nil)
}
