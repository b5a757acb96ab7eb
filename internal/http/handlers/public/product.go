package public

import (
	"strings"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/http/handlers/shared"
	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/repository"
	"github.com/taazabazaar/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultFreshPicks = 6

func productFilter(c *gin.Context) repository.ProductListFilter {
	page, pageSize := shared.QueryPagination(c)
	return repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
}

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.ProductService.List(productFilter(c))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, products)
}

// GetFreshPicks 首页推荐（有库存商品）
func (h *Handler) GetFreshPicks(c *gin.Context) {
	products, err := h.ProductService.FreshPicks(shared.QueryInt(c, "limit", defaultFreshPicks))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.Get(c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, product)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.ProductService.Categories()
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, categories)
}

// SubscribeProducts 以 SSE 推送一次商品快照后结束
func (h *Handler) SubscribeProducts(c *gin.Context) {
	unsubscribe, err := h.ProductService.Subscribe(c.Request.Context(), productFilter(c), func(products []service.ProductView) {
		c.SSEvent(constants.SubscriptionEventProducts, products)
		c.Writer.Flush()
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	defer unsubscribe()
}
