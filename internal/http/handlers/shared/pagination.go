package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// QueryPagination 从查询参数读取分页；两者都缺省时返回 0，表示不分页
func QueryPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	if page == 0 && pageSize == 0 {
		return 0, 0
	}
	return NormalizePagination(page, pageSize)
}

// QueryInt 读取整数查询参数
func QueryInt(c *gin.Context, key string, def int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return value
}
