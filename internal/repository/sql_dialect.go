package repository

import (
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperatorByDialect 大小写不敏感的 LIKE 运算符
func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		// sqlite 的 LIKE 对 ASCII 默认不区分大小写
		return "LIKE"
	}
}

// nameSearchCondition 构建按名称模糊搜索的条件
func nameSearchCondition(db *gorm.DB, column string) string {
	return strings.TrimSpace(column) + " " + likeOperatorByDialect(dbDialectName(db)) + " ?"
}

// stockDecrementExpr 扣减库存并在 0 处截断
func stockDecrementExpr() string {
	return "CASE WHEN stock - ? < 0 THEN 0 ELSE stock - ? END"
}
