package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型（保留 2 位小数，JSON 输出为数字）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoney 从整数创建金额
func NewMoney(amount int64) Money {
	return Money{Decimal: decimal.NewFromInt(amount)}
}

// MarshalJSON 输出 2 位小数的数字
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).StringFixed(2)), nil
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	d, err := decodeDecimal(b)
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

// Quantity 数量类型，允许小数（如 1.5 kg）
type Quantity struct {
	decimal.Decimal
}

// NewQuantity 从 decimal 创建数量
func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{Decimal: d}
}

// NewQuantityFromFloat 从 float 创建数量
func NewQuantityFromFloat(f float64) Quantity {
	return Quantity{Decimal: decimal.NewFromFloat(f)}
}

// MarshalJSON 输出为 JSON 数字
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal.String()), nil
}

// UnmarshalJSON 解析数量（字符串或数字）
func (q *Quantity) UnmarshalJSON(b []byte) error {
	d, err := decodeDecimal(b)
	if err != nil {
		return err
	}
	q.Decimal = d
	return nil
}

// Value 用于数据库写入
func (q Quantity) Value() (driver.Value, error) {
	return q.Decimal.Value()
}

// Scan 用于数据库读取
func (q *Quantity) Scan(value interface{}) error {
	return q.Decimal.Scan(value)
}

func decodeDecimal(b []byte) (decimal.Decimal, error) {
	if len(b) == 0 || string(b) == "null" {
		return decimal.Zero, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(s)
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(n.String())
}
