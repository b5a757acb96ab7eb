package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyJSONIsNumberWithTwoDecimals(t *testing.T) {
	raw, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: NewMoneyFromDecimal(decimal.RequireFromString("40.456"))})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `{"price":40.46}` {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12.5","b":99.999}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.A.String() != "12.50" {
		t.Fatalf("unexpected a: %s", payload.A.String())
	}
	if payload.B.String() != "100.00" {
		t.Fatalf("unexpected b: %s", payload.B.String())
	}
}

func TestQuantityKeepsFraction(t *testing.T) {
	var q Quantity
	if err := json.Unmarshal([]byte(`1.5`), &q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !q.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("unexpected quantity: %s", q.String())
	}
	raw, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != "1.5" {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestProductStockStatus(t *testing.T) {
	cases := map[string]string{
		"0":   "out_of_stock",
		"-1":  "out_of_stock",
		"9.5": "low_stock",
		"10":  "in_stock",
	}
	for stock, want := range cases {
		p := Product{Stock: NewQuantity(decimal.RequireFromString(stock))}
		if got := p.StockStatus(); got != want {
			t.Fatalf("stock %s: want %s got %s", stock, want, got)
		}
	}
}
