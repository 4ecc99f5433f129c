package entity

import "github.com/shopspring/decimal"

// Product representa un SKU del catálogo.
type Product struct {
	SKUID       int64
	ProductName string
	BasePrice   decimal.Decimal // >= 0
}
