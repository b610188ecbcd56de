package models

import "github.com/shopspring/decimal"

func init() {
	// Prices go out as JSON numbers, the way the storefront reads them.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)
