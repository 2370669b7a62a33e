// Package model holds the domain records shared by the repository,
// service and handler layers.
package model

import "github.com/shopspring/decimal"

func init() {
	// Weights and heights are rendered as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
