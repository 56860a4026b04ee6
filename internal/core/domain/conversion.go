package domain

import "github.com/shopspring/decimal"

// ConvertedItem is the conversion of an AUD amount into one target currency.
// Rate and Amount are nil when the target has no usable rate.
type ConvertedItem struct {
	Code   string
	Rate   *float64
	Amount *decimal.Decimal
}

// ConversionResult converts an AUD amount into several targets at the latest rates.
type ConversionResult struct {
	Base      string
	Timestamp int64
	Amount    decimal.Decimal
	Targets   []ConvertedItem
}
