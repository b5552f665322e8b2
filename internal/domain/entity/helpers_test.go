package entity_test

import "github.com/shopspring/decimal"

func decimalFrom(s string) decimal.Decimal { return decimal.RequireFromString(s) }
