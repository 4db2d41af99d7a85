package shared

import "github.com/shopspring/decimal"

// CurrencyPlaces is the precision of every persisted monetary amount
const CurrencyPlaces = 2

// RoundMoney rounds an amount to currency precision
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPlaces)
}

// MoneyFromFloat converts a float computation result into a currency amount
func MoneyFromFloat(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(CurrencyPlaces)
}

// ScaleMoney multiplies an amount by a float factor without rounding
func ScaleMoney(amount decimal.Decimal, factor float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(factor))
}
