package domain

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// Money хранит цену в минорных единицах валюты (пенсы, центы, копейки).
// Строковое представление для витрины выводится из Amount, а не хранится.
type Money struct {
	Amount   int64  // Сумма в минорных единицах
	Currency string // Код валюты ISO 4217
}

func NewMoney(amount int64, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// currencySymbols — символы для валют, которые витрина показывает без кода.
var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
	"RUB": "₽",
}

// ParsePrice конвертирует десятичную строку вида "280.00" в минорные единицы.
// Возвращает ошибку при пустой валюте, отрицательной цене и более чем двух знаках после запятой.
func ParsePrice(s string, currency string) (Money, error) {
	if strings.TrimSpace(currency) == "" {
		return Money{}, e.ErrCurrencyRequired
	}

	if strings.TrimSpace(s) == "" {
		return Money{}, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return Money{}, e.ErrInvalidPrice
	}

	// Верхняя граница: 10^9 в основной валюте
	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return Money{}, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return Money{}, e.ErrPricePrecision
	}

	minor := d.Mul(decimal.NewFromInt(100)).Round(0)

	return NewMoney(minor.IntPart(), strings.ToUpper(strings.TrimSpace(currency))), nil
}

// Display форматирует цену для витрины: "£280.00" для известных валют, "SEK 99.50" для остальных.
func (m Money) Display() string {
	value := decimal.NewFromInt(m.Amount).Div(decimal.NewFromInt(100)).StringFixed(2)

	if symbol, ok := currencySymbols[m.Currency]; ok {
		return symbol + value
	}

	return fmt.Sprintf("%s %s", m.Currency, value)
}
