//go:generate goverter gen github.com/DRSN-tech/storefront-backend/internal/repository/converter

package converter

import (
	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// StateConverter преобразует состояние корзины и избранного между domain и моделью хранилища.
// goverter:converter
// goverter:extend ConvertMoneyToAmount
// goverter:extend ConvertMoneyToCurrency
type StateConverter interface {
	ToLineModels(entities []domain.CartLine) []CartLineModel
	ToLines(models []CartLineModel) []domain.CartLine
	ToProductModels(entities []domain.Product) []ProductModel
	ToProducts(models []ProductModel) []domain.Product
}

func ConvertMoneyToAmount(m domain.Money) int64 {
	return m.Amount
}

func ConvertMoneyToCurrency(m domain.Money) string {
	return m.Currency
}
