package e

import "fmt"

var (
	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable     = fmt.Errorf("incorrect env variable")
	ErrUnsupportedStorageDriver = fmt.Errorf("unsupported storage driver")

	// 400 Bad Request
	ErrStatusBadRequest       = fmt.Errorf("bad request")
	ErrInvalidRequestBody     = fmt.Errorf("invalid request body")
	ErrMissingFields          = fmt.Errorf("missing required fields")
	ErrProductIDRequired      = fmt.Errorf("product id is required")
	ErrQuantityMustBePositive = fmt.Errorf("quantity must be positive")
	ErrInvalidPrice           = fmt.Errorf("invalid price")
	ErrPricePrecision         = fmt.Errorf("price must have at most 2 decimal places")
	ErrCurrencyRequired       = fmt.Errorf("currency is required")

	// 404 Not Found
	ErrLineItemNotFound = fmt.Errorf("cart line item not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
