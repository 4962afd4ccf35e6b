package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// Нарушение целостности данных
	ErrInvalidProductNumber   = fmt.Errorf("stored product number is not numeric")
	ErrDuplicateProductNumber = fmt.Errorf("product number already exists")

	// 400 Bad Request
	ErrStatusBadRequest             = fmt.Errorf("bad request")
	ErrInvalidJSON                  = fmt.Errorf("invalid json body")
	ErrProductTypeRequired          = fmt.Errorf("product type is required")
	ErrInvalidProductType           = fmt.Errorf("invalid product type")
	ErrProductSellingStatusRequired = fmt.Errorf("product selling status is required")
	ErrInvalidSellingStatus         = fmt.Errorf("invalid product selling status")
	ErrProductNameRequired          = fmt.Errorf("product name is required")
	ErrPriceMustBePositive          = fmt.Errorf("product price must be positive")
	ErrInvalidPrice                 = fmt.Errorf("invalid price")
	ErrNoProducts                   = fmt.Errorf("product numbers are required")
	ErrInvalidOrderID               = fmt.Errorf("invalid order id")
	ErrInvalidTimeWindow            = fmt.Errorf("invalid time window")
	ErrInvalidOrderStatus           = fmt.Errorf("invalid order status")
	ErrInvalidDate                  = fmt.Errorf("invalid date")
	ErrEmailRequired                = fmt.Errorf("email is required")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrOrderNotFound   = fmt.Errorf("order not found")

	// 409 Conflict
	ErrInvalidStatusTransition = fmt.Errorf("invalid order status transition")
	ErrProductNumberConflict   = fmt.Errorf("failed to allocate product number")

	// 502 Bad Gateway
	ErrMailSendFailed = fmt.Errorf("failed to send sales statistics mail")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
