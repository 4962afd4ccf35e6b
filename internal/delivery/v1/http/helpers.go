package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/shopspring/decimal"
)

const maxBodySize = 1 << 20

// ApiResponse — общий конверт всех ответов API.
type ApiResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func NewApiResponse(code int, message string, data any) *ApiResponse {
	return &ApiResponse{
		Code:    code,
		Status:  statusName(code),
		Message: message,
		Data:    data,
	}
}

// statusName возвращает имя статуса в виде BAD_REQUEST, NOT_FOUND и т.п.
func statusName(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}

var errorStatuses = []struct {
	err  error
	code int
}{
	{e.ErrStatusBadRequest, http.StatusBadRequest},
	{e.ErrInvalidJSON, http.StatusBadRequest},
	{e.ErrProductTypeRequired, http.StatusBadRequest},
	{e.ErrInvalidProductType, http.StatusBadRequest},
	{e.ErrProductSellingStatusRequired, http.StatusBadRequest},
	{e.ErrInvalidSellingStatus, http.StatusBadRequest},
	{e.ErrProductNameRequired, http.StatusBadRequest},
	{e.ErrPriceMustBePositive, http.StatusBadRequest},
	{e.ErrInvalidPrice, http.StatusBadRequest},
	{e.ErrNoProducts, http.StatusBadRequest},
	{e.ErrInvalidOrderID, http.StatusBadRequest},
	{e.ErrInvalidTimeWindow, http.StatusBadRequest},
	{e.ErrInvalidOrderStatus, http.StatusBadRequest},
	{e.ErrInvalidDate, http.StatusBadRequest},
	{e.ErrEmailRequired, http.StatusBadRequest},
	{e.ErrProductNotFound, http.StatusNotFound},
	{e.ErrOrderNotFound, http.StatusNotFound},
	{e.ErrInvalidStatusTransition, http.StatusConflict},
	{e.ErrProductNumberConflict, http.StatusConflict},
	{e.ErrMailSendFailed, http.StatusBadGateway},
}

// ToHTTPResponse сопоставляет ошибку слоя usecase с HTTP-статусом и сообщением для клиента.
// Неизвестные ошибки скрываются за 500.
func ToHTTPResponse(err error) (int, string) {
	for _, s := range errorStatuses {
		if errors.Is(err, s.err) {
			return s.code, s.err.Error()
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	writeJSON(w, code, NewApiResponse(code, msg, nil))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, NewApiResponse(status, statusName(status), data))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// decodeJSON читает тело запроса не больше maxBodySize.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrInvalidJSON)
	}

	return nil
}

// parsePrice переводит цену из запроса в целые воны.
// Дробная или слишком большая цена отклоняется; знак проверяет usecase.
func parsePrice(d decimal.Decimal) (int64, error) {
	maxPrice := decimal.NewFromInt(1_000_000_000)

	if !d.IsInteger() {
		return 0, e.ErrInvalidPrice
	}

	if d.Abs().GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	return d.IntPart(), nil
}
