package domain

import (
	"fmt"
	"math"
	"strconv"

	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
)

// FirstProductNumber выдаётся первому товару в пустом каталоге.
const FirstProductNumber = "001"

// NextProductNumber вычисляет номер следующего товара по последнему выданному номеру.
// exists == false означает, что в каталоге ещё нет товаров.
// Номер дополняется нулями до трёх цифр; начиная с 1000 просто растёт в длину.
func NextProductNumber(last string, exists bool) (string, error) {
	if !exists {
		return FirstProductNumber, nil
	}

	n, err := strconv.ParseUint(last, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", e.ErrInvalidProductNumber, last)
	}
	// Следующего номера нет: n+1 обнулился бы и номера пошли бы заново
	if n == math.MaxUint64 {
		return "", fmt.Errorf("%w: %q is the largest number", e.ErrInvalidProductNumber, last)
	}

	return fmt.Sprintf("%03d", n+1), nil
}
