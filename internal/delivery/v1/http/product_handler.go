package http

import (
	"net/http"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// createProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создаёт товар со следующим порядковым номером
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Товар"
//	@Success		200		{object}	ApiResponse{data=ProductResponse}
//	@Failure		400		{object}	ApiResponse	"Ошибка валидации"
//	@Failure		409		{object}	ApiResponse	"Не удалось выдать номер"
//	@Router			/products/new [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		p.logger.Warnf("%d: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		p.logger.Warnf("%d: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), usecase.NewCreateProductReq(
		domain.ProductType(req.Type),
		domain.SellingStatus(req.SellingStatus),
		req.Name,
		price,
	))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// getSellingProducts
//
//	@Summary		Товары для киоска
//	@Description	Возвращает товары в статусах SELLING и HOLD
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	ApiResponse{data=[]ProductResponse}
//	@Router			/products/selling [get]
func (p *ProductHandler) getSellingProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.GetSellingProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to get selling products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(products))
}
