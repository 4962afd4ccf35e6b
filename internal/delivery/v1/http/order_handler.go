package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

type OrderHandler struct {
	orderUsecase      usecase.OrderUC
	statisticsUsecase usecase.OrderStatisticsUC
	logger            logger.Logger
	location          *time.Location
}

// NewOrderHandler создаёт обработчик заказов. location — часовой пояс кафе, в котором считаются сутки отчёта.
func NewOrderHandler(orderUsecase usecase.OrderUC, statisticsUsecase usecase.OrderStatisticsUC, logger logger.Logger, location *time.Location) *OrderHandler {
	if location == nil {
		location = time.Local
	}

	return &OrderHandler{
		orderUsecase:      orderUsecase,
		statisticsUsecase: statisticsUsecase,
		logger:            logger,
		location:          location,
	}
}

// createOrder
//
//	@Summary		Создание заказа
//	@Description	Создаёт заказ по номерам товаров. Цены фиксируются на момент создания
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Номера товаров"
//	@Success		200		{object}	ApiResponse{data=OrderResponse}
//	@Failure		400		{object}	ApiResponse
//	@Failure		404		{object}	ApiResponse	"Товар не найден"
//	@Router			/orders/new [post]
func (o *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		o.logger.Warnf("%d: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	var registeredAt time.Time
	if req.RegisteredAt != nil {
		registeredAt = *req.RegisteredAt
	}

	order, err := o.orderUsecase.CreateOrder(r.Context(), usecase.NewCreateOrderReq(req.ProductNumbers, registeredAt))
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// completePayment
//
//	@Summary		Оплата заказа
//	@Description	Переводит заказ в PAYMENT_COMPLETED
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"ID заказа"
//	@Param			request	body		CompletePaymentRequest	false	"Время оплаты"
//	@Success		200		{object}	ApiResponse{data=OrderResponse}
//	@Failure		404		{object}	ApiResponse	"Заказ не найден"
//	@Failure		409		{object}	ApiResponse	"Заказ уже оплачен"
//	@Router			/orders/{id}/payment [post]
func (o *OrderHandler) completePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, e.Wrap(chi.URLParam(r, "id"), e.ErrInvalidOrderID))
		return
	}

	var req CompletePaymentRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			o.logger.Warnf("%d: %v", http.StatusBadRequest, err)
			WriteError(w, err)
			return
		}
	}

	var completedAt time.Time
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	order, err := o.orderUsecase.CompletePayment(r.Context(), usecase.NewCompletePaymentReq(id, completedAt))
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// findOrders
//
//	@Summary		Поиск заказов
//	@Description	Заказы в статусе status, оплаченные в полуинтервале [from, to)
//	@Tags			orders
//	@Produce		json
//	@Param			from	query		string	true	"Начало окна, RFC3339"
//	@Param			to		query		string	true	"Конец окна (не включая), RFC3339"
//	@Param			status	query		string	false	"Статус заказа"	default(PAYMENT_COMPLETED)
//	@Success		200		{object}	ApiResponse{data=[]OrderResponse}
//	@Failure		400		{object}	ApiResponse
//	@Router			/orders [get]
func (o *OrderHandler) findOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		WriteError(w, e.Wrap("from", e.ErrInvalidTimeWindow))
		return
	}

	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		WriteError(w, e.Wrap("to", e.ErrInvalidTimeWindow))
		return
	}

	status := domain.OrderStatus(q.Get("status"))
	if status == "" {
		status = domain.OrderStatusPaymentCompleted
	}

	orders, err := o.orderUsecase.FindOrders(r.Context(), usecase.NewFindOrdersReq(from, to, status))
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrOrderResponse(orders))
}

// sendOrderStatisticsMail
//
//	@Summary		Рассылка статистики продаж
//	@Description	Считает выручку за день, выгружает CSV-отчёт и отправляет письмо
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		OrderStatisticsRequest	true	"Дата и адрес"
//	@Success		200		{object}	ApiResponse{data=OrderStatisticsResponse}
//	@Failure		400		{object}	ApiResponse
//	@Failure		502		{object}	ApiResponse	"Письмо не отправлено"
//	@Router			/orders/statistics/mail [post]
func (o *OrderHandler) sendOrderStatisticsMail(w http.ResponseWriter, r *http.Request) {
	var req OrderStatisticsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		o.logger.Warnf("%d: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.OrderDate, o.location)
	if err != nil {
		WriteError(w, e.Wrap(req.OrderDate, e.ErrInvalidDate))
		return
	}

	res, err := o.statisticsUsecase.SendOrderStatisticsMail(r.Context(), usecase.NewOrderStatisticsReq(date, req.Email))
	if err != nil {
		o.logger.Errorf(err, "failed to send order statistics for %s", req.OrderDate)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, OrderStatisticsResponse{
		OrderDate:  res.OrderDate.Format(dateLayout),
		OrderCount: res.OrderCount,
		TotalPrice: res.TotalPrice,
		ReportKey:  res.ReportKey,
	})
}
