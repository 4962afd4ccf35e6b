package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductUC struct {
	createReq *usecase.CreateProductReq
	created   *usecase.ProductInfo
	selling   []usecase.ProductInfo
	err       error
}

func (f *fakeProductUC) CreateProduct(_ context.Context, req *usecase.CreateProductReq) (*usecase.ProductInfo, error) {
	f.createReq = req
	return f.created, f.err
}

func (f *fakeProductUC) GetSellingProducts(context.Context) ([]usecase.ProductInfo, error) {
	return f.selling, f.err
}

type fakeOrderUC struct {
	createReq   *usecase.CreateOrderReq
	completeReq *usecase.CompletePaymentReq
	findReq     *usecase.FindOrdersReq
	order       *usecase.OrderInfo
	orders      []usecase.OrderInfo
	err         error
}

func (f *fakeOrderUC) CreateOrder(_ context.Context, req *usecase.CreateOrderReq) (*usecase.OrderInfo, error) {
	f.createReq = req
	return f.order, f.err
}

func (f *fakeOrderUC) CompletePayment(_ context.Context, req *usecase.CompletePaymentReq) (*usecase.OrderInfo, error) {
	f.completeReq = req
	return f.order, f.err
}

func (f *fakeOrderUC) FindOrders(_ context.Context, req *usecase.FindOrdersReq) ([]usecase.OrderInfo, error) {
	f.findReq = req
	return f.orders, f.err
}

type fakeStatisticsUC struct {
	req *usecase.OrderStatisticsReq
	res *usecase.OrderStatisticsRes
	err error
}

func (f *fakeStatisticsUC) SendOrderStatisticsMail(_ context.Context, req *usecase.OrderStatisticsReq) (*usecase.OrderStatisticsRes, error) {
	f.req = req
	return f.res, f.err
}

type fakeMailUC struct {
	req  *usecase.SendMailReq
	sent bool
}

func (f *fakeMailUC) SendMail(_ context.Context, req *usecase.SendMailReq) (bool, error) {
	f.req = req
	return f.sent, nil
}

type fakeHealth struct{ err error }

func (f fakeHealth) Ping() error { return f.err }

type testDeps struct {
	products *fakeProductUC
	orders   *fakeOrderUC
	stats    *fakeStatisticsUC
	mail     *fakeMailUC
	health   fakeHealth
}

func newTestRouter(deps *testDeps) http.Handler {
	r := chi.NewRouter()
	NewRouter(r, logger.Nop{}, nil, "").Init(deps.products, deps.orders, deps.stats, deps.mail, deps.health, time.UTC)
	return r
}

func newDeps() *testDeps {
	return &testDeps{
		products: &fakeProductUC{},
		orders:   &fakeOrderUC{},
		stats:    &fakeStatisticsUC{},
		mail:     &fakeMailUC{},
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestCreateProduct(t *testing.T) {
	deps := newDeps()
	deps.products.created = &usecase.ProductInfo{
		ID: 1, ProductNumber: "001", Type: domain.ProductTypeHandmade, SellingStatus: domain.SellingStatusSelling, Name: "americano", Price: 4000,
	}
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/products/new",
		`{"type":"HANDMADE","sellingStatus":"SELLING","name":"americano","price":4000}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Equal(t, "OK", env.Status)
	assert.Equal(t, "OK", env.Message)

	var data ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "001", data.ProductNumber)
	assert.Equal(t, int64(4000), data.Price)

	require.NotNil(t, deps.products.createReq)
	assert.Equal(t, domain.ProductTypeHandmade, deps.products.createReq.Type)
	assert.Equal(t, int64(4000), deps.products.createReq.Price)
}

func TestCreateProduct_ValidationMessage(t *testing.T) {
	deps := newDeps()
	deps.products.err = e.Wrap("ProductUseCase.CreateProduct", e.ErrProductTypeRequired)
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/products/new", `{"sellingStatus":"SELLING","name":"americano","price":4000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Status)
	assert.Equal(t, "product type is required", env.Message)
}

func TestCreateProduct_PriceFromString(t *testing.T) {
	deps := newDeps()
	deps.products.created = &usecase.ProductInfo{ID: 1, ProductNumber: "001"}
	h := newTestRouter(deps)

	rec, _ := do(t, h, http.MethodPost, "/api/v1/products/new",
		`{"type":"BAKERY","sellingStatus":"HOLD","name":"croissant","price":"3500"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3500), deps.products.createReq.Price)
}

func TestCreateProduct_FractionalPrice(t *testing.T) {
	deps := newDeps()
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/products/new",
		`{"type":"HANDMADE","sellingStatus":"SELLING","name":"americano","price":4000.5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrInvalidPrice.Error(), env.Message)
	assert.Nil(t, deps.products.createReq)
}

func TestCreateProduct_InvalidJSON(t *testing.T) {
	h := newTestRouter(newDeps())

	rec, env := do(t, h, http.MethodPost, "/api/v1/products/new", `{"type":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrInvalidJSON.Error(), env.Message)
}

func TestCreateProduct_NumberConflict(t *testing.T) {
	deps := newDeps()
	deps.products.err = e.Wrap("op", e.ErrProductNumberConflict)
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/products/new",
		`{"type":"HANDMADE","sellingStatus":"SELLING","name":"americano","price":4000}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Status)
}

func TestGetSellingProducts(t *testing.T) {
	deps := newDeps()
	deps.products.selling = []usecase.ProductInfo{
		{ID: 1, ProductNumber: "001", SellingStatus: domain.SellingStatusSelling},
		{ID: 2, ProductNumber: "002", SellingStatus: domain.SellingStatusHold},
	}
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodGet, "/api/v1/products/selling", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", env.Status)

	var data []ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 2)
	assert.Equal(t, "HOLD", data[1].SellingStatus)
}

func TestInternalErrorIsHidden(t *testing.T) {
	deps := newDeps()
	deps.products.err = errors.New("pq: connection refused")
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodGet, "/api/v1/products/selling", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Status)
	assert.Equal(t, e.ErrInternalServerError.Error(), env.Message)
}

func TestCreateOrder(t *testing.T) {
	deps := newDeps()
	registeredAt := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	deps.orders.order = &usecase.OrderInfo{
		ID: 10, Status: domain.OrderStatusCreated, TotalPrice: 4000, RegisteredAt: registeredAt,
		Products: []usecase.OrderProductInfo{{ProductID: 1, ProductNumber: "001", Price: 1000}, {ProductID: 2, ProductNumber: "002", Price: 3000}},
	}
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/orders/new",
		`{"productNumbers":["001","002"],"registeredAt":"2026-03-05T09:00:00Z"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", env.Status)
	var data OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(4000), data.TotalPrice)
	assert.Len(t, data.Products, 2)
	assert.Nil(t, data.PaymentCompletedAt)

	assert.Equal(t, []string{"001", "002"}, deps.orders.createReq.ProductNumbers)
	assert.Equal(t, registeredAt, deps.orders.createReq.RegisteredAt)
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	deps := newDeps()
	deps.orders.err = e.Wrap("op", e.ErrProductNotFound)
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/orders/new", `{"productNumbers":["404"]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Status)
	assert.True(t, deps.orders.createReq.RegisteredAt.IsZero())
}

func TestCompletePayment_InvalidID(t *testing.T) {
	deps := newDeps()
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/orders/abc/payment", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrInvalidOrderID.Error(), env.Message)
	assert.Nil(t, deps.orders.completeReq)
}

func TestCompletePayment_AlreadyPaid(t *testing.T) {
	deps := newDeps()
	deps.orders.err = e.Wrap("op", e.ErrInvalidStatusTransition)
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/orders/7/payment", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, e.ErrInvalidStatusTransition.Error(), env.Message)
	require.NotNil(t, deps.orders.completeReq)
	assert.Equal(t, int64(7), deps.orders.completeReq.OrderID)
	assert.True(t, deps.orders.completeReq.CompletedAt.IsZero())
}

func TestFindOrders(t *testing.T) {
	deps := newDeps()
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodGet, "/api/v1/orders?from=2026-03-05T00:00:00Z&to=2026-03-06T00:00:00Z", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(env.Data))
	require.NotNil(t, deps.orders.findReq)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), deps.orders.findReq.From.UTC())
	assert.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), deps.orders.findReq.To.UTC())
	assert.Equal(t, domain.OrderStatusPaymentCompleted, deps.orders.findReq.Status)
}

func TestFindOrders_BadWindow(t *testing.T) {
	deps := newDeps()
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodGet, "/api/v1/orders?from=yesterday&to=2026-03-06T00:00:00Z", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrInvalidTimeWindow.Error(), env.Message)
	assert.Nil(t, deps.orders.findReq)
}

func TestSendOrderStatisticsMail(t *testing.T) {
	deps := newDeps()
	deps.stats.res = &usecase.OrderStatisticsRes{
		OrderDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), OrderCount: 2, TotalPrice: 9000, ReportKey: "sales/2026/03/05/x.csv",
	}
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/orders/statistics/mail", `{"orderDate":"2026-03-05","email":"owner@cafe.kr"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var data OrderStatisticsResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "2026-03-05", data.OrderDate)
	assert.Equal(t, int64(9000), data.TotalPrice)

	require.NotNil(t, deps.stats.req)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), deps.stats.req.OrderDate)
	assert.Equal(t, "owner@cafe.kr", deps.stats.req.Email)
}

func TestSendOrderStatisticsMail_Errors(t *testing.T) {
	deps := newDeps()
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/orders/statistics/mail", `{"orderDate":"05.03.2026","email":"owner@cafe.kr"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrInvalidDate.Error(), env.Message)

	deps.stats.err = e.Wrap("op", e.ErrMailSendFailed)
	rec, env = do(t, h, http.MethodPost, "/api/v1/orders/statistics/mail", `{"orderDate":"2026-03-05","email":"owner@cafe.kr"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "BAD_GATEWAY", env.Status)
}

func TestSendMail(t *testing.T) {
	deps := newDeps()
	h := newTestRouter(deps)

	rec, env := do(t, h, http.MethodPost, "/api/v1/mail/send",
		`{"fromEmail":"a@cafe.kr","toEmail":"b@cafe.kr","subject":"hi","content":"hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sent":false}`, string(env.Data))
	require.NotNil(t, deps.mail.req)
	assert.Equal(t, "b@cafe.kr", deps.mail.req.ToEmail)
}

func TestHealthz(t *testing.T) {
	deps := newDeps()
	rec, env := do(t, newTestRouter(deps), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", env.Status)

	deps.health = fakeHealth{err: errors.New("down")}
	rec, env = do(t, newTestRouter(deps), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.Status)
}
