package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
)

type fakeTxManager struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return fn(ctx)
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products []domain.Product
	// lastNumber переопределяет вычисленный последний номер, если задан
	lastNumber *string
	// сколько первых вызовов Create завершатся конфликтом номера
	duplicates int
	creates    int
	loads      int

	// loadStarted получает сигнал о начале каждой выборки товаров для витрины
	loadStarted chan struct{}
	// block, если задан, задерживает выборку до закрытия канала или отмены ctx
	block chan struct{}
	// onLoad вызывается один раз после снимка данных, но до возврата результата
	onLoad func()
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	if f.duplicates > 0 {
		f.duplicates--
		return nil, fmt.Errorf("%w: %s", e.ErrDuplicateProductNumber, product.ProductNumber)
	}

	saved := *product
	saved.ID = int64(len(f.products) + 1)
	saved.CreatedAt = time.Now()
	f.products = append(f.products, saved)
	return &saved, nil
}

func (f *fakeProductRepo) GetLastProductNumber(_ context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lastNumber != nil {
		return *f.lastNumber, true, nil
	}
	if len(f.products) == 0 {
		return "", false, nil
	}
	return f.products[len(f.products)-1].ProductNumber, true, nil
}

func (f *fakeProductRepo) GetBySellingStatuses(ctx context.Context, statuses []domain.SellingStatus) ([]domain.Product, error) {
	f.mu.Lock()
	f.loads++
	var result []domain.Product
	for _, p := range f.products {
		for _, s := range statuses {
			if p.SellingStatus == s {
				result = append(result, p)
				break
			}
		}
	}
	onLoad := f.onLoad
	f.onLoad = nil
	f.mu.Unlock()

	if f.loadStarted != nil {
		f.loadStarted <- struct{}{}
	}
	if onLoad != nil {
		onLoad()
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return result, nil
}

func (f *fakeProductRepo) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

func (f *fakeProductRepo) GetByProductNumbers(_ context.Context, numbers []string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.Product
	for _, p := range f.products {
		for _, n := range numbers {
			if p.ProductNumber == n {
				result = append(result, p)
				break
			}
		}
	}
	return result, nil
}

type fakeCacheRepo struct {
	mu       sync.Mutex
	products []ProductInfo
	cached   bool
	sets     int
	deletes  int
}

func (f *fakeCacheRepo) GetSellingProducts(_ context.Context) ([]ProductInfo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products, f.cached, nil
}

func (f *fakeCacheRepo) SetSellingProducts(_ context.Context, products []ProductInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
	f.cached = true
	f.sets++
	return nil
}

func (f *fakeCacheRepo) DeleteSellingProducts(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = nil
	f.cached = false
	f.deletes++
	return nil
}

func (f *fakeCacheRepo) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	saved := *order
	saved.ID = f.nextID
	saved.Products = make([]domain.OrderProduct, len(order.Products))
	for i, p := range order.Products {
		p.ID = int64(i + 1)
		p.OrderID = saved.ID
		saved.Products[i] = p
	}
	f.orders[saved.ID] = &saved

	result := saved
	return &result, nil
}

func (f *fakeOrderRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	result := *o
	return &result, nil
}

func (f *fakeOrderRepo) UpdatePaymentCompleted(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.orders[order.ID]
	if !ok {
		return e.ErrOrderNotFound
	}
	stored.Status = order.Status
	stored.PaymentCompletedAt = order.PaymentCompletedAt
	return nil
}

func (f *fakeOrderRepo) FindOrdersBy(_ context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.Order
	for _, o := range f.orders {
		if o.Status != status || o.PaymentCompletedAt == nil {
			continue
		}
		at := *o.PaymentCompletedAt
		if at.Before(from) || !at.Before(to) {
			continue
		}
		result = append(result, *o)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// put сохраняет заказ как есть, включая статус и время оплаты.
func (f *fakeOrderRepo) put(order domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	order.ID = f.nextID
	f.orders[order.ID] = &order
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	saved := *event
	saved.ID = int64(len(f.events) + 1)
	f.events = append(f.events, &saved)
	return &saved, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(context.Context, int64) error { return nil }

func (f *fakeOutboxRepo) ReleaseProcessing(context.Context, int64) error { return nil }

func (f *fakeOutboxRepo) MarkAsFailed(context.Context, int64, string) error { return nil }

type fakeEncoder struct{}

func (fakeEncoder) EncodeOrderEvent(eventID string, eventType OutboxEventType, order *domain.Order, _ time.Time) ([]byte, error) {
	return []byte(fmt.Sprintf("%s:%s:%d", eventID, eventType, order.ID)), nil
}

type fakeMailClient struct {
	mu     sync.Mutex
	result bool
	sent   []SendMailReq
}

func (f *fakeMailClient) SendEmail(_ context.Context, from, to, subject, content string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, SendMailReq{FromEmail: from, ToEmail: to, Subject: subject, Content: content})
	return f.result
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	histories []domain.MailSendHistory
}

func (f *fakeHistoryRepo) Create(_ context.Context, history *domain.MailSendHistory) (*domain.MailSendHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	saved := *history
	saved.ID = int64(len(f.histories) + 1)
	f.histories = append(f.histories, saved)
	return &saved, nil
}

type fakeReportsInfra struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	cleaned  []string
}

func newFakeReportsInfra() *fakeReportsInfra {
	return &fakeReportsInfra{uploaded: make(map[string][]byte)}
}

func (f *fakeReportsInfra) UploadReport(_ context.Context, req *UploadReportReq) (*UploadReportRes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := "reports/" + req.Date.Format(dateLayout) + ".csv"
	f.uploaded[key] = req.Data
	return NewUploadReportRes(key), nil
}

func (f *fakeReportsInfra) CleanupReports(keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned = append(f.cleaned, keys...)
}
