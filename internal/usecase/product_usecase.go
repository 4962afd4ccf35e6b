package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/jitter"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const (
	sellingProductsKey = "selling-products"
	// sellingProductsLoadTimeout ограничивает общую загрузку, которая не зависит от отмены отдельных запросов
	sellingProductsLoadTimeout = 5 * time.Second
	cacheFillTimeout           = 500 * time.Millisecond
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	productRepo ProductRepository
	txManager   TxManager
	cacheRepo   CacheRepository
	logger      logger.Logger
	maxRetries  int
	retryDelay  time.Duration
	group       singleflight.Group

	// cacheMu упорядочивает фоновое заполнение кэша и его инвалидацию.
	// cacheGen растёт при каждой инвалидации: загрузка, начатая до неё, в кэш не пишется.
	cacheMu  sync.Mutex
	cacheGen uint64
}

func NewProductUC(
	productRepo ProductRepository,
	txManager TxManager,
	cacheRepo CacheRepository,
	logger logger.Logger,
	maxRetries int,
	retryDelay time.Duration,
) *ProductUseCase {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &ProductUseCase{
		productRepo: productRepo,
		txManager:   txManager,
		cacheRepo:   cacheRepo,
		logger:      logger,
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
	}
}

// CreateProduct регистрирует товар со следующим порядковым номером.
// Номер уникален на уровне БД: при конфликте попытка повторяется целиком в новой транзакции.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductInfo, error) {
	const (
		op       = "ProductUseCase.CreateProduct"
		maxDelay = time.Second
	)

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		product *domain.Product
		err     error
	)
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		product, err = p.createWithNextNumber(ctx, req)
		if err == nil {
			break
		}

		if !errors.Is(err, e.ErrDuplicateProductNumber) {
			return nil, e.Wrap(op, err)
		}

		if attempt == p.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("%w after %d attempts", e.ErrProductNumberConflict, p.maxRetries))
		}

		sleepTime := jitter.ExponentialBackoff(p.retryDelay, maxDelay, attempt, jitter.DefaultJitter)
		p.logger.Warnf("product number conflict, retrying in %v (attempt %d)", sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	// Список продаваемых товаров в кэше устарел
	if err := p.invalidateSellingProducts(ctx); err != nil {
		p.logger.Warnf("Failed to invalidate selling products: %v", e.Wrap(op, err))
	}

	info := NewProductInfo(product)
	return &info, nil
}

// createWithNextNumber читает последний номер, вычисляет следующий и сохраняет товар в одной транзакции.
func (p *ProductUseCase) createWithNextNumber(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	var created *domain.Product
	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		next, err := p.nextProductNumber(ctx)
		if err != nil {
			return err
		}

		created, err = p.productRepo.Create(ctx, domain.NewProduct(next, req.Type, req.SellingStatus, req.Name, req.Price))
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// nextProductNumber вычисляет номер следующего товара по последнему номеру в каталоге.
func (p *ProductUseCase) nextProductNumber(ctx context.Context) (string, error) {
	last, exists, err := p.productRepo.GetLastProductNumber(ctx)
	if err != nil {
		return "", err
	}

	return domain.NextProductNumber(last, exists)
}

// GetSellingProducts возвращает товары, доступные для показа в киоске (SELLING и HOLD).
// Сначала читает кэш; одновременные промахи схлопываются в один запрос к БД.
// Отмена запроса прерывает только ожидание этого вызывающего, общая загрузка продолжается.
func (p *ProductUseCase) GetSellingProducts(ctx context.Context) ([]ProductInfo, error) {
	const op = "ProductUseCase.GetSellingProducts"

	cached, ok, err := p.cacheRepo.GetSellingProducts(ctx)
	if err != nil {
		p.logger.Warnf("Failed to read selling products from cache: %v", e.Wrap(op, err))
	} else if ok {
		return cached, nil
	}

	ch := p.group.DoChan(sellingProductsKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sellingProductsLoadTimeout)
		defer cancel()

		gen := p.cacheGeneration()
		products, err := p.productRepo.GetBySellingStatuses(loadCtx, domain.ForDisplay())
		if err != nil {
			return nil, err
		}

		result := make([]ProductInfo, 0, len(products))
		for i := range products {
			result = append(result, NewProductInfo(&products[i]))
		}

		// Фоновое добавление в кэш
		go p.fillSellingProducts(gen, result)

		return result, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, e.Wrap(op, res.Err)
		}
		return res.Val.([]ProductInfo), nil
	case <-ctx.Done():
		return nil, e.Wrap(op, ctx.Err())
	}
}

func (p *ProductUseCase) cacheGeneration() uint64 {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	return p.cacheGen
}

// invalidateSellingProducts удаляет список из кэша и отменяет запись загрузок, начатых раньше.
func (p *ProductUseCase) invalidateSellingProducts(ctx context.Context) error {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.cacheGen++
	return p.cacheRepo.DeleteSellingProducts(ctx)
}

// fillSellingProducts кладёт загруженный список в кэш, если с начала загрузки его не инвалидировали.
func (p *ProductUseCase) fillSellingProducts(gen uint64, products []ProductInfo) {
	const op = "ProductUseCase.fillSellingProducts"

	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	if p.cacheGen != gen {
		p.logger.Debugf("Selling products changed during load, skipping cache fill")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
	defer cancel()

	if err := p.cacheRepo.SetSellingProducts(ctx, products); err != nil {
		p.logger.Warnf("Failed to cache selling products in background: %v", e.Wrap(op, err))
	}
}

// validateProduct проверяет корректность входных данных запроса на регистрацию товара.
func (p *ProductUseCase) validateProduct(req *CreateProductReq) error {
	if req.Type == "" {
		return e.ErrProductTypeRequired
	}

	if !req.Type.IsValid() {
		return e.ErrInvalidProductType
	}

	if req.SellingStatus == "" {
		return e.ErrProductSellingStatusRequired
	}

	if !req.SellingStatus.IsValid() {
		return e.ErrInvalidSellingStatus
	}

	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price <= 0 {
		return e.ErrPriceMustBePositive
	}

	return nil
}
