package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/cafe-kiosk/internal/cfg"
	"github.com/DRSN-tech/cafe-kiosk/internal/repository/redis/converter"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/clients"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const sellingProductsKey = "products:selling"

// CacheRepo кэширует список товаров, показываемых в киоске.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetSellingProducts возвращает закэшированный список. false означает промах.
// Повреждённое значение удаляется и считается промахом.
func (c *CacheRepo) GetSellingProducts(ctx context.Context) ([]usecase.ProductInfo, bool, error) {
	val, err := c.client.Client.Get(ctx, sellingProductsKey).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}

		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := c.unmarshalProducts([]byte(val))
	if err != nil {
		c.logger.Warnf("Redis unmarshal failed, dropping key %s: %v", sellingProductsKey, e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(ctx, sellingProductsKey).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false, nil
	}

	return c.conv.ToArrUseCase(models), true, nil
}

// SetSellingProducts сохраняет список с TTL из конфигурации.
func (c *CacheRepo) SetSellingProducts(ctx context.Context, products []usecase.ProductInfo) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, sellingProductsKey, data, c.cfg.ProductTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteSellingProducts сбрасывает кэш после изменения каталога.
func (c *CacheRepo) DeleteSellingProducts(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, sellingProductsKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) unmarshalProducts(data []byte) ([]converter.ProductInfoRedisModel, error) {
	var models []converter.ProductInfoRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, err
	}

	if models == nil {
		return nil, fmt.Errorf("empty cache value for key %s", sellingProductsKey)
	}

	return models, nil
}
