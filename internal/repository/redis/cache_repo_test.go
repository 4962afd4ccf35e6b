package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/cfg"
	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/repository/redis/converter"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/clients"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalProducts(t *testing.T) {
	repo := &CacheRepo{}

	models, err := repo.unmarshalProducts([]byte(`[{"id":1,"product_number":"001","type":"HANDMADE","selling_status":"SELLING","name":"americano","price":4000}]`))
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "001", models[0].ProductNumber)

	_, err = repo.unmarshalProducts([]byte(`null`))
	assert.Error(t, err)

	_, err = repo.unmarshalProducts([]byte(`{broken`))
	assert.Error(t, err)
}

func TestCacheRepo_Roundtrip(t *testing.T) {
	addr := os.Getenv("CAFEKIOSK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CAFEKIOSK_TEST_REDIS_ADDR is not set")
	}

	redisCfg := &cfg.RedisCfg{Addr: addr, Timeout: time.Second, DialTimeout: time.Second, ProductTTL: time.Minute}
	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	repo := NewCacheRepo(client, converter.NewProductInfoConverter(), redisCfg, logger.Nop{})
	ctx := context.Background()
	require.NoError(t, repo.DeleteSellingProducts(ctx))

	_, ok, err := repo.GetSellingProducts(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	products := []usecase.ProductInfo{
		{ID: 1, ProductNumber: "001", Type: domain.ProductTypeHandmade, SellingStatus: domain.SellingStatusSelling, Name: "americano", Price: 4000},
	}
	require.NoError(t, repo.SetSellingProducts(ctx, products))

	cached, ok, err := repo.GetSellingProducts(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, products, cached)

	require.NoError(t, repo.DeleteSellingProducts(ctx))
	_, ok, err = repo.GetSellingProducts(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
