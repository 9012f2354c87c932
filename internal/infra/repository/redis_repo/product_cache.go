package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dominion116/StyleHub/internal/domain/model"
	"github.com/Dominion116/StyleHub/internal/service"
	"github.com/redis/go-redis/v9"
)

const productCacheTTL = 10 * time.Minute

/*	redis 專注商品讀取快取
	結構:
	stylehub:product:{id} -> 商品JSON
	寫入方負責在目錄或庫存變動後讓快取失效*/

type ProductCache struct {
	productCache *redis.Client
}

func NewProductCache(productCache *redis.Client) *ProductCache {
	return &ProductCache{productCache: productCache}
}

func generateProductKey(productID uint64) string {
	return fmt.Sprintf("stylehub:product:%d", productID)
}

// 取得快取商品
// cache miss回傳 nil, nil
func (s *ProductCache) GetProduct(ctx context.Context, productID uint64) (*model.Product, error) {
	redisKey := generateProductKey(productID)
	data, err := s.productCache.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductCache) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	redisKey := generateProductKey(product.ID)
	return s.productCache.Set(ctx, redisKey, data, productCacheTTL).Err()
}

// DeleteProduct 直接刪除快取資料
func (s *ProductCache) DeleteProduct(ctx context.Context, productID uint64) error {
	redisKey := generateProductKey(productID)
	return s.productCache.Del(ctx, redisKey).Err()
}

var _ service.ProductCache = (*ProductCache)(nil)
