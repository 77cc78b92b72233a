package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParsePrice(t *testing.T) {
	cases := []struct {
		price   string
		want    int64
		wantErr bool
	}{
		{"19.99", 1999, false},
		{"5", 500, false},
		{"0.01", 1, false},
		{"120.5", 12050, false},
		{"0", 0, true},
		{"-3.50", 0, true},
		{"1.999", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := parsePrice(c.price)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPrice, "price %q", c.price)
			continue
		}
		require.NoError(t, err, "price %q", c.price)
		assert.Equal(t, c.want, got, "price %q", c.price)
	}
}

func TestCreateProductParsesPriceToUnits(t *testing.T) {
	repo := &mockProductRepo{}
	svc := NewProductService(repo, nil, nil)

	product, err := svc.CreateProduct(context.Background(), "Keyboard", "Logi", "SKU1", "19.99", "kb.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(1999), product.Price)
	assert.NotZero(t, product.ProductID)
}

func TestCreateProductMissingFields(t *testing.T) {
	repo := &mockProductRepo{}
	svc := NewProductService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, "", "Logi", "SKU1", "19.99", "kb.jpg")
	assert.ErrorIs(t, err, ErrMissingProductFields)
	_, err = svc.CreateProduct(ctx, "Keyboard", "Logi", "SKU1", "", "kb.jpg")
	assert.ErrorIs(t, err, ErrMissingProductFields)

	products, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGetProductByCodeFirstMatch(t *testing.T) {
	repo := &mockProductRepo{}
	svc := NewProductService(repo, nil, nil)
	ctx := context.Background()

	// 同code兩筆，取product_id最小的
	require.NoError(t, repo.CreateProduct(ctx, &model.Product{Code: "SKU1", Name: "First", Price: 100}))
	require.NoError(t, repo.CreateProduct(ctx, &model.Product{Code: "SKU1", Name: "Second", Price: 200}))

	product, err := svc.GetProductByCode(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "First", product.Name)
	assert.Equal(t, int64(100), product.Price)
}

func TestGetProductByCodeNotFound(t *testing.T) {
	svc := NewProductService(&mockProductRepo{}, nil, nil)

	_, err := svc.GetProductByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductByCodeUsesCache(t *testing.T) {
	repo := &mockProductRepo{}
	cache := newMockProductCache()
	svc := NewProductService(repo, cache, nil)
	ctx := context.Background()

	require.NoError(t, repo.CreateProduct(ctx, &model.Product{Code: "SKU1", Name: "Keyboard", Price: 500}))

	// miss -> db -> 回填快取
	_, err := svc.GetProductByCode(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// 第二次直接命中
	_, err = svc.GetProductByCode(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.sets)
}

func TestUpdateProductInvalidatesCache(t *testing.T) {
	repo := &mockProductRepo{}
	cache := newMockProductCache()
	svc := NewProductService(repo, cache, nil)
	ctx := context.Background()

	require.NoError(t, repo.CreateProduct(ctx, &model.Product{Code: "SKU1", Name: "Keyboard", Price: 500}))
	_, err := svc.GetProductByCode(ctx, "SKU1")
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, "SKU1", strPtr("Mech Keyboard"), nil, strPtr("25.00"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Mech Keyboard", updated.Name)
	assert.Equal(t, int64(2500), updated.Price)

	// 舊快取已失效，下一次讀取回db拿新資料
	product, err := svc.GetProductByCode(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "Mech Keyboard", product.Name)
}

func TestUpdateProductRequiresAtLeastOneField(t *testing.T) {
	svc := NewProductService(&mockProductRepo{}, nil, nil)

	_, err := svc.UpdateProduct(context.Background(), "SKU1", nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrMissingProductFields)
}

func TestDeleteProduct(t *testing.T) {
	repo := &mockProductRepo{}
	cache := newMockProductCache()
	svc := NewProductService(repo, cache, nil)
	ctx := context.Background()

	require.NoError(t, repo.CreateProduct(ctx, &model.Product{Code: "SKU1", Name: "Keyboard", Price: 500}))
	_, err := svc.GetProductByCode(ctx, "SKU1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, "SKU1"))

	_, err = svc.GetProductByCode(ctx, "SKU1")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// 不存在再刪一次
	err = svc.DeleteProduct(ctx, "SKU1")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
