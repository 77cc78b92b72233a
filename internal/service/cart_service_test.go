package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/keylock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartServiceForTest(products ...model.Product) (*CartService, *mockCartRepo) {
	cartRepo := newMockCartRepo()
	finder := &mockProductFinder{products: products}
	svc := NewCartService(cartRepo, finder, keylock.New())
	return svc, cartRepo
}

func TestAddItemCreatesCartWithSnapshot(t *testing.T) {
	svc, _ := newCartServiceForTest(model.Product{
		ProductID: 1, Code: "SKU1", Name: "Keyboard", Brand: "Logi", Price: 500, Image: "kb.jpg",
	})
	ctx := context.Background()

	err := svc.AddItem(ctx, "s1", "SKU1", 2)
	require.NoError(t, err)

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "SKU1", cart.Items[0].Code)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(500), cart.Items[0].Price)
	assert.Equal(t, int64(1000), cart.Items[0].TotalPrice)
	assert.Equal(t, 2, cart.TotalQuantity)
	assert.Equal(t, int64(1000), cart.TotalPrice)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, _ := newCartServiceForTest(model.Product{
		ProductID: 1, Code: "SKU1", Name: "Keyboard", Brand: "Logi", Price: 500, Image: "kb.jpg",
	})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 2))
	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 3))

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, int64(2500), cart.Items[0].TotalPrice)
	assert.Equal(t, 5, cart.TotalQuantity)
	assert.Equal(t, int64(2500), cart.TotalPrice)
}

func TestAddItemPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	finder := &mockProductFinder{products: []model.Product{
		{ProductID: 1, Code: "SKU1", Name: "Keyboard", Brand: "Logi", Price: 500, Image: "kb.jpg"},
	}}
	svc := NewCartService(newMockCartRepo(), finder, keylock.New())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 1))

	// 商品漲價，既有line的單價快照不受影響
	finder.products[0].Price = 900
	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 1))

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(500), cart.Items[0].Price)
	assert.Equal(t, int64(1000), cart.Items[0].TotalPrice)
}

func TestAddItemInvalidQuantity(t *testing.T) {
	svc, cartRepo := newCartServiceForTest(model.Product{ProductID: 1, Code: "SKU1", Price: 500})
	ctx := context.Background()

	for _, qty := range []int{0, -1, -99} {
		err := svc.AddItem(ctx, "s1", "SKU1", qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	// 購物車完全沒被建立
	assert.False(t, cartRepo.exists("s1"))
}

func TestAddItemUnknownProductLeavesCartUnchanged(t *testing.T) {
	svc, cartRepo := newCartServiceForTest(model.Product{ProductID: 1, Code: "SKU1", Price: 500})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 1))
	before := cartRepo.snapshot("s1")

	err := svc.AddItem(ctx, "s1", "NOPE", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Equal(t, before, cartRepo.snapshot("s1"))
}

func TestAddItemScopedPerSession(t *testing.T) {
	svc, _ := newCartServiceForTest(
		model.Product{ProductID: 1, Code: "SKU1", Price: 500},
		model.Product{ProductID: 2, Code: "SKU2", Price: 300},
	)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 1))
	require.NoError(t, svc.AddItem(ctx, "s2", "SKU2", 4))

	cart1, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	cart2, err := svc.Get(ctx, "s2")
	require.NoError(t, err)

	require.Len(t, cart1.Items, 1)
	require.Len(t, cart2.Items, 1)
	assert.Equal(t, "SKU1", cart1.Items[0].Code)
	assert.Equal(t, "SKU2", cart2.Items[0].Code)
}

func TestRemoveItemLastLineDeletesCart(t *testing.T) {
	svc, cartRepo := newCartServiceForTest(model.Product{ProductID: 1, Code: "SKU1", Price: 500})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 2))
	require.NoError(t, svc.RemoveItem(ctx, "s1", "SKU1"))

	// 空車與Absent不可區分，key必須整個消失
	assert.False(t, cartRepo.exists("s1"))

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestRemoveItemUnknownCodeIsNoop(t *testing.T) {
	svc, cartRepo := newCartServiceForTest(model.Product{ProductID: 1, Code: "SKU1", Price: 500})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 2))
	before := cartRepo.snapshot("s1")

	require.NoError(t, svc.RemoveItem(ctx, "s1", "NOPE"))
	assert.Equal(t, before, cartRepo.snapshot("s1"))
}

func TestRemoveItemAbsentCart(t *testing.T) {
	svc, _ := newCartServiceForTest()
	err := svc.RemoveItem(context.Background(), "s1", "SKU1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestClearIsIdempotent(t *testing.T) {
	svc, cartRepo := newCartServiceForTest(model.Product{ProductID: 1, Code: "SKU1", Price: 500})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 2))
	require.NoError(t, svc.Clear(ctx, "s1"))
	assert.False(t, cartRepo.exists("s1"))

	// 已經Absent再清一次也成功
	require.NoError(t, svc.Clear(ctx, "s1"))
}

func TestViewIteratesInInsertionOrder(t *testing.T) {
	svc, _ := newCartServiceForTest(
		model.Product{ProductID: 1, Code: "SKU1", Price: 500},
		model.Product{ProductID: 2, Code: "SKU2", Price: 300},
		model.Product{ProductID: 3, Code: "SKU3", Price: 100},
	)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "s1", "SKU2", 1))
	require.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 1))
	require.NoError(t, svc.AddItem(ctx, "s1", "SKU3", 1))
	// 合併既有line不改變順序
	require.NoError(t, svc.AddItem(ctx, "s1", "SKU2", 1))

	lines, count, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var codes []string
	for line := range lines {
		codes = append(codes, line.Code)
	}
	assert.Equal(t, []string{"SKU2", "SKU1", "SKU3"}, codes)
}

func TestViewAbsentCartIsEmpty(t *testing.T) {
	svc, _ := newCartServiceForTest()

	lines, count, err := svc.View(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for range lines {
		t.Fatal("expected no lines for absent cart")
	}
}

func TestAddItemConcurrentSameSession(t *testing.T) {
	svc, _ := newCartServiceForTest(model.Product{ProductID: 1, Code: "SKU1", Price: 500})
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.AddItem(ctx, "s1", "SKU1", 1))
		}()
	}
	wg.Wait()

	// 任何合法交錯都不可吃掉更新
	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.Items[0].Quantity)
	assert.Equal(t, int64(500*workers), cart.TotalPrice)
}

func TestAddItemStorageErrorSurfaces(t *testing.T) {
	cartRepo := newMockCartRepo()
	cartRepo.setErr = errors.New("redis down")
	finder := &mockProductFinder{products: []model.Product{{ProductID: 1, Code: "SKU1", Price: 500}}}
	svc := NewCartService(cartRepo, finder, keylock.New())

	err := svc.AddItem(context.Background(), "s1", "SKU1", 1)
	assert.ErrorIs(t, err, cartRepo.setErr)
}
