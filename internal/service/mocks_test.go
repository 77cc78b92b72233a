package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
)

// mockCartRepo 以JSON快照模擬整車覆寫儲存
type mockCartRepo struct {
	m      sync.Mutex
	carts  map[string][]byte
	getErr error
	setErr error
	delErr error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string][]byte)}
}

func (m *mockCartRepo) Get(_ context.Context, sessionID string) (*model.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	raw, ok := m.carts[sessionID]
	if !ok {
		return nil, redis_repo.ErrCartNotFound
	}
	var cart model.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (m *mockCartRepo) Set(_ context.Context, sessionID string, cart *model.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	m.carts[sessionID] = raw
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.carts, sessionID)
	return nil
}

// exists 檢查Absent狀態用
func (m *mockCartRepo) exists(sessionID string) bool {
	m.m.Lock()
	defer m.m.Unlock()
	_, ok := m.carts[sessionID]
	return ok
}

func (m *mockCartRepo) snapshot(sessionID string) []byte {
	m.m.Lock()
	defer m.m.Unlock()
	return m.carts[sessionID]
}

var _ redis_repo.ICartRepository = (*mockCartRepo)(nil)

// mockProductFinder 依插入順序模擬first-match catalog掃描
type mockProductFinder struct {
	products []model.Product
	err      error
}

func (m *mockProductFinder) GetProductByCode(_ context.Context, code string) (*model.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].Code == code {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

var _ ProductFinder = (*mockProductFinder)(nil)

// mockOrderRepo 模擬transaction語義: failAt筆失敗則整批不落地
type mockOrderRepo struct {
	m       sync.Mutex
	orders  []model.Order
	failAt  int // 0表示不失敗，n表示第n筆寫入時失敗
	failErr error
}

func (m *mockOrderRepo) CreateOrdersTx(_ context.Context, orders []model.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.failAt > 0 && len(orders) >= m.failAt {
		// rollback，不留任何partial row
		return m.failErr
	}
	m.orders = append(m.orders, orders...)
	return nil
}

func (m *mockOrderRepo) GetOrderByID(_ context.Context, id string) (*model.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.orders {
		if m.orders[i].OrderID.String() == id {
			return &m.orders[i], nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepo) GetOrdersByUsername(_ context.Context, username string) ([]model.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var result []model.Order
	for _, o := range m.orders {
		if o.Username == username {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) GetAllOrders(_ context.Context) ([]model.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]model.Order(nil), m.orders...), nil
}

var _ db.IOrderRepository = (*mockOrderRepo)(nil)

// mockOrderProducer 收集已發送事件
type mockOrderProducer struct {
	m        sync.Mutex
	payloads []*producer.OrderCommittedPayload
	err      error
}

func (m *mockOrderProducer) OrderCommitted(_ context.Context, payload *producer.OrderCommittedPayload) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.payloads = append(m.payloads, payload)
	return nil
}

func (m *mockOrderProducer) Close() error { return nil }

var _ producer.IOrderProducer = (*mockOrderProducer)(nil)

// mockUserRepo in-memory使用者儲存
type mockUserRepo struct {
	m      sync.Mutex
	users  map[string]model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.nextID++
	user.UserID = m.nextID
	m.users[user.Username] = *user
	return nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	return &user, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uint) (*model.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for _, user := range m.users {
		if user.UserID == id {
			u := user
			return &u, nil
		}
	}
	return nil, db.ErrUserNotFound
}

var _ db.IUserRepository = (*mockUserRepo)(nil)

// mockProductRepo in-memory商品儲存，保留插入順序做first-match
type mockProductRepo struct {
	m        sync.Mutex
	products []model.Product
	nextID   uint
}

func (m *mockProductRepo) CreateProduct(_ context.Context, product *model.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.nextID++
	product.ProductID = m.nextID
	m.products = append(m.products, *product)
	return nil
}

func (m *mockProductRepo) GetProductByCode(_ context.Context, code string) (*model.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	// product_id升冪 = 插入順序
	for i := range m.products {
		if m.products[i].Code == code {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, db.ErrProductNotFound
}

func (m *mockProductRepo) GetAllProducts(_ context.Context) ([]model.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]model.Product(nil), m.products...), nil
}

func (m *mockProductRepo) UpdateProduct(_ context.Context, product *model.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.products {
		if m.products[i].ProductID == product.ProductID {
			m.products[i] = *product
			return nil
		}
	}
	return db.ErrProductNotFound
}

func (m *mockProductRepo) DeleteProductByCode(_ context.Context, code string) error {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.products {
		if m.products[i].Code == code {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return db.ErrProductNotFound
}

var _ db.IProductRepository = (*mockProductRepo)(nil)

// mockProductCache in-memory快取
type mockProductCache struct {
	m     sync.Mutex
	cache map[string]model.Product
	hits  int
	sets  int
}

func newMockProductCache() *mockProductCache {
	return &mockProductCache{cache: make(map[string]model.Product)}
}

func (m *mockProductCache) Get(_ context.Context, code string) (*model.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	product, ok := m.cache[code]
	if !ok {
		return nil, redis_repo.ErrCacheMiss
	}
	m.hits++
	return &product, nil
}

func (m *mockProductCache) Set(_ context.Context, product *model.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.sets++
	m.cache[product.Code] = *product
	return nil
}

func (m *mockProductCache) Delete(_ context.Context, code string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.cache, code)
	return nil
}

var _ redis_repo.IProductCache = (*mockProductCache)(nil)
