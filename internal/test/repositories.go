package test

import (
	"context"
	"sync"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = s.Next
	s.Next++
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored users in creation order.
func (s *UserRepositoryStub) List(ctx context.Context, page, limit int) ([]model.User, int, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for id := int64(1); id < s.Next; id++ {
		if user, ok := s.ByID[id]; ok {
			users = append(users, *user)
		}
	}
	return users, len(users), nil
}

// StockCall records one stock mutation applied to the product stub.
type StockCall struct {
	ProductID int64
	Size      string
	Quantity  int
}

// ProductRepositoryStub keeps products in-memory and tracks stock
// mutations so tests can assert commit and rollback behaviour.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64

	DecrementFn func(context.Context, int64, string, int) error
	RestoreFn   func(context.Context, int64, string, int) error
	ListFn      func(context.Context, model.ProductFilter) ([]model.Product, int, error)
	Err         error

	Decrements []StockCall
	Restores   []StockCall
}

// NewProductRepositoryStub constructs stub with initialized product map.
func NewProductRepositoryStub(products ...*model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
	for _, p := range products {
		if p.ID == 0 {
			p.ID = s.Next
		}
		if p.ID >= s.Next {
			s.Next = p.ID + 1
		}
		s.Products[p.ID] = p
	}
	return s
}

// Create stores the product under a fresh identifier.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *product
	stored.ID = s.Next
	s.Next++
	s.Products[stored.ID] = &stored
	return &stored, nil
}

// Update replaces the stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *product
	s.Products[product.ID] = &stored
	return nil
}

// SoftDelete clears the active flag.
func (s *ProductRepositoryStub) SoftDelete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	product, ok := s.Products[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	product.IsActive = false
	return nil
}

// GetByID fetches any product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetActiveByID fetches an active product or reports it unavailable.
func (s *ProductRepositoryStub) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Products[id]
	if !ok || !product.IsActive {
		return nil, domainErrors.ErrProductUnavailable
	}
	return product, nil
}

// List returns all active products unless overridden.
func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, 0, s.Err
	}
	products := make([]model.Product, 0, len(s.Products))
	for id := int64(1); id < s.Next; id++ {
		if p, ok := s.Products[id]; ok && p.IsActive {
			products = append(products, *p)
		}
	}
	return products, len(products), nil
}

// Categories returns distinct categories of stored products.
func (s *ProductRepositoryStub) Categories(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	seen := make(map[string]bool)
	var categories []string
	for id := int64(1); id < s.Next; id++ {
		if p, ok := s.Products[id]; ok && p.IsActive && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

// DecrementStock mutates the matching size bucket, failing on shortage.
func (s *ProductRepositoryStub) DecrementStock(ctx context.Context, productID int64, size string, quantity int) error {
	s.Decrements = append(s.Decrements, StockCall{ProductID: productID, Size: size, Quantity: quantity})
	if s.DecrementFn != nil {
		return s.DecrementFn(ctx, productID, size, quantity)
	}
	product, ok := s.Products[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for i := range product.Sizes {
		if product.Sizes[i].Size == size {
			if product.Sizes[i].Stock < quantity {
				return domainErrors.ErrInsufficientStock
			}
			product.Sizes[i].Stock -= quantity
			product.TotalStock = product.ComputeTotalStock()
			return nil
		}
	}
	return domainErrors.ErrInsufficientStock
}

// RestoreStock mutates the matching size bucket without an upper bound.
func (s *ProductRepositoryStub) RestoreStock(ctx context.Context, productID int64, size string, quantity int) error {
	s.Restores = append(s.Restores, StockCall{ProductID: productID, Size: size, Quantity: quantity})
	if s.RestoreFn != nil {
		return s.RestoreFn(ctx, productID, size, quantity)
	}
	product, ok := s.Products[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for i := range product.Sizes {
		if product.Sizes[i].Size == size {
			product.Sizes[i].Stock += quantity
			product.TotalStock = product.ComputeTotalStock()
			return nil
		}
	}
	product.Sizes = append(product.Sizes, model.SizeStock{Size: size, Stock: quantity})
	product.TotalStock = product.ComputeTotalStock()
	return nil
}

// CartRepositoryStub keeps one cart per user in-memory.
type CartRepositoryStub struct {
	Carts    map[int64]*model.Cart
	NextCart int64
	NextItem int64
	Err      error

	Deleted []int64
	Cleared []int64
}

// NewCartRepositoryStub constructs stub with initialized maps.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Carts: make(map[int64]*model.Cart), NextCart: 1, NextItem: 1}
}

// GetOrCreate returns the user's cart, creating it lazily.
func (s *CartRepositoryStub) GetOrCreate(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if cart, ok := s.Carts[userID]; ok {
		return cart, nil
	}
	cart := &model.Cart{ID: s.NextCart, UserID: userID}
	s.NextCart++
	s.Carts[userID] = cart
	return cart, nil
}

func (s *CartRepositoryStub) findByCartID(cartID int64) *model.Cart {
	for _, cart := range s.Carts {
		if cart.ID == cartID {
			return cart
		}
	}
	return nil
}

// InsertItem merges into an existing line or appends a new one.
func (s *CartRepositoryStub) InsertItem(ctx context.Context, cartID int64, item model.CartItem) (*model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	cart := s.findByCartID(cartID)
	if cart == nil {
		return nil, domainErrors.ErrNotFound
	}
	if existing, ok := cart.FindItem(item.ProductID, item.Size, item.Color); ok {
		existing.Quantity += item.Quantity
		return existing, nil
	}
	item.ID = s.NextItem
	s.NextItem++
	cart.Items = append(cart.Items, item)
	return &cart.Items[len(cart.Items)-1], nil
}

// UpdateItemQuantity sets a line's quantity.
func (s *CartRepositoryStub) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	if s.Err != nil {
		return s.Err
	}
	cart := s.findByCartID(cartID)
	if cart == nil {
		return domainErrors.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// DeleteItem removes one line.
func (s *CartRepositoryStub) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	if s.Err != nil {
		return s.Err
	}
	cart := s.findByCartID(cartID)
	if cart == nil {
		return domainErrors.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Clear removes all lines and records the call.
func (s *CartRepositoryStub) Clear(ctx context.Context, cartID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Cleared = append(s.Cleared, cartID)
	if cart := s.findByCartID(cartID); cart != nil {
		cart.Items = nil
	}
	return nil
}

// Delete removes the cart record and records the call.
func (s *CartRepositoryStub) Delete(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, userID)
	if _, ok := s.Carts[userID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Carts, userID)
	return nil
}

// PruneInactive reports zero removals unless overridden via PrunedN.
func (s *CartRepositoryStub) PruneInactive(ctx context.Context, cartID int64) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return 0, nil
}

// StatusCall records one AppendStatus invocation.
type StatusCall struct {
	OrderID int64
	Update  repository.StatusUpdate
}

// PaymentStatusCall records one UpdatePaymentStatus invocation.
type PaymentStatusCall struct {
	OrderID int64
	Status  model.PaymentStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn                func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn               func(context.Context, int64) (*model.Order, error)
	GetByTransactionIDFn    func(context.Context, string) (*model.Order, error)
	ListByUserFn            func(context.Context, int64, int, int) ([]model.Order, int, error)
	ListAllFn               func(context.Context, repository.OrderFilter) ([]model.Order, int, error)
	StatsFn                 func(context.Context) ([]repository.StatusStat, error)
	AppendStatusFn          func(context.Context, int64, repository.StatusUpdate) error
	UpdatePaymentStatusFn   func(context.Context, int64, model.PaymentStatus) error
	SelectPendingPaymentsFn func(context.Context, int) ([]model.Order, error)

	Orders         []model.Order
	Created        []*model.Order
	StatusCalls    []StatusCall
	PaymentUpdates []PaymentStatusCall
	Next           int64
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	s.Created = append(s.Created, &stored)
	s.Orders = append(s.Orders, stored)
	return &stored, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTransactionID matches on payment transaction identifier.
func (s *OrderRepositoryStub) GetByTransactionID(ctx context.Context, transactionID string) (*model.Order, error) {
	if s.GetByTransactionIDFn != nil {
		return s.GetByTransactionIDFn(ctx, transactionID)
	}
	for i := range s.Orders {
		if s.Orders[i].Payment.TransactionID == transactionID {
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns stored orders owned by the user.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.Order, int, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID, page, limit)
	}
	var orders []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, len(orders), nil
}

// ListAll returns every stored order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx, filter)
	}
	return s.Orders, len(s.Orders), nil
}

// StatsByStatus returns configured statistics.
func (s *OrderRepositoryStub) StatsByStatus(ctx context.Context) ([]repository.StatusStat, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return nil, nil
}

// AppendStatus records the transition and applies it to stored orders.
func (s *OrderRepositoryStub) AppendStatus(ctx context.Context, orderID int64, update repository.StatusUpdate) error {
	if s.AppendStatusFn != nil {
		return s.AppendStatusFn(ctx, orderID, update)
	}
	s.StatusCalls = append(s.StatusCalls, StatusCall{OrderID: orderID, Update: update})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = update.Status
			s.Orders[i].StatusHistory = append(s.Orders[i].StatusHistory, model.StatusChange{
				Status: update.Status,
				Note:   update.Note,
			})
		}
	}
	return nil
}

// UpdatePaymentStatus records payment state changes.
func (s *OrderRepositoryStub) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	if s.UpdatePaymentStatusFn != nil {
		return s.UpdatePaymentStatusFn(ctx, orderID, status)
	}
	s.PaymentUpdates = append(s.PaymentUpdates, PaymentStatusCall{OrderID: orderID, Status: status})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Payment.Status = status
		}
	}
	return nil
}

// SelectPendingPayments returns configured pending orders.
func (s *OrderRepositoryStub) SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectPendingPaymentsFn != nil {
		return s.SelectPendingPaymentsFn(ctx, limit)
	}
	return nil, nil
}

// WishlistRepositoryStub keeps wishlist product ids per user.
type WishlistRepositoryStub struct {
	mu       sync.Mutex
	Items    map[int64][]int64
	Products map[int64]*model.Product
	Err      error
}

// NewWishlistRepositoryStub constructs stub with initialized maps.
func NewWishlistRepositoryStub() *WishlistRepositoryStub {
	return &WishlistRepositoryStub{Items: make(map[int64][]int64), Products: make(map[int64]*model.Product)}
}

// Add records the product id unless already present.
func (s *WishlistRepositoryStub) Add(ctx context.Context, userID, productID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.Items[userID] {
		if id == productID {
			return nil
		}
	}
	s.Items[userID] = append(s.Items[userID], productID)
	return nil
}

// Remove drops the product id.
func (s *WishlistRepositoryStub) Remove(ctx context.Context, userID, productID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.Items[userID]
	for i, id := range ids {
		if id == productID {
			s.Items[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

// List resolves recorded ids to products.
func (s *WishlistRepositoryStub) List(ctx context.Context, userID int64) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []model.Product
	for _, id := range s.Items[userID] {
		if p, ok := s.Products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}
