package facades

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/solemart/solemart/internal/adapter/gateway"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
	pkgAuth "github.com/solemart/solemart/internal/pkg/auth"
	"github.com/solemart/solemart/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (pkgAuth.Claims, error)
	ProfileFn      func(context.Context, int64) (*model.User, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, firstName, lastName)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser}, "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser}, "token", nil
}

// ParseToken returns stored claims for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: 1, Role: "user"}, nil
}

// Profile returns the user behind the identifier.
func (s AuthFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Email: "user@example.com", Role: model.RoleUser}, nil
}

// CatalogFacadeStub provides controllable behaviour for product endpoints.
type CatalogFacadeStub struct {
	ProductsFn      func(context.Context, model.ProductFilter) ([]model.Product, int, error)
	ProductFn       func(context.Context, int64) (*model.Product, error)
	CategoriesFn    func(context.Context) ([]string, error)
	CreateProductFn func(context.Context, *model.Product) (*model.Product, error)
	UpdateProductFn func(context.Context, *model.Product) (*model.Product, error)
	DeleteProductFn func(context.Context, int64) error
}

// Products delegates to the override or returns a single product.
func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{{ID: 1, Name: "Runner", Price: 100, IsActive: true}}, 1, nil
}

// Product delegates to the override or returns a default product.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Runner", Price: 100, IsActive: true}, nil
}

// Categories returns configured category names.
func (s CatalogFacadeStub) Categories(ctx context.Context) ([]string, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []string{"running"}, nil
}

// CreateProduct echoes the product back with an identifier.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	created := *product
	created.ID = 1
	return &created, nil
}

// UpdateProduct echoes the product back.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return product, nil
}

// DeleteProduct executes the configured handler.
func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	CartFn           func(context.Context, int64) (*model.Cart, error)
	AddCartItemFn    func(context.Context, int64, int64, string, string, int) (*model.Cart, error)
	UpdateCartItemFn func(context.Context, int64, int64, int) (*model.Cart, error)
	RemoveCartItemFn func(context.Context, int64, int64) (*model.Cart, error)
	ClearCartFn      func(context.Context, int64) error
}

// Cart returns the configured cart or an empty one.
func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{ID: 1, UserID: userID}, nil
}

// AddCartItem delegates or returns a one-line cart.
func (s CartFacadeStub) AddCartItem(ctx context.Context, userID, productID int64, size, color string, quantity int) (*model.Cart, error) {
	if s.AddCartItemFn != nil {
		return s.AddCartItemFn(ctx, userID, productID, size, color, quantity)
	}
	return &model.Cart{ID: 1, UserID: userID, Items: []model.CartItem{{ID: 1, ProductID: productID, Quantity: quantity, Size: size, Color: color}}}, nil
}

// UpdateCartItem delegates or returns an empty cart.
func (s CartFacadeStub) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	if s.UpdateCartItemFn != nil {
		return s.UpdateCartItemFn(ctx, userID, itemID, quantity)
	}
	return &model.Cart{ID: 1, UserID: userID}, nil
}

// RemoveCartItem delegates or returns an empty cart.
func (s CartFacadeStub) RemoveCartItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	if s.RemoveCartItemFn != nil {
		return s.RemoveCartItemFn(ctx, userID, itemID)
	}
	return &model.Cart{ID: 1, UserID: userID}, nil
}

// ClearCart executes the configured handler.
func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearCartFn != nil {
		return s.ClearCartFn(ctx, userID)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateOrderFn       func(context.Context, int64, usecase.CreateOrderInput) (*model.Order, error)
	ConfirmPaymentFn    func(context.Context, int64, string, usecase.CreateOrderInput) (*model.Order, error)
	CancelOrderFn       func(context.Context, int64, int64) (*model.Order, error)
	UpdateOrderStatusFn func(context.Context, int64, model.OrderStatus, string, *model.Tracking, *time.Time) (*model.Order, error)
	OrderFn             func(context.Context, int64, bool, int64) (*model.Order, error)
	OrdersFn            func(context.Context, int64, int, int) ([]model.Order, int, error)
	AllOrdersFn         func(context.Context, repository.OrderFilter) ([]model.Order, int, error)
	OrderStatsFn        func(context.Context) ([]repository.StatusStat, error)
}

// CreateOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID int64, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, userID, in)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

// ConfirmPayment delegates or returns a confirmed order.
func (s OrderFacadeStub) ConfirmPayment(ctx context.Context, userID int64, intentID string, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, userID, intentID, in)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusConfirmed}, nil
}

// CancelOrder delegates or returns a cancelled order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCancelled}, nil
}

// UpdateOrderStatus delegates or echoes the requested status back.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string, tracking *model.Tracking, estimatedDelivery *time.Time) (*model.Order, error) {
	if s.UpdateOrderStatusFn != nil {
		return s.UpdateOrderStatusFn(ctx, orderID, status, note, tracking, estimatedDelivery)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// Order delegates or returns an order owned by the caller.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, isAdmin, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, page, limit int) ([]model.Order, int, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, page, limit)
	}
	return []model.Order{{ID: 1, UserID: userID}}, 1, nil
}

// AllOrders returns predefined orders for admin listings.
func (s OrderFacadeStub) AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return []model.Order{{ID: 1}}, 1, nil
}

// OrderStats returns configured statistics.
func (s OrderFacadeStub) OrderStats(ctx context.Context) ([]repository.StatusStat, error) {
	if s.OrderStatsFn != nil {
		return s.OrderStatsFn(ctx)
	}
	return []repository.StatusStat{{Status: model.OrderStatusPending, Count: 1, TotalValue: 100}}, nil
}

// PaymentFacadeStub provides controllable behaviour for payment endpoints.
type PaymentFacadeStub struct {
	CreatePaymentIntentFn func(context.Context, int64, []usecase.OrderItemInput) (*gateway.Intent, error)
	HandleGatewayEventFn  func(context.Context, *gateway.Event) error
	RefundOrderFn         func(context.Context, int64, bool, int64) (*model.Order, error)
	PaymentMethodsFn      func() []usecase.PaymentMethodInfo
}

// CreatePaymentIntent delegates or returns a default intent.
func (s PaymentFacadeStub) CreatePaymentIntent(ctx context.Context, userID int64, items []usecase.OrderItemInput) (*gateway.Intent, error) {
	if s.CreatePaymentIntentFn != nil {
		return s.CreatePaymentIntentFn(ctx, userID, items)
	}
	return &gateway.Intent{ID: "pi_stub", ClientSecret: "pi_stub_secret", Status: gateway.IntentStatusRequiresPayment}, nil
}

// HandleGatewayEvent executes the configured handler.
func (s PaymentFacadeStub) HandleGatewayEvent(ctx context.Context, event *gateway.Event) error {
	if s.HandleGatewayEventFn != nil {
		return s.HandleGatewayEventFn(ctx, event)
	}
	return nil
}

// RefundOrder delegates or returns a returned order.
func (s PaymentFacadeStub) RefundOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error) {
	if s.RefundOrderFn != nil {
		return s.RefundOrderFn(ctx, userID, isAdmin, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusReturned}, nil
}

// PaymentMethods returns the configured method catalog.
func (s PaymentFacadeStub) PaymentMethods() []usecase.PaymentMethodInfo {
	if s.PaymentMethodsFn != nil {
		return s.PaymentMethodsFn()
	}
	return []usecase.PaymentMethodInfo{{ID: model.PaymentMethodCard, Name: "Card"}}
}

// UserFacadeStub provides controllable behaviour for wishlist and admin user endpoints.
type UserFacadeStub struct {
	UsersFn              func(context.Context, int, int) ([]model.User, int, error)
	AddToWishlistFn      func(context.Context, int64, int64) error
	RemoveFromWishlistFn func(context.Context, int64, int64) error
	WishlistFn           func(context.Context, int64) ([]model.Product, error)
}

// Users returns predefined users.
func (s UserFacadeStub) Users(ctx context.Context, page, limit int) ([]model.User, int, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, page, limit)
	}
	return []model.User{{ID: 1, Email: "user@example.com"}}, 1, nil
}

// AddToWishlist executes the configured handler.
func (s UserFacadeStub) AddToWishlist(ctx context.Context, userID, productID int64) error {
	if s.AddToWishlistFn != nil {
		return s.AddToWishlistFn(ctx, userID, productID)
	}
	return nil
}

// RemoveFromWishlist executes the configured handler.
func (s UserFacadeStub) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	if s.RemoveFromWishlistFn != nil {
		return s.RemoveFromWishlistFn(ctx, userID, productID)
	}
	return nil
}

// Wishlist returns predefined products.
func (s UserFacadeStub) Wishlist(ctx context.Context, userID int64) ([]model.Product, error) {
	if s.WishlistFn != nil {
		return s.WishlistFn(ctx, userID)
	}
	return []model.Product{{ID: 1, Name: "Runner"}}, nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	UserFacadeStub
}

// ReconcileCall records one ReconcilePayment invocation.
type ReconcileCall struct {
	OrderID int64
}

// WorkerFacadeStub mimics worker interactions with the payment facade.
type WorkerFacadeStub struct {
	Batches     [][]model.Order
	PendingFn   func(context.Context, int) ([]model.Order, error)
	ReconcileFn func(context.Context, model.Order) error
	Reconciled  []ReconcileCall

	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingPayments returns batches from configured queue.
func (s *WorkerFacadeStub) PendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReconcilePayment records reconciliation requests.
func (s *WorkerFacadeStub) ReconcilePayment(ctx context.Context, order model.Order) error {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, ReconcileCall{OrderID: order.ID})
	return nil
}
