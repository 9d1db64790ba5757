package app

import (
	"context"
	"time"

	"github.com/solemart/solemart/internal/adapter/gateway"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
	pkgAuth "github.com/solemart/solemart/internal/pkg/auth"
	"github.com/solemart/solemart/internal/usecase"
)

// StoreFacade is the single entry point the transport and worker
// layers use to reach business logic.
type StoreFacade struct {
	auth      *usecase.AuthUseCase
	catalog   *usecase.CatalogUseCase
	cart      *usecase.CartUseCase
	orders    *usecase.OrderUseCase
	payments  *usecase.PaymentUseCase
	wishlists *usecase.WishlistUseCase
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, cart *usecase.CartUseCase, orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, wishlists *usecase.WishlistUseCase) *StoreFacade {
	return &StoreFacade{auth: auth, catalog: catalog, cart: cart, orders: orders, payments: payments, wishlists: wishlists}
}

func (f *StoreFacade) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, password, firstName, lastName)
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StoreFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StoreFacade) Users(ctx context.Context, page, limit int) ([]model.User, int, error) {
	return f.auth.ListUsers(ctx, page, limit)
}

func (f *StoreFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StoreFacade) Categories(ctx context.Context) ([]string, error) {
	return f.catalog.Categories(ctx)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, product)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.Update(ctx, product)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.Delete(ctx, id)
}

func (f *StoreFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.cart.Get(ctx, userID)
}

func (f *StoreFacade) AddCartItem(ctx context.Context, userID, productID int64, size, color string, quantity int) (*model.Cart, error) {
	return f.cart.AddItem(ctx, userID, productID, size, color, quantity)
}

func (f *StoreFacade) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	return f.cart.UpdateItemQuantity(ctx, userID, itemID, quantity)
}

func (f *StoreFacade) RemoveCartItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	return f.cart.RemoveItem(ctx, userID, itemID)
}

func (f *StoreFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.cart.Clear(ctx, userID)
}

func (f *StoreFacade) CreateOrder(ctx context.Context, userID int64, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, userID, in)
}

func (f *StoreFacade) ConfirmPayment(ctx context.Context, userID int64, intentID string, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.ConfirmPayment(ctx, userID, intentID, in)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, userID, orderID)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string, tracking *model.Tracking, estimatedDelivery *time.Time) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status, note, tracking, estimatedDelivery)
}

func (f *StoreFacade) Order(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, isAdmin, orderID)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64, page, limit int) ([]model.Order, int, error) {
	return f.orders.ListByUser(ctx, userID, page, limit)
}

func (f *StoreFacade) AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	return f.orders.ListAll(ctx, filter)
}

func (f *StoreFacade) OrderStats(ctx context.Context) ([]repository.StatusStat, error) {
	return f.orders.StatsByStatus(ctx)
}

func (f *StoreFacade) CreatePaymentIntent(ctx context.Context, userID int64, items []usecase.OrderItemInput) (*gateway.Intent, error) {
	return f.payments.CreateIntent(ctx, userID, items)
}

func (f *StoreFacade) HandleGatewayEvent(ctx context.Context, event *gateway.Event) error {
	return f.payments.HandleEvent(ctx, event)
}

func (f *StoreFacade) RefundOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error) {
	return f.payments.Refund(ctx, userID, isAdmin, orderID)
}

func (f *StoreFacade) PaymentMethods() []usecase.PaymentMethodInfo {
	return f.payments.Methods()
}

func (f *StoreFacade) PendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	return f.payments.PendingPayments(ctx, limit)
}

func (f *StoreFacade) ReconcilePayment(ctx context.Context, order model.Order) error {
	return f.payments.Reconcile(ctx, order)
}

func (f *StoreFacade) AddToWishlist(ctx context.Context, userID, productID int64) error {
	return f.wishlists.Add(ctx, userID, productID)
}

func (f *StoreFacade) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	return f.wishlists.Remove(ctx, userID, productID)
}

func (f *StoreFacade) Wishlist(ctx context.Context, userID int64) ([]model.Product, error) {
	return f.wishlists.List(ctx, userID)
}
