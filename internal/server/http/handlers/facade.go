package handlers

import (
	"context"
	"time"

	"github.com/solemart/solemart/internal/adapter/gateway"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
	pkgAuth "github.com/solemart/solemart/internal/pkg/auth"
	"github.com/solemart/solemart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// CatalogFacade encapsulates product operations exposed via HTTP.
type CatalogFacade interface {
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CartFacade encapsulates cart operations exposed via HTTP.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	AddCartItem(ctx context.Context, userID, productID int64, size, color string, quantity int) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, userID, itemID int64) (*model.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, in usecase.CreateOrderInput) (*model.Order, error)
	ConfirmPayment(ctx context.Context, userID int64, intentID string, in usecase.CreateOrderInput) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string, tracking *model.Tracking, estimatedDelivery *time.Time) (*model.Order, error)
	Order(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, userID int64, page, limit int) ([]model.Order, int, error)
	AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error)
	OrderStats(ctx context.Context) ([]repository.StatusStat, error)
}

// PaymentFacade encapsulates payment gateway operations exposed via HTTP.
type PaymentFacade interface {
	CreatePaymentIntent(ctx context.Context, userID int64, items []usecase.OrderItemInput) (*gateway.Intent, error)
	HandleGatewayEvent(ctx context.Context, event *gateway.Event) error
	RefundOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64) (*model.Order, error)
	PaymentMethods() []usecase.PaymentMethodInfo
}

// CheckoutFacade joins the payment and order surfaces used by the
// payment endpoints, whose confirm path creates orders.
type CheckoutFacade interface {
	PaymentFacade
	OrderFacade
}

// UserFacade encapsulates wishlist and back-office user operations.
type UserFacade interface {
	Users(ctx context.Context, page, limit int) ([]model.User, int, error)
	AddToWishlist(ctx context.Context, userID, productID int64) error
	RemoveFromWishlist(ctx context.Context, userID, productID int64) error
	Wishlist(ctx context.Context, userID int64) ([]model.Product, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
	PaymentFacade
	UserFacade
}
