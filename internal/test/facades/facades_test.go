package facades

import (
	"github.com/solemart/solemart/internal/server/http/handlers"
	"github.com/solemart/solemart/internal/worker"
)

var (
	_ handlers.AuthFacade    = AuthFacadeStub{}
	_ handlers.CatalogFacade = CatalogFacadeStub{}
	_ handlers.CartFacade    = CartFacadeStub{}
	_ handlers.OrderFacade   = OrderFacadeStub{}
	_ handlers.PaymentFacade = PaymentFacadeStub{}
	_ handlers.UserFacade    = UserFacadeStub{}
	_ handlers.StoreFacade   = StoreFacadeStub{}
	_ worker.PaymentFacade   = (*WorkerFacadeStub)(nil)
)
