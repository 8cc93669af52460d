package storefront

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"coilworks/internal/config"
	"coilworks/internal/domain"
	"coilworks/internal/storefront/apiclient"
	"coilworks/internal/storefront/cartstore"
	"coilworks/internal/storefront/localstore"
	"coilworks/internal/storefront/session"
	"coilworks/internal/storefront/views"
	"coilworks/internal/workflow"
)

// Module is the storefront client core: session, cart and the views built on
// them, sharing one API client and one local state file.
type Module struct {
	API       *apiclient.Client
	Session   *session.Holder
	Cart      *cartstore.Store
	Router    *views.Router
	Enquiry   *views.Checkout
	Order     *views.Checkout
	Enquiries *views.Board
	Orders    *views.Board

	syncer *cartstore.Syncer
	logger *zap.Logger
}

// NewModule opens local state, restores the previous session and cart, and
// starts the cart sync worker. Call Close when done.
func NewModule(cfg config.ClientConfig, notifier cartstore.Notifier, logger *zap.Logger, opts ...apiclient.Option) (*Module, error) {
	store, err := localstore.Open(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = cartstore.NewLogNotifier(logger)
	}

	api := apiclient.New(cfg, logger, opts...)
	holder := session.NewHolder(store, api, logger)
	if err := holder.Load(); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	syncer := cartstore.NewSyncer(cfg.SyncQueueSize, cfg.RequestTimeout, notifier, logger)
	cart := cartstore.NewStore(store, holder, api, syncer, logger)
	if err := cart.Load(); err != nil {
		syncer.Close()
		return nil, fmt.Errorf("restoring cart: %w", err)
	}

	router := views.NewRouter(views.DefaultRoutes, holder)
	enquiries := api.Enquiries()
	orders := api.Orders()

	return &Module{
		API:       api,
		Session:   holder,
		Cart:      cart,
		Router:    router,
		Enquiry:   views.NewCheckout(cart, holder, enquiries, notifier, logger),
		Order:     views.NewCheckout(cart, holder, orders, notifier, logger),
		Enquiries: views.NewBoard(views.ViewManageEnquiries, workflow.EnquiryLifecycle, enquiries, router, holder, notifier, logger),
		Orders:    views.NewBoard(views.ViewManageOrders, workflow.OrderLifecycle, orders, router, holder, notifier, logger),
		syncer:    syncer,
		logger:    logger,
	}, nil
}

// SignIn activates identity and pulls the user's saved server cart. A failed
// pull is logged; the local cart stays usable.
func (m *Module) SignIn(ctx context.Context, identity domain.Identity) error {
	if err := m.Session.SignIn(identity); err != nil {
		return err
	}
	if err := m.Cart.RestoreRemote(ctx); err != nil {
		m.logger.Warn("restoring server cart failed", zap.String("userId", identity.UserID), zap.Error(err))
	}
	return nil
}

// SignOut waits for queued cart calls, saves the cart and clears the session.
func (m *Module) SignOut(ctx context.Context) error {
	if err := m.syncer.Flush(ctx); err != nil {
		m.logger.Warn("cart sync still pending at sign-out", zap.Error(err))
	}
	return m.Session.SignOut(ctx, m.Cart)
}

// AddProduct puts quantity of a catalog product in the cart, carrying its
// display fields. When the product cannot be fetched the bare id is added.
func (m *Module) AddProduct(ctx context.Context, productID string, quantity int) error {
	item := domain.CartLineItem{ProductID: productID, Quantity: quantity}
	product, err := m.API.GetProduct(ctx, productID)
	if err != nil {
		m.logger.Debug("product lookup failed, adding without display fields",
			zap.String("productId", productID),
			zap.Error(err),
		)
	} else {
		item = product.LineItem(quantity)
	}
	return m.Cart.AddOrUpdateLineItem(item)
}

func (m *Module) Flush(ctx context.Context) error {
	return m.syncer.Flush(ctx)
}

func (m *Module) Close() {
	m.syncer.Close()
}
