package views

import (
	"coilworks/internal/access"
	"coilworks/internal/domain"
)

type View string

const (
	ViewCart            View = "cart"
	ViewEnquire         View = "enquire"
	ViewMyOrders        View = "orders"
	ViewChangePassword  View = "change-password"
	ViewManageEnquiries View = "manage-enquiries"
	ViewManageOrders    View = "manage-orders"
	ViewManageProducts  View = "manage-products"
	ViewAddProduct      View = "add-product"
	ViewEmployees       View = "employees"
	ViewCustomers       View = "customers"
)

var DefaultRoutes = map[View]access.RoleSet{
	ViewCart:            access.Customers,
	ViewEnquire:         access.Customers,
	ViewMyOrders:        access.Customers,
	ViewChangePassword:  access.Customers,
	ViewManageEnquiries: access.OrderManagers,
	ViewManageOrders:    access.OrderManagers,
	ViewManageProducts:  access.ProductManagers,
	ViewAddProduct:      access.CatalogEditors,
	ViewEmployees:       access.AdminOnly,
	ViewCustomers:       access.AdminOnly,
}

type IdentitySource interface {
	Current() *domain.Identity
}

// Router gates every view on the active identity. Views outside the table
// are treated as closed.
type Router struct {
	routes   map[View]access.RoleSet
	identity IdentitySource
}

func NewRouter(routes map[View]access.RoleSet, identity IdentitySource) *Router {
	if routes == nil {
		routes = DefaultRoutes
	}
	return &Router{routes: routes, identity: identity}
}

func (r *Router) Resolve(view View) access.Decision {
	return r.ResolveFor(view, r.identity.Current())
}

// ResolveFor decides the view against an identity the caller already holds.
func (r *Router) ResolveFor(view View, identity *domain.Identity) access.Decision {
	required, ok := r.routes[view]
	if !ok {
		return access.Redirect(access.LandingPath)
	}
	return access.Authorize(identity, required)
}
