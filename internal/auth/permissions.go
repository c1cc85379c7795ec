package auth

import (
	"sort"
	"strings"

	"github.com/spec-kit/yummy-admin/internal/domain"
)

// RouteRoles maps a navigation route prefix to the roles permitted to view
// it. Built once at load time, never mutated.
var RouteRoles = map[string][]domain.Role{
	"/dashboard":     {domain.RoleAdmin, domain.RoleManager, domain.RoleCashier},
	"/orders":        {domain.RoleAdmin, domain.RoleManager, domain.RoleCashier, domain.RoleWaiter},
	"/orders/active": {domain.RoleAdmin, domain.RoleManager, domain.RoleCashier, domain.RoleWaiter, domain.RoleKitchen, domain.RoleBar, domain.RoleCafe, domain.RoleBarista},
	"/kitchen":       {domain.RoleKitchen, domain.RoleBar, domain.RoleCafe, domain.RoleBarista, domain.RoleManager},
	"/menu":          {domain.RoleAdmin, domain.RoleManager},
	"/staff":         {domain.RoleAdmin, domain.RoleManager},
	"/customers":     {domain.RoleAdmin, domain.RoleManager, domain.RoleCashier},
	"/analytics":     {domain.RoleAdmin, domain.RoleManager},
	"/settings":      {domain.RoleAdmin},
	"/manage":        {domain.RoleAdmin, domain.RoleManager},
}

// routePrefixes holds the table's keys longest-first so a sub-route is
// matched against its own rule before a shorter ancestor prefix.
var routePrefixes = func() []string {
	prefixes := make([]string, 0, len(RouteRoles))
	for p := range RouteRoles {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}()

// NavItem is one sidebar entry with its visibility rule.
type NavItem struct {
	Label        string        `json:"label"`
	Path         string        `json:"path"`
	AllowedRoles []domain.Role `json:"-"`
}

// SidebarItems is the full ordered navigation list; SidebarItemsForRoles
// filters it without resorting.
var SidebarItems = []NavItem{
	{Label: "Dashboard", Path: "/dashboard", AllowedRoles: RouteRoles["/dashboard"]},
	{Label: "Orders", Path: "/orders", AllowedRoles: RouteRoles["/orders"]},
	{Label: "Active Orders", Path: "/orders/active", AllowedRoles: RouteRoles["/orders/active"]},
	{Label: "Kitchen", Path: "/kitchen", AllowedRoles: RouteRoles["/kitchen"]},
	{Label: "Menu", Path: "/menu", AllowedRoles: RouteRoles["/menu"]},
	{Label: "Staff", Path: "/staff", AllowedRoles: RouteRoles["/staff"]},
	{Label: "Customers", Path: "/customers", AllowedRoles: RouteRoles["/customers"]},
	{Label: "Analytics", Path: "/analytics", AllowedRoles: RouteRoles["/analytics"]},
	{Label: "Settings", Path: "/settings", AllowedRoles: RouteRoles["/settings"]},
	{Label: "Manage", Path: "/manage", AllowedRoles: RouteRoles["/manage"]},
}

// Well-known navigation targets.
const (
	RouteRoot         = "/"
	RouteDashboard    = "/dashboard"
	RouteActiveOrders = "/orders/active"
	RouteKitchen      = "/kitchen"
)

// IsRouteAllowed reports whether a single role may view path. Admin passes
// unconditionally. Otherwise the longest matching prefix rule decides;
// paths matching no prefix are denied.
func IsRouteAllowed(path string, role domain.Role) bool {
	if role == domain.RoleAdmin {
		return true
	}
	for _, prefix := range routePrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return domain.HasRole(RouteRoles[prefix], role)
		}
	}
	return false
}

// IsRouteAllowedAny reports whether at least one held role may view path.
func IsRouteAllowedAny(path string, roles []domain.Role) bool {
	for _, r := range roles {
		if IsRouteAllowed(path, r) {
			return true
		}
	}
	return false
}

// HomeRoute picks the landing route for a role set. The priority order is
// fixed: back-office roles win over waiter, waiter over station roles.
func HomeRoute(roles []domain.Role) string {
	switch {
	case domain.HasAnyRole(roles, domain.RoleAdmin, domain.RoleManager, domain.RoleCashier):
		return RouteDashboard
	case domain.HasRole(roles, domain.RoleWaiter):
		return RouteActiveOrders
	case domain.HasAnyRole(roles, domain.RoleKitchen, domain.RoleBar, domain.RoleCafe, domain.RoleBarista):
		return RouteKitchen
	default:
		return RouteRoot
	}
}

// SidebarItemsForRoles filters the static navigation list to the entries
// visible to at least one held role, preserving the list order.
func SidebarItemsForRoles(roles []domain.Role) []NavItem {
	items := make([]NavItem, 0, len(SidebarItems))
	for _, item := range SidebarItems {
		if domain.HasAnyRole(roles, item.AllowedRoles...) {
			items = append(items, item)
		}
	}
	return items
}
