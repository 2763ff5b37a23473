// Package e2e exercises the full client stack against a stub shop backend:
// session lifecycle, token refresh and replay, and the catalog, cart, and
// order flows.
package e2e

import (
	"sync"
	"testing"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/credential"
	"shopfront/internal/orders"
	"shopfront/internal/products"
	"shopfront/internal/session"
	"shopfront/internal/testutil"
)

// spyNavigator records every route the session layer navigates to.
type spyNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *spyNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *spyNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

// spyNotifier records user-visible notices by severity.
type spyNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *spyNotifier) record(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, level+": "+msg)
}

func (n *spyNotifier) Success(msg string) { n.record("success", msg) }
func (n *spyNotifier) Error(msg string)   { n.record("error", msg) }
func (n *spyNotifier) Info(msg string)    { n.record("info", msg) }

func (n *spyNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// env is one fully wired client stack against a fresh stub backend.
type env struct {
	shop     *testutil.StubShop
	store    *credential.MemStore
	api      *api.Client
	session  *session.Manager
	products *products.Client
	cart     *cart.Client
	orders   *orders.Client
	nav      *spyNavigator
	notify   *spyNotifier
}

func newEnv(t *testing.T) *env {
	t.Helper()

	shop := testutil.NewStubShop(t)
	store := credential.NewMemStore()
	client := api.New(shop.URL(), store, api.Options{})

	nav := &spyNavigator{}
	notify := &spyNotifier{}
	manager := session.NewManager(client, store, nav, notify, nil)

	return &env{
		shop:     shop,
		store:    store,
		api:      client,
		session:  manager,
		products: products.NewClient(client),
		cart:     cart.NewClient(client),
		orders:   orders.NewClient(client),
		nav:      nav,
		notify:   notify,
	}
}
