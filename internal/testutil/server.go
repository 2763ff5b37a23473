// Package testutil provides shared test utilities and fixtures for testing
// the shopfront client, centered on an in-memory stub of the shop backend.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"shopfront/internal/domain"
)

// DefaultEmail and DefaultPassword are the credentials of the user seeded
// into every new StubShop.
const (
	DefaultEmail    = "test@example.com"
	DefaultPassword = "password123"
)

type stubAccount struct {
	password string
	user     domain.User
}

// StubShop is an in-memory shop backend served over httptest. Every
// response uses the backend's envelope shape. Tokens are plain counters
// (at-1, rt-1, ...) so tests can assert exact rotation.
type StubShop struct {
	Server *httptest.Server

	mu            sync.Mutex
	accounts      map[string]stubAccount
	accessSeq     int
	refreshSeq    int
	accessToken   string
	refreshToken  string
	rejectRefresh bool
	products      map[string]domain.Product
	cart          domain.Cart
	orders        map[string]domain.Order
	orderSeq      int

	// Call counters for assertions
	LoginCalls     atomic.Int64
	LogoutCalls    atomic.Int64
	RefreshCalls   atomic.Int64
	ProtectedCalls atomic.Int64
}

// NewStubShop starts a stub backend with one seeded account. The server is
// closed via t.Cleanup.
func NewStubShop(t *testing.T) *StubShop {
	t.Helper()

	s := &StubShop{
		accounts: make(map[string]stubAccount),
		products: make(map[string]domain.Product),
		orders:   make(map[string]domain.Order),
	}
	s.accounts[DefaultEmail] = stubAccount{
		password: DefaultPassword,
		user:     *NewTestUser(WithEmail(DefaultEmail)),
	}
	s.cart = domain.Cart{ID: "cart-1", UserID: s.accounts[DefaultEmail].user.ID}

	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Server.Close)
	return s
}

// URL returns the stub's base URL.
func (s *StubShop) URL() string {
	return s.Server.URL
}

// SeedUser registers an additional login-able account.
func (s *StubShop) SeedUser(email, password string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = stubAccount{password: password, user: user}
}

// SeedProduct adds a product to the catalog.
func (s *StubShop) SeedProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// ExpireAccessToken invalidates the current access token so the next
// protected request is rejected with 401.
func (s *StubShop) ExpireAccessToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
}

// RejectRefresh makes every subsequent refresh attempt fail with 401.
func (s *StubShop) RejectRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectRefresh = true
}

// CurrentAccessToken returns the token the stub currently accepts.
func (s *StubShop) CurrentAccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *StubShop) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/logout", s.handleLogout)
	r.Get("/auth/refresh", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Route("/api/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Post("/", s.handleCreateProduct)
			r.Get("/{id}", s.handleGetProduct)
			r.Patch("/{id}", s.handleUpdateProduct)
			r.Delete("/{id}", s.handleDeleteProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Post("/", s.handleAddToCart)
			r.Delete("/", s.handleClearCart)
			r.Patch("/{productId}", s.handleUpdateCartItem)
			r.Delete("/{productId}", s.handleRemoveFromCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.handleCreateOrder)
			r.Get("/", s.handleListOrders)
			r.Post("/payment", s.handlePayOrder)
			r.Get("/{id}", s.handleGetOrder)
			r.Patch("/{id}/cancel", s.handleCancelOrder)
		})
	})

	return r
}

func writeEnvelope(w http.ResponseWriter, httpStatus, envStatus int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]any{
		"statusCode": envStatus,
		"message":    message,
		"data":       data,
	})
}

// issueTokens mints a fresh access/refresh pair, marks them as the only
// valid pair, and sets both as cookies. Callers hold s.mu.
func (s *StubShop) issueTokens(w http.ResponseWriter) (access, refresh string) {
	s.accessSeq++
	s.refreshSeq++
	s.accessToken = fmt.Sprintf("at-%d", s.accessSeq)
	s.refreshToken = fmt.Sprintf("rt-%d", s.refreshSeq)

	http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: s.accessToken, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: s.refreshToken, Path: "/"})
	return s.accessToken, s.refreshToken
}

func (s *StubShop) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.ProtectedCalls.Add(1)

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		valid := s.accessToken != "" && token == s.accessToken
		s.mu.Unlock()

		if !valid {
			writeEnvelope(w, http.StatusUnauthorized, 401, "Unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *StubShop) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.LoginCalls.Add(1)

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeEnvelope(w, http.StatusBadRequest, 400, "Invalid request body", nil)
		return
	}

	s.mu.Lock()
	account, ok := s.accounts[body.Email]
	s.mu.Unlock()
	if !ok || account.password != body.Password {
		// The real backend resolves declined logins with HTTP 200 and an
		// envelope statusCode of 401.
		writeEnvelope(w, http.StatusOK, 401, "Invalid credentials", nil)
		return
	}

	s.mu.Lock()
	access, _ := s.issueTokens(w)
	s.mu.Unlock()

	writeEnvelope(w, http.StatusCreated, 201, "Login successful", map[string]any{
		"accessToken": access,
		"user":        account.user,
	})
}

func (s *StubShop) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeEnvelope(w, http.StatusBadRequest, 400, "Invalid request body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[body.Email]; exists {
		writeEnvelope(w, http.StatusConflict, 409, "Email already registered", nil)
		return
	}
	user := *NewTestUser(WithName(body.Name), WithEmail(body.Email))
	s.accounts[body.Email] = stubAccount{password: body.Password, user: user}

	writeEnvelope(w, http.StatusCreated, 201, "Registration successful", user)
}

func (s *StubShop) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.LogoutCalls.Add(1)

	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "", Path: "/", MaxAge: -1})
	writeEnvelope(w, http.StatusOK, 200, "Logged out", nil)
}

func (s *StubShop) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.RefreshCalls.Add(1)

	cookie, err := r.Cookie("refreshToken")

	s.mu.Lock()
	rejected := s.rejectRefresh || err != nil || s.refreshToken == "" || cookie.Value != s.refreshToken
	s.mu.Unlock()
	if rejected {
		writeEnvelope(w, http.StatusUnauthorized, 401, "Invalid refresh token", nil)
		return
	}

	s.mu.Lock()
	access, refresh := s.issueTokens(w)
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, 200, "Token refreshed", map[string]any{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func (s *StubShop) handleListProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	matched := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.Unlock()

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	writeEnvelope(w, http.StatusOK, 200, "ok", map[string]any{
		"data": matched[start:end],
		"meta": map[string]any{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": (total + limit - 1) / limit,
		},
	})
}

func (s *StubShop) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.products[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 404, "Product not found", nil)
		return
	}
	writeEnvelope(w, http.StatusOK, 200, "ok", p)
}

func (s *StubShop) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeEnvelope(w, http.StatusBadRequest, 400, "Invalid request body", nil)
		return
	}

	p := domain.Product{
		ID:          nextID("product"),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
	}
	s.mu.Lock()
	s.products[p.ID] = p
	s.mu.Unlock()

	writeEnvelope(w, http.StatusCreated, 201, "Product created", p)
}

func (s *StubShop) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeEnvelope(w, http.StatusBadRequest, 400, "Invalid request body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[chi.URLParam(r, "id")]
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 404, "Product not found", nil)
		return
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Image != nil {
		p.Image = *input.Image
	}
	s.products[p.ID] = p

	writeEnvelope(w, http.StatusOK, 200, "Product updated", p)
}

func (s *StubShop) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.products[id]
	delete(s.products, id)
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 404, "Product not found", nil)
		return
	}
	writeEnvelope(w, http.StatusOK, 200, "Product deleted", nil)
}

// recalcCart recomputes the cart total from its lines. Callers hold s.mu.
func (s *StubShop) recalcCart() {
	total := 0.0
	for _, item := range s.cart.Items {
		total += item.Price * float64(item.Quantity)
	}
	s.cart.TotalAmount = total
}

func (s *StubShop) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cart := s.cart
	s.mu.Unlock()
	writeEnvelope(w, http.StatusOK, 200, "ok", cart)
}

func (s *StubShop) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity < 1 {
		writeEnvelope(w, http.StatusBadRequest, 400, "Invalid request body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[body.ProductID]
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 404, "Product not found", nil)
		return
	}

	found := false
	for i := range s.cart.Items {
		if s.cart.Items[i].Product.ID == body.ProductID {
			s.cart.Items[i].Quantity += body.Quantity
			found = true
			break
		}
	}
	if !found {
		s.cart.Items = append(s.cart.Items, domain.CartItem{
			Product: domain.CartProduct{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Image:       p.Image,
			},
			Quantity: body.Quantity,
			Price:    p.Price,
		})
	}
	s.recalcCart()

	writeEnvelope(w, http.StatusCreated, 201, "Added to cart", s.cart)
}

func (s *StubShop) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity < 1 {
		writeEnvelope(w, http.StatusBadRequest, 400, "Invalid request body", nil)
		return
	}

	productID := chi.URLParam(r, "productId")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart.Items {
		if s.cart.Items[i].Product.ID == productID {
			s.cart.Items[i].Quantity = body.Quantity
			s.recalcCart()
			writeEnvelope(w, http.StatusOK, 200, "Cart updated", s.cart)
			return
		}
	}
	writeEnvelope(w, http.StatusNotFound, 404, "Product not in cart", nil)
}

func (s *StubShop) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart.Items {
		if s.cart.Items[i].Product.ID == productID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			s.recalcCart()
			writeEnvelope(w, http.StatusOK, 200, "Removed from cart", s.cart)
			return
		}
	}
	writeEnvelope(w, http.StatusNotFound, 404, "Product not in cart", nil)
}

func (s *StubShop) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.cart.Items = nil
	s.cart.TotalAmount = 0
	cart := s.cart
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, 200, "Cart cleared", cart)
}

func (s *StubShop) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart.Items) == 0 {
		writeEnvelope(w, http.StatusBadRequest, 400, "Cart is empty", nil)
		return
	}

	s.orderSeq++
	order := domain.Order{
		ID:          fmt.Sprintf("order-%d", s.orderSeq),
		UserID:      s.cart.UserID,
		TotalAmount: s.cart.TotalAmount,
		Status:      domain.OrderUnpaid,
	}
	for _, item := range s.cart.Items {
		order.Products = append(order.Products, domain.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Price * float64(item.Quantity),
		})
	}
	s.orders[order.ID] = order
	s.cart.Items = nil
	s.cart.TotalAmount = 0

	writeEnvelope(w, http.StatusCreated, 201, "Order created", order)
}

func (s *StubShop) handleListOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	orders := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, 200, "ok", orders)
}

func (s *StubShop) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	order, ok := s.orders[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 404, "Order not found", nil)
		return
	}
	writeEnvelope(w, http.StatusOK, 200, "ok", order)
}

func (s *StubShop) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[chi.URLParam(r, "id")]
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 404, "Order not found", nil)
		return
	}
	if order.Status != domain.OrderUnpaid {
		writeEnvelope(w, http.StatusBadRequest, 400, "Only unpaid orders can be cancelled", nil)
		return
	}
	order.Status = domain.OrderCancelled
	s.orders[order.ID] = order

	writeEnvelope(w, http.StatusOK, 200, "Order cancelled", order)
}

func (s *StubShop) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	var input domain.PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeEnvelope(w, http.StatusBadRequest, 400, "Invalid request body", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[input.OrderID]
	if !ok {
		writeEnvelope(w, http.StatusNotFound, 404, "Order not found", nil)
		return
	}
	if order.Status != domain.OrderUnpaid {
		writeEnvelope(w, http.StatusBadRequest, 400, "Order is not payable", nil)
		return
	}
	order.Status = domain.OrderPaid
	order.PaymentID = input.PaymentID
	s.orders[order.ID] = order

	writeEnvelope(w, http.StatusOK, 200, "Payment applied", order)
}
