package services

import (
	"fmt"
	"sync"
	"time"

	"luxeStore/models"
	"luxeStore/repository"
	"luxeStore/session"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultStateName = "luxe-store"

// Store owns one shopper session. Every action replaces the whole session
// value under the lock and then writes the persisted subset through. None of
// the actions fail: bad input degrades to a no-op and storage errors are
// only logged.
type Store struct {
	mu    sync.Mutex
	state session.Session
	sr    repository.StateRepository
	name  string
	now   func() time.Time
	newId func(time.Time) (string, error)
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithOrderIds(gen func(time.Time) (string, error)) StoreOption {
	return func(s *Store) { s.newId = gen }
}

// NewStore rehydrates the session saved under name, or starts empty.
func NewStore(stateRepo repository.StateRepository, name string, opts ...StoreOption) *Store {
	s := &Store{
		state: session.Empty(),
		sr:    stateRepo,
		name:  name,
		now:   time.Now,
		newId: session.NewOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sr != nil {
		persisted, exists, err := s.sr.LoadState(name)
		if err != nil {
			logrus.WithField("state", name).Errorf("NewStore: %v", err)
		} else if exists {
			s.state = session.FromPersisted(persisted)
		}
	}
	return s
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) apply(persist bool, fn func(session.Session) session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	if persist {
		s.save()
	}
}

func (s *Store) save() {
	if s.sr == nil {
		return
	}
	if err := s.sr.SaveState(s.name, s.state.Persisted()); err != nil {
		logrus.WithField("state", s.name).Errorf("save: %v", err)
	}
}

// Snapshot returns the current session value.
func (s *Store) Snapshot() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// cart

func (s *Store) AddToCart(product models.Product, quantity int, size, color string) {
	if quantity < 1 {
		return
	}
	s.apply(true, func(st session.Session) session.Session {
		return st.AddToCart(product, quantity, size, color)
	})
}

func (s *Store) RemoveFromCart(productId, size, color string) {
	s.apply(true, func(st session.Session) session.Session {
		return st.RemoveFromCart(productId, size, color)
	})
}

func (s *Store) UpdateQuantity(productId string, quantity int, size, color string) {
	s.apply(true, func(st session.Session) session.Session {
		return st.UpdateQuantity(productId, quantity, size, color)
	})
}

func (s *Store) ClearCart() {
	s.apply(true, session.Session.ClearCart)
}

func (s *Store) GetCartTotal() int {
	return s.Snapshot().CartTotal()
}

func (s *Store) GetCartItemsCount() int {
	return s.Snapshot().CartItemsCount()
}

func (s *Store) Cart() []models.CartItem {
	cart := s.Snapshot().Cart
	out := make([]models.CartItem, len(cart))
	copy(out, cart)
	return out
}

// wishlist

func (s *Store) AddToWishlist(product models.Product) {
	s.apply(true, func(st session.Session) session.Session {
		return st.AddToWishlist(product)
	})
}

func (s *Store) RemoveFromWishlist(productId string) {
	s.apply(true, func(st session.Session) session.Session {
		return st.RemoveFromWishlist(productId)
	})
}

func (s *Store) Wishlist() []models.Product {
	wl := s.Snapshot().Wishlist
	out := make([]models.Product, len(wl))
	copy(out, wl)
	return out
}

func (s *Store) IsInWishlist(productId string) bool {
	return s.Snapshot().InWishlist(productId)
}

// auth

func (s *Store) Login(user models.User) {
	s.apply(true, func(st session.Session) session.Session {
		return st.Login(user)
	})
}

func (s *Store) Logout() {
	s.apply(true, session.Session.Logout)
}

func (s *Store) User() (user models.User, exists bool) {
	st := s.Snapshot()
	if st.User == nil {
		return
	}
	return *st.User, true
}

func (s *Store) IsLoggedIn() bool {
	return s.Snapshot().IsLoggedIn
}

// orders

// AddOrder records a confirmed order for the given snapshot and empties the
// cart in the same step. It returns the new order id.
func (s *Store) AddOrder(items []models.CartItem, total int, address models.DeliveryAddress, method models.PaymentMethod) string {
	return s.PlaceOrder(items, total, address, method).Id
}

// PlaceOrder is AddOrder returning the whole order.
func (s *Store) PlaceOrder(items []models.CartItem, total int, address models.DeliveryAddress, method models.PaymentMethod) models.Order {
	now := s.now()
	id, err := s.newId(now)
	if err != nil {
		logrus.Warnf("PlaceOrder: %v", err)
		id = fmt.Sprintf("order_%d_%s", now.UnixMilli(), uuid.NewString())
	}
	var order models.Order
	s.apply(true, func(st session.Session) session.Session {
		st, order = st.AddOrder(id, now, session.OrderRequest{
			Items:           items,
			Total:           total,
			DeliveryAddress: address,
			PaymentMethod:   method,
		})
		return st
	})
	logrus.WithFields(logrus.Fields{"state": s.name, "order": order.Id, "total": order.Total}).Info("order placed")
	return order
}

func (s *Store) GetOrderById(id string) (models.Order, bool) {
	return s.Snapshot().OrderById(id)
}

func (s *Store) Orders() []models.Order {
	orders := s.Snapshot().Orders
	out := make([]models.Order, len(orders))
	copy(out, orders)
	return out
}

// ui flags are never persisted

func (s *Store) ToggleCart() {
	s.apply(false, session.Session.ToggleCart)
}

func (s *Store) ToggleMenu() {
	s.apply(false, session.Session.ToggleMenu)
}

func (s *Store) SetCartOpen(open bool) {
	s.apply(false, func(st session.Session) session.Session {
		return st.SetCartOpen(open)
	})
}

func (s *Store) IsCartOpen() bool {
	return s.Snapshot().IsCartOpen
}

func (s *Store) IsMenuOpen() bool {
	return s.Snapshot().IsMenuOpen
}
