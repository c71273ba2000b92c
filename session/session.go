// Package session holds the shopper's session state and the pure
// transitions applied to it. Nothing in this package performs I/O; every
// transition returns a new Session and leaves the receiver untouched.
package session

import (
	"fmt"
	"time"

	"luxeStore/models"

	"github.com/teris-io/shortid"
)

const DeliveryWindow = 7 * 24 * time.Hour

type Session struct {
	Cart       []models.CartItem
	Wishlist   []models.Product
	User       *models.User
	IsLoggedIn bool
	Orders     []models.Order
	IsCartOpen bool
	IsMenuOpen bool
}

// Empty is the state of a brand new session.
func Empty() Session {
	return Session{
		Cart:     []models.CartItem{},
		Wishlist: []models.Product{},
		Orders:   []models.Order{},
	}
}

// FromPersisted rebuilds a session from its persisted subset. UI flags
// always start closed.
func FromPersisted(p models.PersistedState) Session {
	s := Empty()
	if p.Cart != nil {
		s.Cart = p.Cart
	}
	if p.Wishlist != nil {
		s.Wishlist = p.Wishlist
	}
	if p.Orders != nil {
		s.Orders = p.Orders
	}
	if p.User != nil {
		u := *p.User
		s.User = &u
	}
	s.IsLoggedIn = s.User != nil
	return s
}

func (s Session) Persisted() models.PersistedState {
	return models.PersistedState{
		Cart:       s.Cart,
		Wishlist:   s.Wishlist,
		User:       s.User,
		IsLoggedIn: s.IsLoggedIn,
		Orders:     s.Orders,
	}
}

func (s Session) indexOf(productId, size, color string) int {
	for i, item := range s.Cart {
		if item.Matches(productId, size, color) {
			return i
		}
	}
	return -1
}

func (s Session) AddToCart(product models.Product, quantity int, size, color string) Session {
	cart := make([]models.CartItem, len(s.Cart), len(s.Cart)+1)
	copy(cart, s.Cart)
	if i := s.indexOf(product.Id, size, color); i >= 0 {
		cart[i].Quantity += quantity
	} else {
		cart = append(cart, models.CartItem{Product: product, Quantity: quantity, Size: size, Color: color})
	}
	s.Cart = cart
	return s
}

func (s Session) RemoveFromCart(productId, size, color string) Session {
	cart := make([]models.CartItem, 0, len(s.Cart))
	for _, item := range s.Cart {
		if !item.Matches(productId, size, color) {
			cart = append(cart, item)
		}
	}
	s.Cart = cart
	return s
}

// UpdateQuantity replaces the quantity as given; callers keep it positive.
func (s Session) UpdateQuantity(productId string, quantity int, size, color string) Session {
	i := s.indexOf(productId, size, color)
	if i < 0 {
		return s
	}
	cart := make([]models.CartItem, len(s.Cart))
	copy(cart, s.Cart)
	cart[i].Quantity = quantity
	s.Cart = cart
	return s
}

func (s Session) ClearCart() Session {
	s.Cart = []models.CartItem{}
	return s
}

func (s Session) CartTotal() int {
	total := 0
	for _, item := range s.Cart {
		total += item.Product.Price * item.Quantity
	}
	return total
}

func (s Session) CartItemsCount() int {
	count := 0
	for _, item := range s.Cart {
		count += item.Quantity
	}
	return count
}

func (s Session) InWishlist(productId string) bool {
	for _, p := range s.Wishlist {
		if p.Id == productId {
			return true
		}
	}
	return false
}

func (s Session) AddToWishlist(product models.Product) Session {
	if s.InWishlist(product.Id) {
		return s
	}
	wishlist := make([]models.Product, len(s.Wishlist), len(s.Wishlist)+1)
	copy(wishlist, s.Wishlist)
	s.Wishlist = append(wishlist, product)
	return s
}

func (s Session) RemoveFromWishlist(productId string) Session {
	wishlist := make([]models.Product, 0, len(s.Wishlist))
	for _, p := range s.Wishlist {
		if p.Id != productId {
			wishlist = append(wishlist, p)
		}
	}
	s.Wishlist = wishlist
	return s
}

func (s Session) Login(user models.User) Session {
	s.User = &user
	s.IsLoggedIn = true
	return s
}

// Logout drops the whole session, order history included.
func (s Session) Logout() Session {
	s.User = nil
	s.IsLoggedIn = false
	s.Cart = []models.CartItem{}
	s.Wishlist = []models.Product{}
	s.Orders = []models.Order{}
	return s
}

type OrderRequest struct {
	Items           []models.CartItem
	Total           int
	DeliveryAddress models.DeliveryAddress
	PaymentMethod   models.PaymentMethod
}

// AddOrder prepends a confirmed order and empties the cart in the same
// transition.
func (s Session) AddOrder(id string, now time.Time, req OrderRequest) (Session, models.Order) {
	items := make([]models.CartItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		items[i].Product.Sizes = cloneStrings(items[i].Product.Sizes)
		items[i].Product.Colors = cloneStrings(items[i].Product.Colors)
	}
	order := models.Order{
		Id:                id,
		Items:             items,
		Total:             req.Total,
		DeliveryAddress:   req.DeliveryAddress,
		PaymentMethod:     req.PaymentMethod,
		OrderDate:         now,
		Status:            models.OrderStatusConfirmed,
		EstimatedDelivery: now.Add(DeliveryWindow),
	}
	orders := make([]models.Order, 0, len(s.Orders)+1)
	orders = append(orders, order)
	orders = append(orders, s.Orders...)
	s.Orders = orders
	s.Cart = []models.CartItem{}
	return s, order
}

func (s Session) OrderById(id string) (order models.Order, exists bool) {
	for _, o := range s.Orders {
		if o.Id == id {
			return o, true
		}
	}
	return
}

func (s Session) ToggleCart() Session {
	s.IsCartOpen = !s.IsCartOpen
	return s
}

func (s Session) ToggleMenu() Session {
	s.IsMenuOpen = !s.IsMenuOpen
	return s
}

func (s Session) SetCartOpen(open bool) Session {
	s.IsCartOpen = open
	return s
}

// NewOrderID builds ids of the form order_<unix millis>_<short id>.
func NewOrderID(now time.Time) (string, error) {
	sid, err := shortid.Generate()
	if err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	return fmt.Sprintf("order_%d_%s", now.UnixMilli(), sid), nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
