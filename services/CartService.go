package services

import (
	"context"
	"time"

	"luxeStore/entities"
	"luxeStore/models"
	"luxeStore/repository"

	"github.com/sirupsen/logrus"
)

type CartService struct {
	pr     repository.ProductRepository
	delay  time.Duration
	guards *guards
}

func NewCartService(productRepo repository.ProductRepository, addDelay time.Duration) CartService {
	return CartService{
		pr:     productRepo,
		delay:  addDelay,
		guards: &guards{},
	}
}

// Forget releases the add-to-cart guard of an evicted store.
func (cs *CartService) Forget(store *Store) {
	cs.guards.Drop(store)
}

// AddCartItem is the product page "Add to Cart" button. Missing size and
// color fall back to the product's first option; quantity defaults to 1.
func (cs *CartService) AddCartItem(ctx context.Context, store *Store, req entities.CartRequest) (err error) {
	if !store.IsLoggedIn() {
		err = LoginRedirect("/products/" + req.ProductId)
		return
	}
	p, ex, e := cs.pr.GetProductById(req.ProductId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		logrus.Warnf("AddCartItem: product %q does not exist", req.ProductId)
		err = models.ErrNotFoundError
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		err = models.ErrBadRequest
		return
	}
	if req.Size, err = pickOption(req.Size, p.Sizes); err != nil {
		return
	}
	if req.Color, err = pickOption(req.Color, p.Colors); err != nil {
		return
	}

	g := cs.guards.For(store)
	if !g.Begin() {
		err = models.ErrInProgress
		return
	}
	defer g.End()
	_, err = Simulate(ctx, cs.delay, func() (struct{}, error) {
		store.AddToCart(p, req.Quantity, req.Size, req.Color)
		return struct{}{}, nil
	})
	if err != nil {
		logrus.Warnf("AddCartItem: %v", err)
	}
	return
}

func pickOption(chosen string, options []string) (string, error) {
	if chosen == "" {
		if len(options) > 0 {
			return options[0], nil
		}
		return "", nil
	}
	for _, o := range options {
		if o == chosen {
			return chosen, nil
		}
	}
	logrus.Warnf("pickOption: %q is not offered", chosen)
	return "", models.ErrBadRequest
}

func (cs *CartService) findLine(store *Store, req entities.CartRequest) (item models.CartItem, exists bool) {
	for _, it := range store.Cart() {
		if it.Matches(req.ProductId, req.Size, req.Color) {
			return it, true
		}
	}
	return
}

// UpdateCartItem sets a line's quantity. The store does not clamp, so
// non-positive values stop here.
func (cs *CartService) UpdateCartItem(store *Store, req entities.CartRequest) (err error) {
	if req.Quantity < 1 {
		err = models.ErrBadRequest
		return
	}
	if _, ex := cs.findLine(store, req); !ex {
		err = models.ErrNotFoundError
		return
	}
	store.UpdateQuantity(req.ProductId, req.Quantity, req.Size, req.Color)
	return
}

func (cs *CartService) Increment(store *Store, req entities.CartRequest) (err error) {
	item, ex := cs.findLine(store, req)
	if !ex {
		err = models.ErrNotFoundError
		return
	}
	store.UpdateQuantity(req.ProductId, item.Quantity+1, req.Size, req.Color)
	return
}

// Decrement stops at one; removing a line is a separate action.
func (cs *CartService) Decrement(store *Store, req entities.CartRequest) (err error) {
	item, ex := cs.findLine(store, req)
	if !ex {
		err = models.ErrNotFoundError
		return
	}
	if item.Quantity > 1 {
		store.UpdateQuantity(req.ProductId, item.Quantity-1, req.Size, req.Color)
	}
	return
}

func (cs *CartService) RemoveCartItem(store *Store, req entities.CartRequest) {
	store.RemoveFromCart(req.ProductId, req.Size, req.Color)
}

func (cs *CartService) ClearCart(store *Store) {
	store.ClearCart()
}

func (cs *CartService) GetCart(store *Store) entities.CartSummary {
	return Summarize(store.Cart(), store.IsCartOpen())
}

// Summarize is the cart drawer footer: shipping applies only to a non-empty
// cart.
func Summarize(items []models.CartItem, open bool) (sum entities.CartSummary) {
	sum.Items = items
	sum.LineCount = len(items)
	sum.IsCartOpen = open
	for _, it := range items {
		sum.ItemsCount += it.Quantity
		sum.Subtotal += it.Product.Price * it.Quantity
	}
	if sum.Subtotal > 0 {
		sum.Shipping = ShippingFee
	}
	sum.Total = sum.Subtotal + sum.Shipping
	return
}
