package entities

import (
	"sort"
	"strings"

	"luxeStore/models"
)

type CartRequest struct {
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type CartSummary struct {
	Items      []models.CartItem `json:"items"`
	LineCount  int               `json:"lineCount"`
	ItemsCount int               `json:"itemsCount"`
	Subtotal   int               `json:"subtotal"`
	Shipping   int               `json:"shipping"`
	Total      int               `json:"total"`
	IsCartOpen bool              `json:"isCartOpen"`
}

type WishlistRequest struct {
	ProductId string `json:"productId"`
}

type UIRequest struct {
	Open bool `json:"open"`
}

type UIState struct {
	IsCartOpen bool `json:"isCartOpen"`
	IsMenuOpen bool `json:"isMenuOpen"`
}

type LoginResponse struct {
	User     models.User `json:"user"`
	Redirect string      `json:"redirect"`
}

type ProductPage struct {
	Product         models.Product   `json:"product"`
	InWishlist      bool             `json:"inWishlist"`
	RelatedProducts []models.Product `json:"relatedProducts"`
}

type HomePage struct {
	NewArrivals []models.Product      `json:"newArrivals"`
	BestSellers []models.Product      `json:"bestSellers"`
	Categories  []models.CategoryInfo `json:"categories"`
}

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
)

type FilterCriteria struct {
	MinPrice int      `json:"minPrice"`
	MaxPrice int      `json:"maxPrice"`
	Sizes    []string `json:"sizes"`
	Colors   []string `json:"colors"`
	Sort     SortKey  `json:"sort"`
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Sizes:    []string{},
		Colors:   []string{},
		Sort:     SortNewest,
	}
}

type CategoryPage struct {
	Slug            string           `json:"slug"`
	Products        []models.Product `json:"products"`
	AvailableSizes  []string         `json:"availableSizes"`
	AvailableColors []string         `json:"availableColors"`
	Criteria        FilterCriteria   `json:"criteria"`
}

type CheckoutStep string

const (
	StepAddress CheckoutStep = "address"
	StepPayment CheckoutStep = "payment"
	StepSuccess CheckoutStep = "success"
)

type CheckoutView struct {
	Step          CheckoutStep           `json:"step"`
	Processing    bool                   `json:"processing"`
	Address       models.DeliveryAddress `json:"address"`
	PaymentMethod models.PaymentMethod   `json:"paymentMethod"`
	Errors        ValidationErrors       `json:"errors,omitempty"`
	Items         []models.CartItem      `json:"items"`
	Subtotal      int                    `json:"subtotal"`
	Shipping      int                    `json:"shipping"`
	Total         int                    `json:"total"`
	OrderId       string                 `json:"orderId,omitempty"`
}

type PaymentRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

// ValidationErrors maps a form field to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RedirectError tells the caller to send the shopper somewhere else.
type RedirectError struct {
	Location string
}

func (r *RedirectError) Error() string {
	return "redirect to " + r.Location
}
