package models

import (
	"errors"
	"time"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnauthorized = errors.New("unauthorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")
var ErrInProgress = errors.New("operation already in progress")

type Category string

const (
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryKids        Category = "kids"
	CategoryAccessories Category = "accessories"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentUPI, PaymentCOD, PaymentCard:
		return true
	}
	return false
}

// Product is owned by the catalog and never mutated after load.
type Product struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

type CategoryInfo struct {
	Name  string   `json:"name"`
	Slug  Category `json:"slug"`
	Image string   `json:"image"`
}

// CartItem is a line item; (Product.Id, Size, Color) identifies it.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

func (c CartItem) Matches(productId, size, color string) bool {
	return c.Product.Id == productId && c.Size == size && c.Color == color
}

type User struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type DeliveryAddress struct {
	FullName     string `json:"fullName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,len=10,digits"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PinCode      string `json:"pinCode" validate:"required,len=6,digits"`
	Landmark     string `json:"landmark,omitempty"`
}

type Order struct {
	Id                string          `json:"id"`
	Items             []CartItem      `json:"items"`
	Total             int             `json:"total"`
	DeliveryAddress   DeliveryAddress `json:"deliveryAddress"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	OrderDate         time.Time       `json:"orderDate"`
	Status            OrderStatus     `json:"status"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
}

// PersistedState is the blob written after every store mutation.
type PersistedState struct {
	Cart       []CartItem `json:"cart"`
	Wishlist   []Product  `json:"wishlist"`
	User       *User      `json:"user"`
	IsLoggedIn bool       `json:"isLoggedIn"`
	Orders     []Order    `json:"orders"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,looseemail"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProductRow is the SQL shape of a product; sizes and colors are JSON text.
type ProductRow struct {
	Id          string  `db:"id"`
	Position    int     `db:"position"`
	Name        string  `db:"name"`
	Price       int     `db:"price"`
	Image       string  `db:"image"`
	Category    string  `db:"category"`
	Description string  `db:"description"`
	Rating      float64 `db:"rating"`
	Reviews     int     `db:"reviews"`
	Sizes       string  `db:"sizes"`
	Colors      string  `db:"colors"`
}
