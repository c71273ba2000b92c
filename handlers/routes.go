package handlers

import (
	"github.com/gorilla/mux"
)

func NewRouter(ha *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	router.Use(ha.metrics.Middleware)
	router.Handle("/metrics", ha.metrics.Handler()).Methods("GET")

	app := router.NewRoute().Subrouter()
	app.Use(ha.SessionMiddleware)

	app.HandleFunc("/", ha.Home).Methods("GET")
	app.HandleFunc("/categories", ha.GetCategories).Methods("GET")
	app.HandleFunc("/categories/{slug}", ha.GetCategory).Methods("GET")
	app.HandleFunc("/products/{id}", ha.GetProduct).Methods("GET")

	app.HandleFunc("/auth/login", ha.Login).Methods("POST")
	app.HandleFunc("/auth/logout", ha.Logout).Methods("POST")
	app.HandleFunc("/me", ha.Me).Methods("GET")

	app.HandleFunc("/cart", ha.GetCart).Methods("GET")
	app.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	app.HandleFunc("/cart", ha.UpdateCart).Methods("PUT")
	app.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	app.HandleFunc("/cart/increment", ha.IncrementCart).Methods("POST")
	app.HandleFunc("/cart/decrement", ha.DecrementCart).Methods("POST")
	app.HandleFunc("/cart/all", ha.ClearCart).Methods("DELETE")

	app.HandleFunc("/wishlist", ha.GetWishlist).Methods("GET")
	app.HandleFunc("/wishlist", ha.AddToWishlist).Methods("POST")
	app.HandleFunc("/wishlist/{id}", ha.RemoveFromWishlist).Methods("DELETE")

	app.HandleFunc("/ui/cart/toggle", ha.ToggleCart).Methods("POST")
	app.HandleFunc("/ui/menu/toggle", ha.ToggleMenu).Methods("POST")
	app.HandleFunc("/ui/cart", ha.SetCartOpen).Methods("PUT")

	app.HandleFunc("/checkout", ha.GetCheckout).Methods("GET")
	app.HandleFunc("/checkout/address", ha.SubmitAddress).Methods("POST")
	app.HandleFunc("/checkout/back", ha.CheckoutBack).Methods("POST")
	app.HandleFunc("/checkout/payment", ha.Pay).Methods("POST")

	app.HandleFunc("/orders", ha.GetOrders).Methods("GET")
	app.HandleFunc("/orders/{id}", ha.GetOrderById).Methods("GET")

	return router
}
