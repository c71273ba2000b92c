package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"time"

	"luxeStore/entities"
	"luxeStore/models"
	"luxeStore/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const SessionCookie = "sessionId"

type ctxKey int

const storeKey ctxKey = iota

type Handler struct {
	ss        *services.SessionService
	us        services.UserService
	ps        services.ProductService
	cs        services.CartService
	ws        services.WishlistService
	cas       services.CategoryService
	cos       *services.CheckoutService
	ors       services.OrderService
	metrics   *Metrics
	cookieTTL time.Duration
}

type HandlerParams struct {
	Sessions    *services.SessionService
	UsrService  services.UserService
	PrdService  services.ProductService
	CrtService  services.CartService
	WshService  services.WishlistService
	CatsService services.CategoryService
	ChkService  *services.CheckoutService
	OrdService  services.OrderService
	Metrics     *Metrics
	CookieTTL   time.Duration
}

func NewHandler(params HandlerParams) *Handler {
	if params.Metrics == nil {
		params.Metrics = NewMetrics()
	}
	h := &Handler{
		ss:        params.Sessions,
		us:        params.UsrService,
		ps:        params.PrdService,
		cs:        params.CrtService,
		ws:        params.WshService,
		cas:       params.CatsService,
		cos:       params.ChkService,
		ors:       params.OrdService,
		metrics:   params.Metrics,
		cookieTTL: params.CookieTTL,
	}
	h.ss.OnEvict(h.forgetSession)
	return h
}

// forgetSession drops per-store service state once a session leaves memory.
func (h *Handler) forgetSession(st *services.Store) {
	h.us.Forget(st)
	h.cs.Forget(st)
	h.cos.Reset(st)
}

func (h *Handler) store(r *http.Request) *services.Store {
	return r.Context().Value(storeKey).(*services.Store)
}

// simulated calls run to completion even if the client goes away
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Errorf("Marshal err: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logrus.Warnf("Unmarshal err: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	return true
}

// decodeOptional accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		logrus.Warnf("Unmarshal err: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	return true
}

// catalog

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.ps.GetHomePage()
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.ps.GetCategories()
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		logrus.Warnf("GetCategory: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	page, err := h.cas.FilterCategory(mux.Vars(r)["slug"], criteria)
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func parseCriteria(q url.Values) (c entities.FilterCriteria, err error) {
	c = entities.DefaultCriteria()
	if v := q.Get("min"); v != "" {
		if c.MinPrice, err = strconv.Atoi(v); err != nil {
			return
		}
	}
	if v := q.Get("max"); v != "" {
		if c.MaxPrice, err = strconv.Atoi(v); err != nil {
			return
		}
	}
	if sizes := q["size"]; len(sizes) > 0 {
		c.Sizes = sizes
	}
	if colors := q["color"]; len(colors) > 0 {
		c.Colors = colors
	}
	c.Sort = services.ParseSort(q.Get("sort"))
	return
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	page, err := h.ps.GetProductPage(id)
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	page.InWishlist = h.store(r).IsInWishlist(id)
	writeJSON(w, http.StatusOK, page)
}

// auth

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	if !decode(w, r, &creds) {
		return
	}
	resp, err := h.us.Login(detached(r), h.store(r), creds, r.URL.Query().Get("redirect"))
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	h.us.Logout(store)
	h.cos.Reset(store)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.us.CurrentUser(h.store(r))
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cs.GetCart(h.store(r)))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	if !decode(w, r, &req) {
		return
	}
	store := h.store(r)
	if err := h.cs.AddCartItem(detached(r), store, req); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	h.metrics.cartAdds.Inc()
	writeJSON(w, http.StatusOK, h.cs.GetCart(store))
}

func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	h.cartAction(w, r, h.cs.UpdateCartItem)
}

func (h *Handler) IncrementCart(w http.ResponseWriter, r *http.Request) {
	h.cartAction(w, r, h.cs.Increment)
}

func (h *Handler) DecrementCart(w http.ResponseWriter, r *http.Request) {
	h.cartAction(w, r, h.cs.Decrement)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	h.cartAction(w, r, func(store *services.Store, req entities.CartRequest) error {
		h.cs.RemoveCartItem(store, req)
		return nil
	})
}

func (h *Handler) cartAction(w http.ResponseWriter, r *http.Request, action func(*services.Store, entities.CartRequest) error) {
	req := entities.CartRequest{}
	if !decode(w, r, &req) {
		return
	}
	store := h.store(r)
	if err := action(store, req); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cs.GetCart(store))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	h.cs.ClearCart(store)
	writeJSON(w, http.StatusOK, h.cs.GetCart(store))
}

// wishlist

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.GetWishlist(h.store(r)))
}

func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	req := entities.WishlistRequest{}
	if !decode(w, r, &req) {
		return
	}
	store := h.store(r)
	if err := h.ws.AddToWishlist(store, req.ProductId); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ws.GetWishlist(store))
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	h.ws.RemoveFromWishlist(store, mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, h.ws.GetWishlist(store))
}

// ui

func uiState(store *services.Store) entities.UIState {
	return entities.UIState{
		IsCartOpen: store.IsCartOpen(),
		IsMenuOpen: store.IsMenuOpen(),
	}
}

func (h *Handler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.ToggleCart()
	writeJSON(w, http.StatusOK, uiState(store))
}

func (h *Handler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.ToggleMenu()
	writeJSON(w, http.StatusOK, uiState(store))
}

func (h *Handler) SetCartOpen(w http.ResponseWriter, r *http.Request) {
	req := entities.UIRequest{}
	if !decode(w, r, &req) {
		return
	}
	store := h.store(r)
	store.SetCartOpen(req.Open)
	writeJSON(w, http.StatusOK, uiState(store))
}

// checkout

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	h.checkoutResponse(w, r)(h.cos.GetCheckout(h.store(r)))
}

func (h *Handler) SubmitAddress(w http.ResponseWriter, r *http.Request) {
	addr := models.DeliveryAddress{}
	if !decode(w, r, &addr) {
		return
	}
	h.checkoutResponse(w, r)(h.cos.SubmitAddress(h.store(r), addr))
}

func (h *Handler) CheckoutBack(w http.ResponseWriter, r *http.Request) {
	h.checkoutResponse(w, r)(h.cos.Back(h.store(r)))
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	req := entities.PaymentRequest{}
	if !decodeOptional(w, r, &req) {
		return
	}
	v, err := h.cos.Pay(detached(r), h.store(r), req.PaymentMethod)
	if err == nil {
		h.metrics.ordersPlaced.Inc()
		h.metrics.revenue.Add(float64(v.Total))
	}
	h.checkoutResponse(w, r)(v, err)
}

func (h *Handler) checkoutResponse(w http.ResponseWriter, r *http.Request) func(entities.CheckoutView, error) {
	return func(v entities.CheckoutView, err error) {
		if err != nil {
			WriteErrorResponse(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// orders

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ors.GetOrders(h.store(r))
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrderById(w http.ResponseWriter, r *http.Request) {
	order, err := h.ors.GetOrderById(h.store(r), mux.Vars(r)["id"])
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// middleware

// SessionMiddleware attaches the shopper's store, minting a sessionId
// cookie on first contact.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionId string
		if c, err := r.Cookie(SessionCookie); err == nil && h.ss.IsValidSessionId(c.Value) {
			sessionId = c.Value
		} else {
			sessionId = h.ss.NewSessionId()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionId,
				Path:     "/",
				Expires:  time.Now().Add(h.cookieTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			logrus.WithField("session", sessionId).Debug("new session")
		}
		ctx := context.WithValue(r.Context(), storeKey, h.ss.GetStore(sessionId))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.Errorf("panic occurred: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var redirect *entities.RedirectError
	var verrs entities.ValidationErrors
	switch {
	case errors.As(err, &redirect):
		http.Redirect(w, r, redirect.Location, http.StatusSeeOther)
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]entities.ValidationErrors{"errors": verrs})
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	case errors.Is(err, models.ErrInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logrus.Errorf("WriteErrorResponse: %v", err)
		http.Error(w, models.ErrServerError.Error(), http.StatusInternalServerError)
	}
}
