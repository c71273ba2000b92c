package services

import (
	"context"
	"sync"
	"time"

	"luxeStore/entities"
	"luxeStore/models"
	"luxeStore/repository"

	"github.com/sirupsen/logrus"
)

const (
	ShippingFee  = 99
	CheckoutPath = "/checkout"
)

type checkoutFlow struct {
	step       entities.CheckoutStep
	address    models.DeliveryAddress
	method     models.PaymentMethod
	errors     entities.ValidationErrors
	orderId    string
	processing InFlight
}

func newCheckoutFlow() *checkoutFlow {
	return &checkoutFlow{
		step:   entities.StepAddress,
		method: models.PaymentUPI,
	}
}

// CheckoutService runs the address, payment, success flow of each session.
type CheckoutService struct {
	mu        sync.Mutex
	flows     map[string]*checkoutFlow
	delay     time.Duration
	publisher repository.OrderPublisher
}

func NewCheckoutService(paymentDelay time.Duration, publisher repository.OrderPublisher) *CheckoutService {
	if publisher == nil {
		publisher = repository.NopOrderPublisher{}
	}
	return &CheckoutService{
		flows:     make(map[string]*checkoutFlow),
		delay:     paymentDelay,
		publisher: publisher,
	}
}

// flow returns the session's flow; a finished flow is replaced once the
// cart has items again.
func (cos *CheckoutService) flow(store *Store) *checkoutFlow {
	f, ok := cos.flows[store.Name()]
	if !ok || (f.step == entities.StepSuccess && !f.processing.Busy() && store.GetCartItemsCount() > 0) {
		f = newCheckoutFlow()
		cos.flows[store.Name()] = f
	}
	return f
}

// guard checks authentication first, then the cart.
func (cos *CheckoutService) guard(store *Store, f *checkoutFlow) error {
	if !store.IsLoggedIn() {
		return LoginRedirect(CheckoutPath)
	}
	if f.step != entities.StepSuccess && !f.processing.Busy() && store.GetCartItemsCount() == 0 {
		return &entities.RedirectError{Location: "/"}
	}
	return nil
}

func (cos *CheckoutService) view(store *Store, f *checkoutFlow) (v entities.CheckoutView) {
	v.Step = f.step
	v.Processing = f.processing.Busy()
	v.Address = f.address
	v.PaymentMethod = f.method
	v.Errors = f.errors
	v.OrderId = f.orderId
	if f.step == entities.StepSuccess {
		if order, ex := store.GetOrderById(f.orderId); ex {
			v.Items = order.Items
			v.Total = order.Total
			v.Shipping = ShippingFee
			v.Subtotal = order.Total - ShippingFee
		}
		return
	}
	v.Items = store.Cart()
	v.Subtotal = store.GetCartTotal()
	v.Shipping = ShippingFee
	v.Total = v.Subtotal + ShippingFee
	return
}

func (cos *CheckoutService) GetCheckout(store *Store) (v entities.CheckoutView, err error) {
	cos.mu.Lock()
	defer cos.mu.Unlock()
	f := cos.flow(store)
	if err = cos.guard(store, f); err != nil {
		return
	}
	v = cos.view(store, f)
	return
}

// SubmitAddress keeps the address as typed and moves to payment when it
// validates.
func (cos *CheckoutService) SubmitAddress(store *Store, addr models.DeliveryAddress) (v entities.CheckoutView, err error) {
	cos.mu.Lock()
	defer cos.mu.Unlock()
	f := cos.flow(store)
	if err = cos.guard(store, f); err != nil {
		return
	}
	if f.step != entities.StepAddress {
		logrus.Warnf("SubmitAddress: flow is at %s", f.step)
		err = models.ErrNotAllowed
		return
	}
	f.address = addr
	f.errors = ValidateAddress(addr)
	if f.errors != nil {
		err = f.errors
	} else {
		f.step = entities.StepPayment
	}
	v = cos.view(store, f)
	return
}

func (cos *CheckoutService) Back(store *Store) (v entities.CheckoutView, err error) {
	cos.mu.Lock()
	defer cos.mu.Unlock()
	f := cos.flow(store)
	if err = cos.guard(store, f); err != nil {
		return
	}
	if f.step != entities.StepPayment || f.processing.Busy() {
		err = models.ErrNotAllowed
		return
	}
	f.step = entities.StepAddress
	v = cos.view(store, f)
	return
}

// Pay runs the simulated payment and places the order. The cart is
// snapshotted before the wait. A second call while one is running gets
// ErrInProgress.
func (cos *CheckoutService) Pay(ctx context.Context, store *Store, method models.PaymentMethod) (v entities.CheckoutView, err error) {
	if method == "" {
		method = models.PaymentUPI
	}
	if !method.Valid() {
		err = models.ErrBadRequest
		return
	}

	cos.mu.Lock()
	f := cos.flow(store)
	if err = cos.guard(store, f); err != nil {
		cos.mu.Unlock()
		return
	}
	if f.step != entities.StepPayment {
		cos.mu.Unlock()
		err = models.ErrNotAllowed
		return
	}
	if !f.processing.Begin() {
		cos.mu.Unlock()
		err = models.ErrInProgress
		return
	}
	defer f.processing.End()
	f.method = method
	items := store.Cart()
	total := store.GetCartTotal() + ShippingFee
	address := f.address
	cos.mu.Unlock()

	order, err := Simulate(ctx, cos.delay, func() (models.Order, error) {
		return store.PlaceOrder(items, total, address, method), nil
	})
	if err != nil {
		logrus.Warnf("Pay: %v", err)
		return
	}
	if e := cos.publisher.PublishOrder(context.WithoutCancel(ctx), store.Name(), order); e != nil {
		logrus.Errorf("Pay: %v", e)
	}

	cos.mu.Lock()
	defer cos.mu.Unlock()
	f.step = entities.StepSuccess
	f.orderId = order.Id
	v = cos.view(store, f)
	v.Processing = false
	return
}

// Reset forgets the session's flow, as on logout.
func (cos *CheckoutService) Reset(store *Store) {
	cos.mu.Lock()
	defer cos.mu.Unlock()
	delete(cos.flows, store.Name())
}
