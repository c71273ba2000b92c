package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"luxeStore/entities"
	"luxeStore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	orders []models.Order
	names  []string
}

func (r *recordingPublisher) PublishOrder(_ context.Context, sessionId string, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	r.names = append(r.names, sessionId)
	return nil
}

func (r *recordingPublisher) Close() {}

func checkoutStore(t *testing.T) *Store {
	t.Helper()
	s := loggedInStore(t)
	s.AddToCart(product(t, "2"), 1, "M", "Ivory")
	return s
}

func redirectTo(t *testing.T, err error) string {
	t.Helper()
	var redirect *entities.RedirectError
	require.ErrorAs(t, err, &redirect)
	return redirect.Location
}

func TestCheckout_Guard(t *testing.T) {
	cos := NewCheckoutService(0, nil)

	anon := newTestStore(t)
	anon.AddToCart(product(t, "2"), 1, "M", "Ivory")
	_, err := cos.GetCheckout(anon)
	assert.Equal(t, "/auth/login?redirect=%2Fcheckout", redirectTo(t, err))

	// authentication is checked before the cart
	_, err = cos.GetCheckout(newTestStore(t))
	assert.Equal(t, "/auth/login?redirect=%2Fcheckout", redirectTo(t, err))

	_, err = cos.GetCheckout(loggedInStore(t))
	assert.Equal(t, "/", redirectTo(t, err))
}

func TestCheckout_AddressValidation(t *testing.T) {
	cos := NewCheckoutService(0, nil)
	s := checkoutStore(t)

	v, err := cos.GetCheckout(s)
	require.NoError(t, err)
	assert.Equal(t, entities.StepAddress, v.Step)
	assert.Equal(t, models.PaymentUPI, v.PaymentMethod)

	bad := validAddress()
	bad.PhoneNumber = "12345"
	v, err = cos.SubmitAddress(s, bad)
	var verrs entities.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Please enter a valid 10-digit phone number", verrs["phoneNumber"])
	assert.Equal(t, entities.StepAddress, v.Step)
	assert.Equal(t, "12345", v.Address.PhoneNumber)

	v, err = cos.SubmitAddress(s, validAddress())
	require.NoError(t, err)
	assert.Equal(t, entities.StepPayment, v.Step)
	assert.Empty(t, v.Errors)

	_, err = cos.SubmitAddress(s, validAddress())
	assert.ErrorIs(t, err, models.ErrNotAllowed)
}

func TestCheckout_BackKeepsAddress(t *testing.T) {
	cos := NewCheckoutService(0, nil)
	s := checkoutStore(t)

	_, err := cos.Back(s)
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	_, err = cos.SubmitAddress(s, validAddress())
	require.NoError(t, err)
	v, err := cos.Back(s)
	require.NoError(t, err)
	assert.Equal(t, entities.StepAddress, v.Step)
	assert.Equal(t, validAddress(), v.Address)
}

func TestCheckout_PayPlacesOrder(t *testing.T) {
	pub := &recordingPublisher{}
	cos := NewCheckoutService(0, pub)
	s := checkoutStore(t)
	snapshot := s.Cart()

	_, err := cos.Pay(context.Background(), s, models.PaymentCOD)
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	v, err := cos.SubmitAddress(s, validAddress())
	require.NoError(t, err)
	assert.Equal(t, 2899, v.Subtotal)
	assert.Equal(t, 99, v.Shipping)
	assert.Equal(t, 2998, v.Total)

	_, err = cos.Pay(context.Background(), s, "bitcoin")
	assert.ErrorIs(t, err, models.ErrBadRequest)

	v, err = cos.Pay(context.Background(), s, models.PaymentCOD)
	require.NoError(t, err)
	assert.Equal(t, entities.StepSuccess, v.Step)
	assert.False(t, v.Processing)
	require.NotEmpty(t, v.OrderId)
	assert.Equal(t, 2998, v.Total)

	assert.Empty(t, s.Cart())
	order, ex := s.GetOrderById(v.OrderId)
	require.True(t, ex)
	assert.Equal(t, 2998, order.Total)
	assert.Equal(t, snapshot, order.Items)
	assert.Equal(t, models.PaymentCOD, order.PaymentMethod)
	assert.Equal(t, validAddress(), order.DeliveryAddress)

	require.Len(t, pub.orders, 1)
	assert.Equal(t, order.Id, pub.orders[0].Id)
	assert.Equal(t, s.Name(), pub.names[0])

	// the success page survives the now empty cart
	v, err = cos.GetCheckout(s)
	require.NoError(t, err)
	assert.Equal(t, entities.StepSuccess, v.Step)
	assert.Equal(t, order.Id, v.OrderId)

	// a new cart starts a new checkout
	s.AddToCart(product(t, "7"), 1, "5-6Y", "Blue")
	v, err = cos.GetCheckout(s)
	require.NoError(t, err)
	assert.Equal(t, entities.StepAddress, v.Step)
	assert.Empty(t, v.OrderId)
}

func TestCheckout_PayRejectsDoubleSubmit(t *testing.T) {
	cos := NewCheckoutService(200*time.Millisecond, nil)
	s := checkoutStore(t)
	_, err := cos.SubmitAddress(s, validAddress())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := cos.Pay(context.Background(), s, models.PaymentUPI)
		done <- err
	}()
	require.Eventually(t, func() bool {
		v, err := cos.GetCheckout(s)
		return err == nil && v.Processing
	}, time.Second, 5*time.Millisecond)

	_, err = cos.Pay(context.Background(), s, models.PaymentUPI)
	assert.ErrorIs(t, err, models.ErrInProgress)
	_, err = cos.Back(s)
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	require.NoError(t, <-done)
	assert.Len(t, s.Orders(), 1)
}

func TestCheckout_CancelledPaymentKeepsCart(t *testing.T) {
	cos := NewCheckoutService(time.Second, nil)
	s := checkoutStore(t)
	_, err := cos.SubmitAddress(s, validAddress())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cos.Pay(ctx, s, models.PaymentUPI)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Orders())
	assert.Len(t, s.Cart(), 1)

	v, err := cos.GetCheckout(s)
	require.NoError(t, err)
	assert.Equal(t, entities.StepPayment, v.Step)
	assert.False(t, v.Processing)
}

func TestCheckout_Reset(t *testing.T) {
	cos := NewCheckoutService(0, nil)
	s := checkoutStore(t)
	_, err := cos.SubmitAddress(s, validAddress())
	require.NoError(t, err)

	cos.Reset(s)
	v, err := cos.GetCheckout(s)
	require.NoError(t, err)
	assert.Equal(t, entities.StepAddress, v.Step)
	assert.Empty(t, v.Address.FullName)
}
