package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"luxeStore/models"
	"luxeStore/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func product(t *testing.T, id string) models.Product {
	t.Helper()
	p, ex, err := repository.NewProductRepository().GetProductById(id)
	require.NoError(t, err)
	require.True(t, ex, "product %s", id)
	return p
}

func fileRepo(t *testing.T) (repository.StateRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := repository.NewFileStateRepository(dir)
	require.NoError(t, err)
	return repo, dir
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	repo, _ := fileRepo(t)
	return NewStore(repo, DefaultStateName, WithClock(func() time.Time { return fixedNow }))
}

func loggedInStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	s.Login(UserFromEmail("ana@example.com"))
	return s
}

type failingRepo struct{}

func (failingRepo) LoadState(string) (models.PersistedState, bool, error) {
	return models.PersistedState{}, false, errors.New("load failed")
}
func (failingRepo) SaveState(string, models.PersistedState) error { return errors.New("save failed") }
func (failingRepo) DeleteState(string) error                      { return errors.New("delete failed") }

func TestStore_WritesThroughAndRehydrates(t *testing.T) {
	repo, _ := fileRepo(t)
	s := NewStore(repo, DefaultStateName, WithClock(func() time.Time { return fixedNow }))
	s.Login(models.User{Name: "ana", Email: "ana@example.com"})
	s.AddToCart(product(t, "1"), 2, "M", "Navy")
	s.AddToWishlist(product(t, "4"))
	s.AddToCart(product(t, "2"), 1, "S", "Rose")
	id := s.AddOrder(s.Cart(), s.GetCartTotal()+ShippingFee, models.DeliveryAddress{FullName: "Ana"}, models.PaymentCOD)
	s.AddToCart(product(t, "5"), 1, "L", "White")

	restored := NewStore(repo, DefaultStateName)
	assert.True(t, restored.IsLoggedIn())
	user, ex := restored.User()
	require.True(t, ex)
	assert.Equal(t, "ana", user.Name)
	assert.Equal(t, s.Cart(), restored.Cart())
	assert.Equal(t, s.Wishlist(), restored.Wishlist())

	order, ex := restored.GetOrderById(id)
	require.True(t, ex)
	assert.True(t, fixedNow.Equal(order.OrderDate))
	assert.True(t, fixedNow.Add(7*24*time.Hour).Equal(order.EstimatedDelivery))
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, 2*3499+2899+ShippingFee, order.Total)
}

func TestStore_UIFlagsAreNotPersisted(t *testing.T) {
	repo, _ := fileRepo(t)
	s := NewStore(repo, DefaultStateName)
	s.ToggleCart()
	s.ToggleMenu()
	s.AddToCart(product(t, "10"), 1, "3-4Y", "White")
	assert.True(t, s.IsCartOpen())
	assert.True(t, s.IsMenuOpen())

	restored := NewStore(repo, DefaultStateName)
	assert.False(t, restored.IsCartOpen())
	assert.False(t, restored.IsMenuOpen())
	assert.Equal(t, 1, restored.GetCartItemsCount())

	s.SetCartOpen(false)
	assert.False(t, s.IsCartOpen())
	s.SetCartOpen(true)
	s.SetCartOpen(true)
	assert.True(t, s.IsCartOpen())
}

func TestStore_MalformedBlobStartsEmpty(t *testing.T) {
	repo, dir := fileRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultStateName+".json"), []byte("{not json"), 0o644))

	s := NewStore(repo, DefaultStateName)
	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.Cart())
	assert.Empty(t, s.Orders())
}

func TestStore_StorageFailuresAreSwallowed(t *testing.T) {
	s := NewStore(failingRepo{}, DefaultStateName)
	assert.NotPanics(t, func() {
		s.AddToCart(product(t, "1"), 1, "M", "Navy")
		s.Logout()
	})
	assert.Empty(t, s.Cart())
}

func TestStore_AddToCartIgnoresNonPositiveQuantity(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(product(t, "1"), 0, "M", "Navy")
	s.AddToCart(product(t, "1"), -3, "M", "Navy")
	assert.Empty(t, s.Cart())
}

func TestStore_AddToCartSumsQuantities(t *testing.T) {
	s := newTestStore(t)
	for _, q := range []int{1, 3, 2} {
		s.AddToCart(product(t, "3"), q, "L", "Camel")
	}
	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 6, cart[0].Quantity)
	assert.Equal(t, 6*4299, s.GetCartTotal())

	s.RemoveFromCart("3", "L", "Camel")
	assert.Equal(t, 0, s.GetCartTotal())
}

func TestStore_AddOrderIsAtomic(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(product(t, "2"), 1, "M", "Ivory")
	s.AddToCart(product(t, "8"), 2, "", "Black")
	before := s.Cart()
	ordersBefore := len(s.Orders())

	id := s.AddOrder(before, s.GetCartTotal()+ShippingFee, models.DeliveryAddress{}, models.PaymentUPI)

	assert.Empty(t, s.Cart())
	orders := s.Orders()
	require.Len(t, orders, ordersBefore+1)
	assert.Equal(t, id, orders[0].Id)
	assert.Equal(t, before, orders[0].Items)
}

func TestStore_OrdersAreNewestFirst(t *testing.T) {
	s := newTestStore(t)
	first := s.AddOrder(nil, 99, models.DeliveryAddress{}, models.PaymentUPI)
	second := s.AddOrder(nil, 99, models.DeliveryAddress{}, models.PaymentUPI)

	require.NotEqual(t, first, second)
	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, second, orders[0].Id)
	assert.Equal(t, first, orders[1].Id)
}

func TestStore_OrderIdFallback(t *testing.T) {
	s := NewStore(nil, DefaultStateName,
		WithClock(func() time.Time { return fixedNow }),
		WithOrderIds(func(time.Time) (string, error) { return "", errors.New("no entropy") }))

	id := s.AddOrder(nil, 99, models.DeliveryAddress{}, models.PaymentCard)
	assert.Contains(t, id, "order_1792227600000_")
	_, ex := s.GetOrderById(id)
	assert.True(t, ex)
}

func TestStore_LogoutResetsEverything(t *testing.T) {
	s := loggedInStore(t)
	s.AddToCart(product(t, "1"), 1, "M", "Navy")
	s.AddToWishlist(product(t, "9"))
	s.AddOrder(s.Cart(), 3598, models.DeliveryAddress{}, models.PaymentUPI)

	s.Logout()
	assert.False(t, s.IsLoggedIn())
	_, ex := s.User()
	assert.False(t, ex)
	assert.Empty(t, s.Cart())
	assert.Empty(t, s.Wishlist())
	assert.Empty(t, s.Orders())
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := newTestStore(t)
	p := product(t, "7")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddToCart(p, 1, "5-6Y", "Blue")
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.GetCartItemsCount())
	assert.Len(t, s.Cart(), 1)
}

func TestSessionService_OneStorePerSession(t *testing.T) {
	repo, _ := fileRepo(t)
	ss := NewSessionService(repo, "")
	a, b := ss.NewSessionId(), ss.NewSessionId()
	require.NotEqual(t, a, b)
	assert.True(t, ss.IsValidSessionId(a))
	assert.False(t, ss.IsValidSessionId("not-a-session"))

	assert.Same(t, ss.GetStore(a), ss.GetStore(a))
	assert.Equal(t, DefaultStateName+":"+a, ss.GetStore(a).Name())

	ss.GetStore(a).AddToCart(product(t, "1"), 1, "M", "Navy")
	assert.Empty(t, ss.GetStore(b).Cart())

	ss.Forget(a)
	assert.Equal(t, 1, ss.GetStore(a).GetCartItemsCount())
}

func TestSessionService_EvictIdle(t *testing.T) {
	repo, _ := fileRepo(t)
	ss := NewSessionService(repo, "")
	clock := fixedNow
	ss.now = func() time.Time { return clock }
	var evicted []*Store
	ss.OnEvict(func(st *Store) { evicted = append(evicted, st) })

	for i := 0; i < 1000; i++ {
		ss.GetStore(ss.NewSessionId())
	}
	kept := ss.NewSessionId()
	ss.GetStore(kept).AddToCart(product(t, "1"), 2, "M", "Navy")
	require.Equal(t, 1001, ss.Len())

	clock = clock.Add(30 * time.Minute)
	ss.GetStore(kept)
	clock = clock.Add(45 * time.Minute)

	assert.Equal(t, 1000, ss.EvictIdle(time.Hour))
	assert.Len(t, evicted, 1000)
	assert.Equal(t, 1, ss.Len())

	clock = clock.Add(time.Hour)
	assert.Equal(t, 1, ss.EvictIdle(time.Hour))
	assert.Equal(t, 0, ss.Len())
	assert.Equal(t, 2, ss.GetStore(kept).GetCartItemsCount())
}

func TestSessionService_SweepStopsWithContext(t *testing.T) {
	repo, _ := fileRepo(t)
	ss := NewSessionService(repo, "")
	ss.GetStore(ss.NewSessionId())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ss.Sweep(ctx, 10*time.Millisecond)
		close(done)
	}()
	require.Eventually(t, func() bool { return ss.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestForgetReleasesGuards(t *testing.T) {
	cs := NewCartService(repository.NewProductRepository(), 0)
	us := NewUserService(0)
	st := newTestStore(t)

	require.True(t, cs.guards.For(st).Begin())
	require.True(t, us.guards.For(st).Begin())
	cs.Forget(st)
	us.Forget(st)
	assert.False(t, cs.guards.For(st).Busy())
	assert.False(t, us.guards.For(st).Busy())
}
