package session

import (
	"strings"
	"testing"
	"time"

	"luxeStore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	blazer = models.Product{Id: "1", Name: "Italian Linen Blazer", Price: 3499, Sizes: []string{"S", "M"}, Colors: []string{"Navy"}}
	dress  = models.Product{Id: "2", Name: "Silk Midi Dress", Price: 2899}
)

func TestAddToCart_MergesSameLineItem(t *testing.T) {
	s := Empty()
	s = s.AddToCart(blazer, 1, "M", "Navy")
	s = s.AddToCart(blazer, 2, "M", "Navy")
	s = s.AddToCart(blazer, 4, "M", "Navy")

	require.Len(t, s.Cart, 1)
	assert.Equal(t, 7, s.Cart[0].Quantity)
}

func TestAddToCart_VariantsAreDistinct(t *testing.T) {
	s := Empty().
		AddToCart(blazer, 1, "M", "Navy").
		AddToCart(blazer, 1, "S", "Navy").
		AddToCart(blazer, 1, "M", "")

	assert.Len(t, s.Cart, 3)
	assert.Equal(t, 3, s.CartItemsCount())
}

func TestAddToCart_DoesNotMutateReceiver(t *testing.T) {
	before := Empty().AddToCart(blazer, 1, "M", "Navy")
	after := before.AddToCart(blazer, 1, "M", "Navy")

	assert.Equal(t, 1, before.Cart[0].Quantity)
	assert.Equal(t, 2, after.Cart[0].Quantity)
}

func TestCartTotal(t *testing.T) {
	s := Empty().
		AddToCart(blazer, 2, "M", "Navy").
		AddToCart(dress, 1, "", "")
	assert.Equal(t, 2*3499+2899, s.CartTotal())
	assert.Equal(t, 3, s.CartItemsCount())

	s = s.UpdateQuantity("1", 2, "M", "Navy")
	assert.Equal(t, 2*3499+2899, s.CartTotal())

	s = s.RemoveFromCart("1", "M", "Navy")
	assert.Equal(t, 2899, s.CartTotal())

	s = s.RemoveFromCart("2", "", "")
	assert.Equal(t, 0, s.CartTotal())
	assert.Empty(t, s.Cart)
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	s := Empty().AddToCart(dress, 1, "", "")
	s = s.RemoveFromCart("2", "M", "")
	s = s.RemoveFromCart("99", "", "")
	assert.Len(t, s.Cart, 1)
}

func TestUpdateQuantity(t *testing.T) {
	s := Empty().AddToCart(blazer, 1, "M", "Navy")

	s = s.UpdateQuantity("1", 5, "M", "Navy")
	assert.Equal(t, 5, s.Cart[0].Quantity)

	unchanged := s.UpdateQuantity("1", 9, "S", "Navy")
	assert.Equal(t, 5, unchanged.Cart[0].Quantity)
}

func TestWishlist(t *testing.T) {
	s := Empty().AddToWishlist(blazer).AddToWishlist(blazer).AddToWishlist(dress)
	require.Len(t, s.Wishlist, 2)
	assert.True(t, s.InWishlist("1"))

	s = s.RemoveFromWishlist("1").RemoveFromWishlist("42")
	require.Len(t, s.Wishlist, 1)
	assert.Equal(t, "2", s.Wishlist[0].Id)
}

func TestLoginLogout(t *testing.T) {
	s := Empty().Login(models.User{Name: "ana", Email: "ana@example.com"})
	require.NotNil(t, s.User)
	assert.True(t, s.IsLoggedIn)

	s = s.AddToCart(dress, 1, "", "").AddToWishlist(blazer)
	s, _ = s.AddOrder("order_1", time.Now(), OrderRequest{Items: s.Cart, Total: 2998, PaymentMethod: models.PaymentUPI})
	s = s.AddToCart(blazer, 1, "", "")

	s = s.Logout()
	assert.Nil(t, s.User)
	assert.False(t, s.IsLoggedIn)
	assert.Empty(t, s.Cart)
	assert.Empty(t, s.Wishlist)
	assert.Empty(t, s.Orders)
}

func TestAddOrder_ClearsCartAndPrepends(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := Empty().AddToCart(dress, 1, "", "")
	s, first := s.AddOrder("order_a", now, OrderRequest{Items: s.Cart, Total: 2998})

	s = s.AddToCart(blazer, 2, "M", "Navy")
	snapshot := s.Cart
	s, second := s.AddOrder("order_b", now.Add(time.Hour), OrderRequest{Items: snapshot, Total: 7097})

	assert.Empty(t, s.Cart)
	require.Len(t, s.Orders, 2)
	assert.Equal(t, "order_b", s.Orders[0].Id)
	assert.Equal(t, "order_a", s.Orders[1].Id)
	assert.Equal(t, snapshot, second.Items)
	assert.Equal(t, models.OrderStatusConfirmed, first.Status)
	assert.Equal(t, now.Add(7*24*time.Hour), first.EstimatedDelivery)

	found, ok := s.OrderById("order_a")
	require.True(t, ok)
	assert.Equal(t, 2998, found.Total)

	_, ok = s.OrderById("missing")
	assert.False(t, ok)
}

func TestAddOrder_SnapshotIsDetached(t *testing.T) {
	p := models.Product{Id: "1", Price: 3499, Sizes: []string{"S", "M"}}
	s := Empty().AddToCart(p, 1, "M", "")
	items := s.Cart
	s, order := s.AddOrder("order_x", time.Now(), OrderRequest{Items: items})

	items[0].Quantity = 99
	items[0].Product.Sizes[0] = "XXL"
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, "S", s.Orders[0].Items[0].Product.Sizes[0])
}

func TestUIFlags(t *testing.T) {
	s := Empty().ToggleCart().ToggleMenu()
	assert.True(t, s.IsCartOpen)
	assert.True(t, s.IsMenuOpen)

	s = s.SetCartOpen(false).ToggleMenu()
	assert.False(t, s.IsCartOpen)
	assert.False(t, s.IsMenuOpen)
}

func TestPersistedRoundTrip(t *testing.T) {
	s := Empty().Login(models.User{Name: "ana", Email: "ana@example.com"}).
		AddToCart(dress, 2, "", "").ToggleCart()

	restored := FromPersisted(s.Persisted())
	assert.Equal(t, s.Cart, restored.Cart)
	assert.Equal(t, s.User, restored.User)
	assert.True(t, restored.IsLoggedIn)
	assert.False(t, restored.IsCartOpen)
}

func TestFromPersisted_KeepsLoginInSyncWithUser(t *testing.T) {
	restored := FromPersisted(models.PersistedState{IsLoggedIn: true})
	assert.False(t, restored.IsLoggedIn)
	assert.NotNil(t, restored.Cart)
}

func TestNewOrderID(t *testing.T) {
	now := time.UnixMilli(1760000000000)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewOrderID(now)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, "order_1760000000000_"))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
