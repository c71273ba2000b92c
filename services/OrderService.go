package services

import (
	"luxeStore/models"

	"github.com/sirupsen/logrus"
)

const OrdersPath = "/orders"

type OrderService struct{}

func NewOrderService() OrderService {
	return OrderService{}
}

// GetOrders lists newest first.
func (os *OrderService) GetOrders(store *Store) (orders []models.Order, err error) {
	if !store.IsLoggedIn() {
		err = LoginRedirect(OrdersPath)
		return
	}
	orders = store.Orders()
	return
}

func (os *OrderService) GetOrderById(store *Store, orderId string) (order models.Order, err error) {
	if !store.IsLoggedIn() {
		err = LoginRedirect(OrdersPath + "/" + orderId)
		return
	}
	order, ex := store.GetOrderById(orderId)
	if !ex {
		logrus.Warnf("GetOrderById: order %q not found", orderId)
		err = models.ErrNotFoundError
	}
	return
}
