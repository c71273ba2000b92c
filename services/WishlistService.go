package services

import (
	"luxeStore/models"
	"luxeStore/repository"

	"github.com/sirupsen/logrus"
)

type WishlistService struct {
	pr repository.ProductRepository
}

func NewWishlistService(productRepo repository.ProductRepository) WishlistService {
	return WishlistService{pr: productRepo}
}

func (ws *WishlistService) AddToWishlist(store *Store, productId string) (err error) {
	if !store.IsLoggedIn() {
		err = LoginRedirect("/products/" + productId)
		return
	}
	p, ex, err := ws.pr.GetProductById(productId)
	if err != nil {
		return
	}
	if !ex {
		logrus.Warnf("AddToWishlist: product %q does not exist", productId)
		err = models.ErrNotFoundError
		return
	}
	store.AddToWishlist(p)
	return
}

func (ws *WishlistService) RemoveFromWishlist(store *Store, productId string) {
	store.RemoveFromWishlist(productId)
}

func (ws *WishlistService) GetWishlist(store *Store) []models.Product {
	return store.Wishlist()
}
