package services

import (
	"luxeStore/entities"
	"luxeStore/models"
	"luxeStore/repository"
)

type ProductService struct {
	pr repository.ProductRepository
}

func NewProductService(pRepo repository.ProductRepository) ProductService {
	return ProductService{
		pr: pRepo,
	}
}

func (ps *ProductService) GetProductById(prodId string) (pModel models.Product, err error) {
	var exists bool
	pModel, exists, err = ps.pr.GetProductById(prodId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
	}
	return
}

const relatedCount = 4

// GetProductPage is the product detail page; related products are the top
// best sellers.
func (ps *ProductService) GetProductPage(prodId string) (page entities.ProductPage, err error) {
	page.Product, err = ps.GetProductById(prodId)
	if err != nil {
		return
	}
	best, err := ps.pr.GetBestSellers()
	if err != nil {
		return
	}
	if len(best) > relatedCount {
		best = best[:relatedCount]
	}
	page.RelatedProducts = best
	return
}

func (ps *ProductService) GetHomePage() (page entities.HomePage, err error) {
	page.NewArrivals, err = ps.pr.GetNewArrivals()
	if err != nil {
		return
	}
	page.BestSellers, err = ps.pr.GetBestSellers()
	if err != nil {
		return
	}
	page.Categories, err = ps.pr.GetCategories()
	return
}

func (ps *ProductService) GetCategories() (cats []models.CategoryInfo, err error) {
	cats, err = ps.pr.GetCategories()
	return
}
