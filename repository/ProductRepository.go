package repository

import (
	"sort"
	"strings"

	"luxeStore/models"
)

const (
	NewArrivalsCount = 6
	BestSellersCount = 4
)

type ProductRepository interface {
	GetProductById(id string) (pModel models.Product, exists bool, err error)
	GetProductsByCategory(slug string) (prods []models.Product, err error)
	GetNewArrivals() (prods []models.Product, err error)
	GetBestSellers() (prods []models.Product, err error)
	GetCategories() (cats []models.CategoryInfo, err error)
}

// ProductRepo serves a fixed, in-memory catalog.
type ProductRepo struct {
	products   []models.Product
	categories []models.CategoryInfo
}

func NewProductRepository() ProductRepository {
	return NewProductRepositoryFrom(sampleProducts, sampleCategories)
}

func NewProductRepositoryFrom(products []models.Product, categories []models.CategoryInfo) ProductRepository {
	return &ProductRepo{
		products:   products,
		categories: categories,
	}
}

func (p *ProductRepo) GetProductById(id string) (pModel models.Product, exists bool, err error) {
	for _, prod := range p.products {
		if prod.Id == id {
			return prod, true, nil
		}
	}
	return
}

func (p *ProductRepo) GetProductsByCategory(slug string) (prods []models.Product, err error) {
	prods = []models.Product{}
	cat := models.Category(strings.ToLower(slug))
	for _, prod := range p.products {
		if prod.Category == cat {
			prods = append(prods, prod)
		}
	}
	return
}

func (p *ProductRepo) GetNewArrivals() (prods []models.Product, err error) {
	prods = newArrivals(p.products)
	return
}

func (p *ProductRepo) GetBestSellers() (prods []models.Product, err error) {
	prods = bestSellers(p.products)
	return
}

func (p *ProductRepo) GetCategories() (cats []models.CategoryInfo, err error) {
	cats = make([]models.CategoryInfo, len(p.categories))
	copy(cats, p.categories)
	return
}

func newArrivals(all []models.Product) []models.Product {
	n := NewArrivalsCount
	if len(all) < n {
		n = len(all)
	}
	prods := make([]models.Product, n)
	copy(prods, all[:n])
	return prods
}

func bestSellers(all []models.Product) []models.Product {
	sorted := make([]models.Product, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Reviews > sorted[j].Reviews
	})
	if len(sorted) > BestSellersCount {
		sorted = sorted[:BestSellersCount]
	}
	return sorted
}
