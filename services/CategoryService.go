package services

import (
	"sort"
	"strings"

	"luxeStore/entities"
	"luxeStore/models"
	"luxeStore/repository"

	"github.com/sirupsen/logrus"
)

type CategoryService struct {
	pr repository.ProductRepository
}

func NewCategoryService(productRepo repository.ProductRepository) CategoryService {
	return CategoryService{
		pr: productRepo,
	}
}

// ParseSort maps unknown keys to newest.
func ParseSort(key string) entities.SortKey {
	switch k := entities.SortKey(key); k {
	case entities.SortPriceLow, entities.SortPriceHigh, entities.SortRating:
		return k
	}
	return entities.SortNewest
}

// FilterProducts derives the visible list from a full category listing. The
// input slice is left untouched.
func FilterProducts(all []models.Product, c entities.FilterCriteria) []models.Product {
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Price < c.MinPrice || p.Price > c.MaxPrice {
			continue
		}
		if len(c.Sizes) > 0 && !intersects(p.Sizes, c.Sizes) {
			continue
		}
		if len(c.Colors) > 0 && !intersects(p.Colors, c.Colors) {
			continue
		}
		out = append(out, p)
	}
	switch ParseSort(string(c.Sort)) {
	case entities.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case entities.SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case entities.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// AvailableOptions lists every size and color offered in a category, in
// first-seen order.
func AvailableOptions(prods []models.Product) (sizes, colors []string) {
	sizes, colors = []string{}, []string{}
	seenSize, seenColor := map[string]bool{}, map[string]bool{}
	for _, p := range prods {
		for _, s := range p.Sizes {
			if !seenSize[s] {
				seenSize[s] = true
				sizes = append(sizes, s)
			}
		}
		for _, c := range p.Colors {
			if !seenColor[c] {
				seenColor[c] = true
				colors = append(colors, c)
			}
		}
	}
	return
}

func (cas *CategoryService) categoryExists(slug string) (ex bool, err error) {
	cats, err := cas.pr.GetCategories()
	if err != nil {
		return
	}
	for _, c := range cats {
		if strings.EqualFold(string(c.Slug), slug) {
			ex = true
			return
		}
	}
	return
}

// FilterCategory always starts from the catalog query, never from a
// previously filtered list.
func (cas *CategoryService) FilterCategory(slug string, criteria entities.FilterCriteria) (page entities.CategoryPage, err error) {
	ex, err := cas.categoryExists(slug)
	if err != nil {
		return
	}
	if !ex {
		logrus.Warnf("FilterCategory: unknown category %q", slug)
		err = models.ErrNotFoundError
		return
	}
	all, err := cas.pr.GetProductsByCategory(slug)
	if err != nil {
		return
	}
	criteria.Sort = ParseSort(string(criteria.Sort))
	page.Slug = strings.ToLower(slug)
	page.Products = FilterProducts(all, criteria)
	page.AvailableSizes, page.AvailableColors = AvailableOptions(all)
	page.Criteria = criteria
	return
}

// FilterView holds one category page's filter selections. Every change
// re-derives the page from the catalog.
type FilterView struct {
	cas      *CategoryService
	slug     string
	criteria entities.FilterCriteria
	page     entities.CategoryPage
}

func (cas *CategoryService) NewFilterView(slug string) (*FilterView, error) {
	v := &FilterView{
		cas:      cas,
		slug:     slug,
		criteria: entities.DefaultCriteria(),
	}
	if err := v.refresh(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *FilterView) refresh() error {
	page, err := v.cas.FilterCategory(v.slug, v.criteria)
	if err != nil {
		return err
	}
	v.page = page
	return nil
}

func (v *FilterView) Page() entities.CategoryPage {
	return v.page
}

func (v *FilterView) Criteria() entities.FilterCriteria {
	return v.criteria
}

// SetCategory keeps the current selections.
func (v *FilterView) SetCategory(slug string) error {
	prev := v.slug
	v.slug = slug
	if err := v.refresh(); err != nil {
		v.slug = prev
		return err
	}
	return nil
}

func (v *FilterView) SetPriceRange(min, max int) error {
	v.criteria.MinPrice, v.criteria.MaxPrice = min, max
	return v.refresh()
}

func (v *FilterView) ToggleSize(size string) error {
	v.criteria.Sizes = toggle(v.criteria.Sizes, size)
	return v.refresh()
}

func (v *FilterView) ToggleColor(color string) error {
	v.criteria.Colors = toggle(v.criteria.Colors, color)
	return v.refresh()
}

func (v *FilterView) SetSort(key string) error {
	v.criteria.Sort = ParseSort(key)
	return v.refresh()
}

// Reset restores the price range and empties both selections. The sort key
// stays.
func (v *FilterView) Reset() error {
	sortKey := v.criteria.Sort
	v.criteria = entities.DefaultCriteria()
	v.criteria.Sort = sortKey
	return v.refresh()
}

func toggle(set []string, value string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, s := range set {
		if s == value {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, value)
	}
	return out
}
