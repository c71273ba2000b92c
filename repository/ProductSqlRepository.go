package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"luxeStore/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// ProductSqlRepo reads the catalog from the products table. Natural order is
// the position column written by SeedProducts.
type ProductSqlRepo struct {
	db *sqlx.DB
}

func NewProductSqlRepository(conn *sqlx.DB) (ProductRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &ProductSqlRepo{
		db: conn,
	}, nil
}

const productColumns = "id, position, name, price, image, category, description, rating, reviews, sizes, colors"

func (p *ProductSqlRepo) GetProductById(id string) (pModel models.Product, exists bool, err error) {
	var row models.ProductRow
	err = p.db.Get(&row, p.db.Rebind("SELECT "+productColumns+" FROM products WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
		} else {
			logrus.Errorf("GetProductById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	pModel, err = rowToProduct(row)
	if err != nil {
		return
	}
	exists = true
	return
}

func (p *ProductSqlRepo) GetProductsByCategory(slug string) (prods []models.Product, err error) {
	prods, err = p.selectProducts(p.db.Rebind("SELECT "+productColumns+" FROM products WHERE category = ? ORDER BY position"), strings.ToLower(slug))
	return
}

func (p *ProductSqlRepo) GetNewArrivals() (prods []models.Product, err error) {
	prods, err = p.selectProducts(p.db.Rebind("SELECT "+productColumns+" FROM products ORDER BY position LIMIT ?"), NewArrivalsCount)
	return
}

func (p *ProductSqlRepo) GetBestSellers() (prods []models.Product, err error) {
	var all []models.Product
	all, err = p.selectProducts("SELECT " + productColumns + " FROM products ORDER BY position")
	if err != nil {
		return
	}
	prods = bestSellers(all)
	return
}

func (p *ProductSqlRepo) GetCategories() (cats []models.CategoryInfo, err error) {
	rows := []struct {
		Name  string `db:"name"`
		Slug  string `db:"slug"`
		Image string `db:"image"`
	}{}
	err = p.db.Select(&rows, "SELECT name, slug, image FROM categories ORDER BY position")
	if err != nil {
		logrus.Errorf("GetCategories: %v", err)
		err = models.ErrServerError
		return
	}
	cats = make([]models.CategoryInfo, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, models.CategoryInfo{Name: r.Name, Slug: models.Category(r.Slug), Image: r.Image})
	}
	return
}

func (p *ProductSqlRepo) selectProducts(query string, args ...any) (prods []models.Product, err error) {
	rows := []models.ProductRow{}
	err = p.db.Select(&rows, query, args...)
	if err != nil {
		logrus.Errorf("selectProducts: %v", err)
		err = models.ErrServerError
		return
	}
	prods = make([]models.Product, 0, len(rows))
	for _, r := range rows {
		var prod models.Product
		prod, err = rowToProduct(r)
		if err != nil {
			return
		}
		prods = append(prods, prod)
	}
	return
}

// SeedProducts replaces the catalog tables with the given products and
// categories inside one transaction.
func SeedProducts(db *sqlx.DB, products []models.Product, categories []models.CategoryInfo) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start a transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				logrus.Errorf("failed to rollback tx: %s", rollBackErr)
			}
			return
		}
		err = tx.Commit()
	}()

	if _, err = tx.Exec("DELETE FROM products"); err != nil {
		return
	}
	if _, err = tx.Exec("DELETE FROM categories"); err != nil {
		return
	}
	for i, prod := range products {
		var row models.ProductRow
		row, err = productToRow(prod, i)
		if err != nil {
			return
		}
		_, err = tx.NamedExec("INSERT INTO products ("+productColumns+") VALUES (:id, :position, :name, :price, :image, :category, :description, :rating, :reviews, :sizes, :colors)", row)
		if err != nil {
			return
		}
	}
	for i, cat := range categories {
		_, err = tx.Exec(tx.Rebind("INSERT INTO categories (slug, position, name, image) VALUES (?, ?, ?, ?)"), string(cat.Slug), i, cat.Name, cat.Image)
		if err != nil {
			return
		}
	}
	logrus.Infof("SeedProducts: %d products, %d categories", len(products), len(categories))
	return
}

// SeedSampleCatalog seeds the built-in catalog.
func SeedSampleCatalog(db *sqlx.DB) error {
	return SeedProducts(db, sampleProducts, sampleCategories)
}

func productToRow(prod models.Product, position int) (row models.ProductRow, err error) {
	sizes, err := json.Marshal(nonNil(prod.Sizes))
	if err != nil {
		return
	}
	colors, err := json.Marshal(nonNil(prod.Colors))
	if err != nil {
		return
	}
	row = models.ProductRow{
		Id:          prod.Id,
		Position:    position,
		Name:        prod.Name,
		Price:       prod.Price,
		Image:       prod.Image,
		Category:    string(prod.Category),
		Description: prod.Description,
		Rating:      prod.Rating,
		Reviews:     prod.Reviews,
		Sizes:       string(sizes),
		Colors:      string(colors),
	}
	return
}

func rowToProduct(row models.ProductRow) (prod models.Product, err error) {
	prod = models.Product{
		Id:          row.Id,
		Name:        row.Name,
		Price:       row.Price,
		Image:       row.Image,
		Category:    models.Category(row.Category),
		Description: row.Description,
		Rating:      row.Rating,
		Reviews:     row.Reviews,
	}
	if err = json.Unmarshal([]byte(row.Sizes), &prod.Sizes); err != nil {
		logrus.Errorf("rowToProduct: product %s sizes: %v", row.Id, err)
		err = models.ErrServerError
		return
	}
	if err = json.Unmarshal([]byte(row.Colors), &prod.Colors); err != nil {
		logrus.Errorf("rowToProduct: product %s colors: %v", row.Id, err)
		err = models.ErrServerError
		return
	}
	if len(prod.Sizes) == 0 {
		prod.Sizes = nil
	}
	if len(prod.Colors) == 0 {
		prod.Colors = nil
	}
	return
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
