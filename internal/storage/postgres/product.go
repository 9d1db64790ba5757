package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
)

const productColumns = `id, name, description, price, category, subcategory, brand,
                        is_active, is_featured, total_stock, created_at, updated_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Subcategory,
		&p.Brand, &p.IsActive, &p.IsFeatured, &p.TotalStock, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.TotalStock = product.ComputeTotalStock()
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO products
                        (name, description, price, category, subcategory, brand, is_active, is_featured, total_stock)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insert,
			product.Name, product.Description, product.Price, product.Category,
			product.Subcategory, product.Brand, product.IsActive, product.IsFeatured,
			product.TotalStock,
		).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return err
		}
		return insertProductChildren(ctx, tx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func insertProductChildren(ctx context.Context, tx pgx.Tx, product *model.Product) error {
	for _, s := range product.Sizes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_sizes (product_id, size, stock) VALUES ($1, $2, $3)`,
			product.ID, s.Size, s.Stock); err != nil {
			return err
		}
	}
	for _, c := range product.Colors {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_colors (product_id, name, hex) VALUES ($1, $2, $3)`,
			product.ID, c.Name, c.Hex); err != nil {
			return err
		}
	}
	for _, img := range product.Images {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_images (product_id, url, alt, is_primary) VALUES ($1, $2, $3, $4)`,
			product.ID, img.URL, img.Alt, img.IsPrimary); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	product.TotalStock = product.ComputeTotalStock()
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE products SET
                        name=$1, description=$2, price=$3, category=$4, subcategory=$5,
                        brand=$6, is_active=$7, is_featured=$8, total_stock=$9, updated_at=NOW()
                        WHERE id=$10`
		tag, err := tx.Exec(ctx, update,
			product.Name, product.Description, product.Price, product.Category,
			product.Subcategory, product.Brand, product.IsActive, product.IsFeatured,
			product.TotalStock, product.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		for _, table := range []string{"product_sizes", "product_colors", "product_images"} {
			if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE product_id=$1`, table), product.ID); err != nil {
				return err
			}
		}
		return insertProductChildren(ctx, tx, product)
	})
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE products SET is_active=FALSE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id=$1`, productColumns)
	var p model.Product
	if err := scanProduct(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductUnavailable
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, domainErrors.ErrProductUnavailable
	}
	return product, nil
}

func (r *productRepository) loadChildren(ctx context.Context, p *model.Product) error {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT size, stock FROM product_sizes WHERE product_id=$1 ORDER BY size`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.SizeStock
		if err := rows.Scan(&s.Size, &s.Stock); err != nil {
			return err
		}
		p.Sizes = append(p.Sizes, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	colorRows, err := r.storage.pool.Query(ctx,
		`SELECT name, hex FROM product_colors WHERE product_id=$1 ORDER BY name`, p.ID)
	if err != nil {
		return err
	}
	defer colorRows.Close()
	for colorRows.Next() {
		var c model.Color
		if err := colorRows.Scan(&c.Name, &c.Hex); err != nil {
			return err
		}
		p.Colors = append(p.Colors, c)
	}
	if err := colorRows.Err(); err != nil {
		return err
	}

	imageRows, err := r.storage.pool.Query(ctx,
		`SELECT url, alt, is_primary FROM product_images WHERE product_id=$1 ORDER BY id`, p.ID)
	if err != nil {
		return err
	}
	defer imageRows.Close()
	for imageRows.Next() {
		var img model.Image
		if err := imageRows.Scan(&img.URL, &img.Alt, &img.IsPrimary); err != nil {
			return err
		}
		p.Images = append(p.Images, img)
	}
	return imageRows.Err()
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	where := []string{"is_active = TRUE"}
	args := []any{}

	addArg := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.Category != "" {
		addArg("category = $%d", filter.Category)
	}
	if filter.Subcategory != "" {
		addArg("subcategory = $%d", filter.Subcategory)
	}
	if filter.Brand != "" {
		addArg("brand = $%d", filter.Brand)
	}
	if filter.MinPrice != nil {
		addArg("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addArg("price <= $%d", *filter.MaxPrice)
	}
	if filter.Featured != nil {
		addArg("is_featured = $%d", *filter.Featured)
	}
	if filter.Search != "" {
		addArg("(name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%[1]d || '%%' OR brand ILIKE '%%' || $%[1]d || '%%')", filter.Search)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products WHERE %s`, whereClause)
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	switch filter.SortBy {
	case "price_asc":
		orderBy = "price ASC"
	case "price_desc":
		orderBy = "price DESC"
	case "name":
		orderBy = "name ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range result {
		if err := r.loadChildren(ctx, &result[i]); err != nil {
			return nil, 0, err
		}
	}
	return result, total, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT DISTINCT category FROM products WHERE is_active = TRUE ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *productRepository) DecrementStock(ctx context.Context, productID int64, size string, quantity int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Conditional update: the WHERE guard makes the decrement
		// atomic, so a bucket can never go negative under concurrent
		// checkouts.
		const decrement = `UPDATE product_sizes SET stock = stock - $3
                           WHERE product_id=$1 AND size=$2 AND stock >= $3`
		tag, err := tx.Exec(ctx, decrement, productID, size, quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInsufficientStock
		}
		return recomputeTotalStock(ctx, tx, productID)
	})
}

func (r *productRepository) RestoreStock(ctx context.Context, productID int64, size string, quantity int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const restore = `UPDATE product_sizes SET stock = stock + $3
                         WHERE product_id=$1 AND size=$2`
		tag, err := tx.Exec(ctx, restore, productID, size, quantity)
		if err != nil {
			return err
		}
		// A missing bucket is tolerated: the size may have been removed
		// from the catalog since the order was placed.
		if tag.RowsAffected() == 0 {
			return nil
		}
		return recomputeTotalStock(ctx, tx, productID)
	})
}

func recomputeTotalStock(ctx context.Context, tx pgx.Tx, productID int64) error {
	const update = `UPDATE products SET
                    total_stock = (SELECT COALESCE(SUM(stock), 0) FROM product_sizes WHERE product_id=$1),
                    updated_at = NOW()
                    WHERE id=$1`
	_, err := tx.Exec(ctx, update, productID)
	return err
}
