package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
)

func (r *cartRepository) GetOrCreate(ctx context.Context, userID int64) (*model.Cart, error) {
	const query = `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id=$1`
	var cart model.Cart
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		const insert = `INSERT INTO carts (user_id) VALUES ($1)
                        ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
                        RETURNING id, user_id, created_at, updated_at`
		err = r.storage.pool.QueryRow(ctx, insert, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) loadItems(ctx context.Context, cart *model.Cart) error {
	const query = `SELECT id, product_id, quantity, size, color, price
                   FROM cart_items WHERE cart_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.Size, &item.Color, &item.Price); err != nil {
			return err
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}

func (r *cartRepository) InsertItem(ctx context.Context, cartID int64, item model.CartItem) (*model.CartItem, error) {
	const insert = `INSERT INTO cart_items (cart_id, product_id, quantity, size, color, price)
                    VALUES ($1, $2, $3, $4, $5, $6)
                    ON CONFLICT (cart_id, product_id, size, color)
                    DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
                    RETURNING id, quantity`
	err := r.storage.pool.QueryRow(ctx, insert,
		cartID, item.ProductID, item.Quantity, item.Size, item.Color, item.Price,
	).Scan(&item.ID, &item.Quantity)
	if err != nil {
		return nil, err
	}
	if err := r.touch(ctx, cartID); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE cart_items SET quantity=$3 WHERE cart_id=$1 AND id=$2`, cartID, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return r.touch(ctx, cartID)
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	tag, err := r.storage.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id=$1 AND id=$2`, cartID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return r.touch(ctx, cartID)
}

func (r *cartRepository) Clear(ctx context.Context, cartID int64) error {
	if _, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *cartRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, userID)
	return err
}

func (r *cartRepository) PruneInactive(ctx context.Context, cartID int64) (int, error) {
	const prune = `DELETE FROM cart_items
                   WHERE cart_id=$1 AND product_id IN (SELECT id FROM products WHERE is_active = FALSE)`
	tag, err := r.storage.pool.Exec(ctx, prune, cartID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *cartRepository) touch(ctx context.Context, cartID int64) error {
	_, err := r.storage.pool.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE id=$1`, cartID)
	return err
}
