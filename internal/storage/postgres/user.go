package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
)

const userColumns = `id, email, password_hash, first_name, last_name, role, is_active, created_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.IsActive, &u.CreatedAt)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const insert = `INSERT INTO users (email, password_hash, first_name, last_name, role)
                    VALUES ($1, $2, $3, $4, $5)
                    RETURNING id, is_active, created_at`
	role := user.Role
	if role == "" {
		role = model.RoleUser
	}
	err := r.storage.pool.QueryRow(ctx, insert,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, role,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	user.Role = role
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email=$1`, userColumns)
	var u model.User
	if err := scanUser(r.storage.pool.QueryRow(ctx, query, email), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1`, userColumns)
	var u model.User
	if err := scanUser(r.storage.pool.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, userColumns)
	rows, err := r.storage.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *wishlistRepository) Add(ctx context.Context, userID, productID int64) error {
	const insert = `INSERT INTO wishlists (user_id, product_id) VALUES ($1, $2)
                    ON CONFLICT (user_id, product_id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, insert, userID, productID)
	return err
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	tag, err := r.storage.pool.Exec(ctx,
		`DELETE FROM wishlists WHERE user_id=$1 AND product_id=$2`, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *wishlistRepository) List(ctx context.Context, userID int64) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products
                          WHERE is_active = TRUE AND id IN (SELECT product_id FROM wishlists WHERE user_id=$1)
                          ORDER BY name`, productColumns)
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	productRepo := &productRepository{storage: r.storage}
	for i := range result {
		if err := productRepo.loadChildren(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}
