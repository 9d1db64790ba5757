package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
)

const orderColumns = `id, number, user_id, shipping_address, billing_address,
                      payment_method, transaction_id, payment_status,
                      subtotal, tax, shipping, discount, total,
                      status, tracking, estimated_delivery, actual_delivery,
                      created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	var shippingJSON, billingJSON []byte
	var trackingJSON []byte
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &shippingJSON, &billingJSON,
		&o.Payment.Method, &o.Payment.TransactionID, &o.Payment.Status,
		&o.Pricing.Subtotal, &o.Pricing.Tax, &o.Pricing.Shipping, &o.Pricing.Discount, &o.Pricing.Total,
		&o.Status, &trackingJSON, &o.EstimatedDelivery, &o.ActualDelivery,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(shippingJSON, &o.ShippingAddress); err != nil {
		return fmt.Errorf("decode shipping address: %w", err)
	}
	if err := json.Unmarshal(billingJSON, &o.BillingAddress); err != nil {
		return fmt.Errorf("decode billing address: %w", err)
	}
	if len(trackingJSON) > 0 {
		if err := json.Unmarshal(trackingJSON, &o.Tracking); err != nil {
			return fmt.Errorf("decode tracking: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	shippingJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("encode shipping address: %w", err)
	}
	billingJSON, err := json.Marshal(order.BillingAddress)
	if err != nil {
		return nil, fmt.Errorf("encode billing address: %w", err)
	}

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO orders
                        (number, user_id, shipping_address, billing_address,
                         payment_method, transaction_id, payment_status,
                         subtotal, tax, shipping, discount, total, status)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
                        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insert,
			order.Number, order.UserID, shippingJSON, billingJSON,
			order.Payment.Method, order.Payment.TransactionID, order.Payment.Status,
			order.Pricing.Subtotal, order.Pricing.Tax, order.Pricing.Shipping,
			order.Pricing.Discount, order.Pricing.Total, order.Status,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}

		for _, item := range order.Items {
			const insertItem = `INSERT INTO order_items
                                (order_id, product_id, name, price, quantity, size, color, image)
                                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
			if _, err := tx.Exec(ctx, insertItem,
				order.ID, item.ProductID, item.Name, item.Price,
				item.Quantity, item.Size, item.Color, item.Image); err != nil {
				return err
			}
		}

		for _, entry := range order.StatusHistory {
			const insertHistory = `INSERT INTO order_status_history (order_id, status, changed_at, note)
                                   VALUES ($1, $2, $3, $4)`
			if _, err := tx.Exec(ctx, insertHistory,
				order.ID, entry.Status, entry.Timestamp, entry.Note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadDetails(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Order, error) {
	if transactionID == "" {
		return nil, domainErrors.ErrNotFound
	}
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE transaction_id=$1`, orderColumns)
	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, transactionID), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadDetails(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) loadDetails(ctx context.Context, order *model.Order) error {
	itemRows, err := r.storage.pool.Query(ctx,
		`SELECT product_id, name, price, quantity, size, color, image
         FROM order_items WHERE order_id=$1 ORDER BY id`, order.ID)
	if err != nil {
		return err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item model.OrderItem
		if err := itemRows.Scan(&item.ProductID, &item.Name, &item.Price,
			&item.Quantity, &item.Size, &item.Color, &item.Image); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	historyRows, err := r.storage.pool.Query(ctx,
		`SELECT status, changed_at, note
         FROM order_status_history WHERE order_id=$1 ORDER BY changed_at, id`, order.ID)
	if err != nil {
		return err
	}
	defer historyRows.Close()
	for historyRows.Next() {
		var entry model.StatusChange
		if err := historyRows.Scan(&entry.Status, &entry.Timestamp, &entry.Note); err != nil {
			return err
		}
		order.StatusHistory = append(order.StatusHistory, entry)
	}
	return historyRows.Err()
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := r.storage.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id=$1
                          ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orderColumns)
	return r.queryOrders(ctx, query, total, userID, limit, (page-1)*limit)
}

func (r *orderRepository) ListAll(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	where := []string{"TRUE"}
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		where = append(where, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s`, whereClause)
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s
                          ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, whereClause, len(args)-1, len(args))
	return r.queryOrders(ctx, query, total, args...)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, total int, args ...any) ([]model.Order, int, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range result {
		if err := r.loadDetails(ctx, &result[i]); err != nil {
			return nil, 0, err
		}
	}
	return result, total, nil
}

func (r *orderRepository) StatsByStatus(ctx context.Context) ([]repository.StatusStat, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(total), 0) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []repository.StatusStat
	for rows.Next() {
		var s repository.StatusStat
		if err := rows.Scan(&s.Status, &s.Count, &s.TotalValue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *orderRepository) AppendStatus(ctx context.Context, orderID int64, update repository.StatusUpdate) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		sets := []string{"status = $1", "updated_at = NOW()"}
		args := []any{update.Status}

		if update.Tracking != nil {
			trackingJSON, err := json.Marshal(update.Tracking)
			if err != nil {
				return fmt.Errorf("encode tracking: %w", err)
			}
			args = append(args, trackingJSON)
			sets = append(sets, fmt.Sprintf("tracking = $%d", len(args)))
		}
		if update.EstimatedDelivery != nil {
			args = append(args, *update.EstimatedDelivery)
			sets = append(sets, fmt.Sprintf("estimated_delivery = $%d", len(args)))
		}
		if update.ActualDelivery != nil {
			args = append(args, *update.ActualDelivery)
			sets = append(sets, fmt.Sprintf("actual_delivery = $%d", len(args)))
		}

		args = append(args, orderID)
		query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, note)
                               VALUES ($1, $2, $3)`
		_, err = tx.Exec(ctx, insertHistory, orderID, update.Status, update.Note)
		return err
	})
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET payment_status=$1, updated_at=NOW() WHERE id=$2`, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders
                          WHERE payment_method = 'card' AND payment_status = 'pending' AND transaction_id <> ''
                          ORDER BY created_at
                          LIMIT $1
                          FOR UPDATE SKIP LOCKED`, orderColumns)

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var o model.Order
			if err := scanOrder(rows, &o); err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
