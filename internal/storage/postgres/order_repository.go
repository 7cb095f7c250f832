package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(opCtx, `
		SELECT id, user_id, shop_id, status, created_at, updated_at
		FROM orders
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, persistence("list orders", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate order rows", err)
	}

	for i := range orders {
		items, err := r.loadItems(opCtx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].OrderItems = items
	}

	return orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	var status string
	err := r.db.QueryRowContext(opCtx, `
		SELECT id, user_id, shop_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.UserID, &order.ShopID, &status,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, persistence("select order", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.loadItems(opCtx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.OrderItems = items

	return order, nil
}

var orderFilterColumns = map[string]bool{
	"user_id": true,
	"shop_id": true,
	"status":  true,
}

func (r *orderRepository) ExistsBy(ctx context.Context, filter domain.Filter) (bool, error) {
	where, args, err := buildWhere(filter, orderFilterColumns)
	if err != nil {
		return false, err
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM orders` + where + `)`
	if err := r.db.QueryRowContext(opCtx, query, args...).Scan(&exists); err != nil {
		return false, persistence("check order exists", err)
	}
	return exists, nil
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (string, error) {
	if errs := order.Validate(); len(errs) != 0 {
		return "", errors.Join(errs...)
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(opCtx, nil)
	if err != nil {
		return "", persistence("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id := uuid.NewString()
	now := time.Now().UTC()
	status := order.Status
	if status == "" {
		status = domain.OrderStatusCreated
	}

	_, err = tx.ExecContext(opCtx, `
		INSERT INTO orders (id, user_id, shop_id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, id, order.UserID, order.ShopID, string(status), now, now)
	if err != nil {
		return "", persistence("insert order", err)
	}

	for position, item := range order.OrderItems {
		if _, err = tx.ExecContext(opCtx, `
			INSERT INTO order_items (order_id, position, meal_id, meal_name, quantity, price, remark)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, id, position, item.MealID, item.MealName, item.Quantity, item.Price, item.Remark); err != nil {
			return "", persistence("insert order item", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", persistence("commit create order", err)
	}

	return id, nil
}

func (r *orderRepository) UpdateByID(ctx context.Context, id string, patch domain.OrderPatch) (bool, error) {
	set := []string{"updated_at = $1"}
	args := []any{time.Now().UTC()}
	if patch.Status != nil {
		args = append(args, string(*patch.Status))
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(opCtx, query, args...)
	if err != nil {
		return false, persistence("update order", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, persistence("rows affected", err)
	}
	return affected > 0, nil
}

func (r *orderRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Позиции заказа удаляются каскадно.
	res, err := r.db.ExecContext(opCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, persistence("delete order", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, persistence("rows affected", err)
	}
	return affected > 0, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT meal_id, meal_name, quantity, price, remark
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, persistence("load order items", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MealID, &item.MealName, &item.Quantity, &item.Price, &item.Remark); err != nil {
			return nil, persistence("scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate order items", err)
	}

	return items, nil
}

func scanOrder(rows *sql.Rows) (domain.Order, error) {
	var order domain.Order
	var status string
	if err := rows.Scan(
		&order.ID, &order.UserID, &order.ShopID, &status,
		&order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return domain.Order{}, persistence("scan order row", err)
	}
	order.Status = domain.OrderStatus(status)
	return order, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
