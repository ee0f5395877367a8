package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/plastinin/recipefinder/internal/usecase"
)

// OrderRepository реализация репозитория заказов для PostgreSQL
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository создаёт новый экземпляр OrderRepository
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateFromCart блокирует строку профиля, собирает заказ из корзины и очищает её в одной транзакции.
// Параллельное добавление в корзину ждёт коммита и попадает уже в пустую корзину.
func (r *OrderRepository) CreateFromCart(ctx context.Context, userID string, build usecase.OrderBuilder) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var cart []domain.GroceryItem
	err = tx.QueryRow(ctx, `SELECT cart FROM user_profiles WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cart)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	order, err := build(cart)
	if err != nil {
		return nil, err
	}

	insert := `
		INSERT INTO orders (id, user_id, ordered_at, store_to_visit, items, receipt_key)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6)
	`
	_, err = tx.Exec(ctx, insert,
		order.ID,
		order.UserID,
		order.OrderedAt,
		order.StoreToVisit,
		order.Items,
		order.ReceiptKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	clearCart := `UPDATE user_profiles SET cart = '[]'::jsonb, updated_at = now() WHERE user_id = $1`
	if _, err := tx.Exec(ctx, clearCart, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// GetByID возвращает заказ по ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, user_id, ordered_at, store_to_visit, items, receipt_key
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// List возвращает заказы пользователя с пагинацией, новые первыми
func (r *OrderRepository) List(ctx context.Context, userID string, pagination domain.Pagination) (*domain.OrderListResult, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT id, user_id, ordered_at, store_to_visit, items, receipt_key
		FROM orders
		WHERE user_id = $1
		ORDER BY ordered_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return &domain.OrderListResult{
		Orders:     orders,
		Total:      total,
		Pagination: pagination,
	}, nil
}

// SetReceiptKey сохраняет ключ сформированной квитанции
func (r *OrderRepository) SetReceiptKey(ctx context.Context, id uuid.UUID, key string) error {
	result, err := r.pool.Exec(ctx, `UPDATE orders SET receipt_key = $2 WHERE id = $1`, id, key)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.OrderedAt,
		&order.StoreToVisit,
		&order.Items,
		&order.ReceiptKey,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}
