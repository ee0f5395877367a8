package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plastinin/recipefinder/internal/domain"
)

// ProfileRepository реализация репозитория профилей для PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository создаёт новый экземпляр ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetByID возвращает профиль пользователя
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
		SELECT user_id, daily_value, cart, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	profile := &domain.UserProfile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.DailyValue,
		&profile.Cart,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// SaveDailyValue заменяет суточные нормы, создавая профиль при необходимости
func (r *ProfileRepository) SaveDailyValue(ctx context.Context, userID string, entries []domain.DailyValueEntry) error {
	query := `
		INSERT INTO user_profiles (user_id, daily_value)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (user_id) DO UPDATE
		SET daily_value = EXCLUDED.daily_value, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, userID, entries); err != nil {
		return fmt.Errorf("failed to upsert daily value: %w", err)
	}
	return nil
}

// AddCartItem дописывает продукт в конец корзины
func (r *ProfileRepository) AddCartItem(ctx context.Context, userID string, item domain.GroceryItem) error {
	query := `
		INSERT INTO user_profiles (user_id, cart)
		VALUES ($1, jsonb_build_array($2::jsonb))
		ON CONFLICT (user_id) DO UPDATE
		SET cart = user_profiles.cart || EXCLUDED.cart, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, userID, item); err != nil {
		return fmt.Errorf("failed to append cart item: %w", err)
	}
	return nil
}

// ClearCart очищает корзину; отсутствие профиля не ошибка
func (r *ProfileRepository) ClearCart(ctx context.Context, userID string) error {
	query := `UPDATE user_profiles SET cart = '[]'::jsonb, updated_at = now() WHERE user_id = $1`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
