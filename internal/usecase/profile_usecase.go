package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

// ProfileUseCase бизнес-логика корзины и суточных норм
type ProfileUseCase struct {
	profileRepo ProfileRepository
	logger      *zap.Logger
}

// NewProfileUseCase создаёт новый экземпляр ProfileUseCase
func NewProfileUseCase(profileRepo ProfileRepository, logger *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Cart возвращает корзину с количествами, отсортированную по описанию
func (uc *ProfileUseCase) Cart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	profile, err := uc.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.AggregateCart(profile.Cart), nil
}

// AddToCart добавляет продукт в корзину
func (uc *ProfileUseCase) AddToCart(ctx context.Context, userID string, item domain.GroceryItem) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.AddCartItem(ctx, userID, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	uc.logger.Debug("Item added to cart",
		zap.String("user_id", userID),
		zap.Int64("fdc_id", item.FdcID),
	)

	return uc.Cart(ctx, userID)
}

// ClearCart очищает корзину
func (uc *ProfileUseCase) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrEmptyUserID
	}
	if err := uc.profileRepo.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// DailyValue возвращает суточные нормы пользователя
func (uc *ProfileUseCase) DailyValue(ctx context.Context, userID string) ([]domain.DailyValueEntry, error) {
	profile, err := uc.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasDailyValue() {
		return nil, domain.ErrDailyValueMissing
	}
	return profile.DailyValue, nil
}

// SaveDailyValue сохраняет рассчитанные суточные нормы
func (uc *ProfileUseCase) SaveDailyValue(ctx context.Context, userID string, entries []domain.DailyValueEntry) error {
	if userID == "" {
		return domain.ErrEmptyUserID
	}
	if err := domain.ValidateDailyValue(entries); err != nil {
		return err
	}

	if err := uc.profileRepo.SaveDailyValue(ctx, userID, entries); err != nil {
		return fmt.Errorf("failed to save daily value: %w", err)
	}

	uc.logger.Info("Daily value saved", zap.String("user_id", userID))
	return nil
}

// IntakeChart считает потребление нутриентов относительно норм пользователя
func (uc *ProfileUseCase) IntakeChart(ctx context.Context, userID string, nutrients []domain.NutrientAmount, period domain.ChartPeriod) (domain.IntakeChart, error) {
	dailyValue, err := uc.DailyValue(ctx, userID)
	if err != nil {
		return domain.IntakeChart{}, err
	}
	return domain.BuildIntakeChart(nutrients, dailyValue, period), nil
}

// profile возвращает профиль; отсутствующий профиль считается пустым
func (uc *ProfileUseCase) profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}

	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return &domain.UserProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
