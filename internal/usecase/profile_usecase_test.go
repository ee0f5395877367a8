package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dailyValueOf(value float64) []domain.DailyValueEntry {
	entries := make([]domain.DailyValueEntry, domain.NutrientCount)
	for i := range entries {
		entries[i] = domain.DailyValueEntry{ID: i + 1, Value: value}
	}
	return entries
}

func TestProfileUseCase_Cart(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewProfileUseCase(repo, zap.NewNop())
	ctx := context.Background()

	cart, err := uc.Cart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart, "missing profile means empty cart")

	_, err = uc.AddToCart(ctx, "u1", domain.GroceryItem{FdcID: 2, Description: "Rice"})
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, "u1", domain.GroceryItem{FdcID: 1, Description: "Beans"})
	require.NoError(t, err)
	cart, err = uc.AddToCart(ctx, "u1", domain.GroceryItem{FdcID: 2, Description: "Rice"})
	require.NoError(t, err)

	require.Len(t, cart, 2)
	assert.Equal(t, "Beans", cart[0].Description)
	assert.Equal(t, 2, cart[1].Quantity)

	require.NoError(t, uc.ClearCart(ctx, "u1"))
	cart, err = uc.Cart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestProfileUseCase_AddToCartValidation(t *testing.T) {
	uc := NewProfileUseCase(newFakeProfileRepo(), zap.NewNop())

	_, err := uc.AddToCart(context.Background(), "", domain.GroceryItem{FdcID: 1, Description: "x"})
	assert.ErrorIs(t, err, domain.ErrEmptyUserID)

	_, err = uc.AddToCart(context.Background(), "u1", domain.GroceryItem{})
	assert.ErrorIs(t, err, domain.ErrInvalidGroceryItem)
}

func TestProfileUseCase_IntakeChart(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewProfileUseCase(repo, zap.NewNop())
	ctx := context.Background()

	_, err := uc.IntakeChart(ctx, "u1", nil, domain.PeriodDaily)
	assert.ErrorIs(t, err, domain.ErrDailyValueMissing)

	require.NoError(t, uc.SaveDailyValue(ctx, "u1", dailyValueOf(50)))

	chart, err := uc.IntakeChart(ctx, "u1", []domain.NutrientAmount{{ID: 3, Amount: 25}}, domain.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 50, chart.Percentages[2])

	chart, err = uc.IntakeChart(ctx, "u1", []domain.NutrientAmount{{ID: 3, Amount: 25}}, domain.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, 8, chart.Percentages[2], "ceil(2500/350)")
}

func TestProfileUseCase_SaveDailyValueRejectsInvalid(t *testing.T) {
	uc := NewProfileUseCase(newFakeProfileRepo(), zap.NewNop())

	err := uc.SaveDailyValue(context.Background(), "u1", dailyValueOf(1)[:10])
	assert.ErrorIs(t, err, domain.ErrInvalidDailyValue)
}

func TestProfileUseCase_RepositoryError(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.err = errors.New("connection reset")
	uc := NewProfileUseCase(repo, zap.NewNop())

	_, err := uc.Cart(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get profile")
}
