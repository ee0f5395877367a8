package domain

import "math"

// NutrientCount число отслеживаемых нутриентов
const NutrientCount = 33

// nutrientLabels подписи нутриентов, индекс = id - 1
var nutrientLabels = [NutrientCount]string{
	"Fat", "Fatty acids", "Fibre", "Sugars", "Cholesterol", "Sodium", "Potassium",
	"Calcium", "Iron", "Vitamin A", "Vitamin C", "Vitamin D", "Vitamin E", "Vitamin K",
	"Thiamin", "Riboflavin", "Niacin", "Vitamin B6", "Folate", "Vitamin B12", "Choline",
	"Biotin", "Pantothenate", "Phosphorous", "Iodide", "Magnesium", "Zinc", "Selenium",
	"Copper", "Manganese", "Chromium", "Molybdenum", "Chloride",
}

// NutrientLabels возвращает копию подписей нутриентов
func NutrientLabels() []string {
	labels := make([]string, NutrientCount)
	copy(labels, nutrientLabels[:])
	return labels
}

// ChartPeriod период, относительно которого считается потребление
type ChartPeriod string

const (
	PeriodDaily  ChartPeriod = "daily"
	PeriodWeekly ChartPeriod = "weekly"
)

// IsValid проверяет валидность периода
func (p ChartPeriod) IsValid() bool {
	return p == PeriodDaily || p == PeriodWeekly
}

// NutrientAmount количество нутриента в продуктах корзины
type NutrientAmount struct {
	ID     int     `json:"id"`
	Amount float64 `json:"amount"`
}

// IntakeChart потребление нутриентов в процентах от нормы
type IntakeChart struct {
	Period      ChartPeriod `json:"period"`
	Labels      []string    `json:"labels"`
	Percentages []int       `json:"percentages"`
}

// BuildIntakeChart суммирует нутриенты по id и считает процент от суточной (или недельной) нормы.
// Нутриенты вне 1..NutrientCount игнорируются, при нулевой норме процент равен 0.
func BuildIntakeChart(nutrients []NutrientAmount, dailyValue []DailyValueEntry, period ChartPeriod) IntakeChart {
	var amounts [NutrientCount]float64
	for _, n := range nutrients {
		if n.ID < 1 || n.ID > NutrientCount {
			continue
		}
		amounts[n.ID-1] += n.Amount
	}

	multiplier := 1.0
	if period == PeriodWeekly {
		multiplier = 7
	}

	percentages := make([]int, NutrientCount)
	for _, dv := range dailyValue {
		if dv.ID < 1 || dv.ID > NutrientCount || dv.Value <= 0 {
			continue
		}
		percentages[dv.ID-1] = int(math.Ceil(100 * amounts[dv.ID-1] / (dv.Value * multiplier)))
	}

	return IntakeChart{
		Period:      period,
		Labels:      NutrientLabels(),
		Percentages: percentages,
	}
}
