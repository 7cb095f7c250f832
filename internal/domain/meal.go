package domain

import "time"

// Meal — блюдо в каталоге магазина. Пара (ShopID, Name) уникальна;
// уникальность обеспечивается проверкой существования перед созданием,
// а не ограничением на уровне хранилища.
type Meal struct {
	ID          string `json:"id"`
	ShopID      string `json:"shop_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Price — цена за единицу в минимальных денежных единицах.
	Price     int64     `json:"price"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MealPatch — частичное обновление блюда. nil-поле означает «не менять»;
// вызывающая сторона не должна путать отсутствие поля с пустым значением.
type MealPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate проверяет инварианты блюда перед созданием.
func (m *Meal) Validate() []error {
	var errs []error

	if m.ShopID == "" {
		errs = append(errs, ErrShopRequired)
	}
	if m.Name == "" {
		errs = append(errs, ErrMealNameRequired)
	}
	if m.Price < 0 {
		errs = append(errs, ErrMealPriceInvalid)
	}

	return errs
}
