package domain

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок. Конкретные ошибки ниже оборачивают один из видов,
// поэтому вызывающая сторона различает их через errors.Is и сама решает,
// имеет ли смысл повторять операцию.
var (
	// ErrValidation — некорректные входные данные, повтор бессмысленен.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — идентификатор или фильтр не находит сущность.
	ErrNotFound = errors.New("not found")
	// ErrPersistence — хранилище недоступно или запись не прошла, можно повторить.
	ErrPersistence = errors.New("persistence failed")
	// ErrCorruptCart — локальное состояние корзины нечитаемо; трактуется как пустая корзина.
	ErrCorruptCart = errors.New("cart data corrupted")
)

var (
	// Ошибка отсутствующего идентификатора пользователя.
	ErrUserRequired = fmt.Errorf("%w: user_id is required", ErrValidation)
	// Ошибка отсутствующего идентификатора магазина.
	ErrShopRequired = fmt.Errorf("%w: shop_id is required", ErrValidation)
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	// Ошибка при некорректном количестве (<= 0).
	ErrItemQtyInvalid = fmt.Errorf("%w: item quantity must be greater than zero", ErrValidation)
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = fmt.Errorf("%w: item price must be non-negative", ErrValidation)
	// Ошибка отсутствующего идентификатора блюда в позиции.
	ErrItemMealRequired = fmt.Errorf("%w: item meal_id is required", ErrValidation)
	// Ошибка отсутствующего названия блюда.
	ErrMealNameRequired = fmt.Errorf("%w: meal name is required", ErrValidation)
	// Ошибка отрицательной цены блюда.
	ErrMealPriceInvalid = fmt.Errorf("%w: meal price must be non-negative", ErrValidation)
	// ErrMealExists возвращается при попытке создать блюдо с занятой парой (shop_id, name).
	ErrMealExists = fmt.Errorf("%w: meal with this name already exists in the shop", ErrValidation)
	// ErrCheckoutInFlight — для пары (user_id, shop_id) уже идёт оформление заказа.
	ErrCheckoutInFlight = errors.New("checkout already in flight for this shop")
)

// IsValidation проверяет, относится ли ошибка к некорректному вводу.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPersistence проверяет, является ли ошибка сбоем хранилища.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsCorruptCart проверяет, является ли ошибка повреждением локальной корзины.
func IsCorruptCart(err error) bool {
	return errors.Is(err, ErrCorruptCart)
}
