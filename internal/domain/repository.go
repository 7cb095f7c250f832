package domain

import "context"

// Filter задаёт равенство по полям документа; ключи — имена полей в
// хранимом представлении (например "shop_id", "name").
type Filter map[string]any

// Repository — единый пятиоперационный контракт хранилища, одинаковый для
// всех типов сущностей. T — сущность, P — тип частичного обновления.
type Repository[T any, P any] interface {
	// FindAll возвращает все сохранённые сущности без фильтрации и пагинации.
	FindAll(ctx context.Context) ([]T, error)
	// FindByID возвращает сущность по идентификатору или ErrNotFound;
	// синтаксически некорректный идентификатор — тоже ErrNotFound, не сбой.
	FindByID(ctx context.Context, id string) (T, error)
	// ExistsBy сообщает, существует ли сущность, совпадающая с фильтром.
	// Отражает только зафиксированное состояние.
	ExistsBy(ctx context.Context, filter Filter) (bool, error)
	// Create сохраняет новую сущность и возвращает назначенный идентификатор.
	Create(ctx context.Context, entity T) (string, error)
	// UpdateByID применяет частичное обновление: nil-поля не меняются.
	// Возвращает false без ошибки, если идентификатор не найден.
	UpdateByID(ctx context.Context, id string, patch P) (bool, error)
	// DeleteByID удаляет сущность. Возвращает false без ошибки, если
	// идентификатор не найден; повторное удаление — тоже false.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// MealRepository — контракт хранилища блюд.
type MealRepository interface {
	Repository[Meal, MealPatch]
}

// OrderRepository — контракт хранилища заказов.
type OrderRepository interface {
	Repository[Order, OrderPatch]
}
