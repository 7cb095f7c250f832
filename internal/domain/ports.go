package domain

import "context"

// CartStorage — долговременный клиентский слот для сериализованной корзины.
// Один строковый ключ, документ читается перед изменением и записывается
// целиком за один вызов Write (атомарная перезапись, не инкрементальный патч).
type CartStorage interface {
	// Read возвращает сохранённый документ; ok == false, если слота ещё нет.
	Read(ctx context.Context) (data string, ok bool, err error)
	// Write атомарно перезаписывает слот целиком.
	Write(ctx context.Context, data string) error
}

// OrderPlacer — создание заказа, как его видит оркестратор оформления.
type OrderPlacer interface {
	Create(ctx context.Context, payload CreateOrderPayload) (string, error)
}

// Notifier получает ровно одно уведомление об исходе попытки оформления.
// Заменяет toast-уведомления UI; сброс уведомления — забота вызывающей стороны.
type Notifier interface {
	Success(message string)
	Failure(message string)
}
