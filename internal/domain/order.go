package domain

import "time"

// OrderStatus описывает состояние заказа после создания.
type OrderStatus string

const (
	// OrderStatusCreated — заказ принят и сохранён; начальное состояние.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusCompleted — заказ выполнен магазином.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCanceled — заказ отменён.
	OrderStatusCanceled OrderStatus = "canceled"
)

// OrderItem — одна позиция заказа. Name и Price — снимки на момент
// добавления в корзину, а не живые ссылки на Meal: последующее изменение
// цены блюда не влияет на уже набранную позицию.
type OrderItem struct {
	MealID   string `json:"meal_id"`
	MealName string `json:"meal_name"`
	Quantity int32  `json:"quantity"`
	// Price — цена за единицу в минимальных денежных единицах.
	Price  int64  `json:"price"`
	Remark string `json:"remark"`
}

// Order — сохранённый на сервере заказ. После создания заказ неизменяем,
// кроме перевода статуса через частичное обновление.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	ShopID     string      `json:"shop_id"`
	Status     OrderStatus `json:"status"`
	OrderItems []OrderItem `json:"order_items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Validate проверяет инварианты заказа перед сохранением.
func (o *Order) Validate() []error {
	payload := CreateOrderPayload{
		UserID:     o.UserID,
		ShopID:     o.ShopID,
		OrderItems: o.OrderItems,
	}
	return payload.Validate()
}

// OrderPatch — частичное обновление заказа. Единственное изменяемое
// поле — статус; nil означает «не менять».
type OrderPatch struct {
	Status *OrderStatus `json:"status,omitempty"`
}

// CreateOrderPayload — запрос на создание заказа: снимок корзины одного
// магазина. Идентификатор и временные метки назначает сервер.
type CreateOrderPayload struct {
	UserID     string      `json:"user_id"`
	ShopID     string      `json:"shop_id"`
	OrderItems []OrderItem `json:"order_items"`
}

// Validate проверяет инварианты запроса и возвращает список замечаний.
func (p *CreateOrderPayload) Validate() []error {
	var errs []error

	if p.UserID == "" {
		errs = append(errs, ErrUserRequired)
	}
	if p.ShopID == "" {
		errs = append(errs, ErrShopRequired)
	}
	if len(p.OrderItems) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	for _, item := range p.OrderItems {
		if item.MealID == "" {
			errs = append(errs, ErrItemMealRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.Price < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}

	return errs
}

// Total возвращает сумму заказа в минимальных денежных единицах.
func (p *CreateOrderPayload) Total() int64 {
	var total int64
	for _, item := range p.OrderItems {
		total += int64(item.Quantity) * item.Price
	}
	return total
}
