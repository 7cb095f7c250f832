package memory

import (
	"time"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// NewOrderRepository возвращает in-memory хранилище заказов для локальной
// разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &collection[domain.Order, domain.OrderPatch]{
		docs:     make(map[string]domain.Order),
		validate: (*domain.Order).Validate,
		onCreate: func(order *domain.Order, id string, now time.Time) {
			order.ID = id
			if order.Status == "" {
				order.Status = domain.OrderStatusCreated
			}
			order.CreatedAt = now
			order.UpdatedAt = now
		},
		fields: func(order *domain.Order) map[string]any {
			return map[string]any{
				"user_id": order.UserID,
				"shop_id": order.ShopID,
				"status":  string(order.Status),
			}
		},
		apply: func(order *domain.Order, patch domain.OrderPatch, now time.Time) {
			if patch.Status != nil {
				order.Status = *patch.Status
			}
			order.UpdatedAt = now
		},
		clone: func(order domain.Order) domain.Order {
			items := make([]domain.OrderItem, len(order.OrderItems))
			copy(items, order.OrderItems)
			order.OrderItems = items
			return order
		},
	}
}
