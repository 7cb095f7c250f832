package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

const ordersCollection = "orders"

type orderItemDoc struct {
	MealID   string `bson:"meal_id"`
	MealName string `bson:"meal_name"`
	Quantity int32  `bson:"quantity"`
	Price    int64  `bson:"price"`
	Remark   string `bson:"remark,omitempty"`
}

type orderDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	ShopID     string             `bson:"shop_id"`
	Status     string             `bson:"status"`
	OrderItems []orderItemDoc     `bson:"order_items"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

// NewOrderRepository создаёт Mongo-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &repository[domain.Order, domain.OrderPatch, orderDoc]{
		col:      store.Collection(ordersCollection),
		validate: (*domain.Order).Validate,
		toDoc: func(order *domain.Order, now time.Time) orderDoc {
			status := order.Status
			if status == "" {
				status = domain.OrderStatusCreated
			}
			items := make([]orderItemDoc, 0, len(order.OrderItems))
			for _, item := range order.OrderItems {
				items = append(items, orderItemDoc{
					MealID:   item.MealID,
					MealName: item.MealName,
					Quantity: item.Quantity,
					Price:    item.Price,
					Remark:   item.Remark,
				})
			}
			return orderDoc{
				UserID:     order.UserID,
				ShopID:     order.ShopID,
				Status:     string(status),
				OrderItems: items,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
		},
		toDomain: func(doc orderDoc) domain.Order {
			items := make([]domain.OrderItem, 0, len(doc.OrderItems))
			for _, item := range doc.OrderItems {
				items = append(items, domain.OrderItem{
					MealID:   item.MealID,
					MealName: item.MealName,
					Quantity: item.Quantity,
					Price:    item.Price,
					Remark:   item.Remark,
				})
			}
			return domain.Order{
				ID:         doc.ID.Hex(),
				UserID:     doc.UserID,
				ShopID:     doc.ShopID,
				Status:     domain.OrderStatus(doc.Status),
				OrderItems: items,
				CreatedAt:  doc.CreatedAt,
				UpdatedAt:  doc.UpdatedAt,
			}
		},
		patchSet: func(patch domain.OrderPatch, now time.Time) bson.M {
			set := bson.M{"updated_at": now}
			if patch.Status != nil {
				set["status"] = string(*patch.Status)
			}
			return set
		},
	}
}
