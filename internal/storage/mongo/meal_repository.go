package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

const mealsCollection = "meals"

type mealDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ShopID      string             `bson:"shop_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       int64              `bson:"price"`
	Image       string             `bson:"image,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// NewMealRepository создаёт Mongo-реализацию MealRepository.
func NewMealRepository(store *Store) domain.MealRepository {
	return &repository[domain.Meal, domain.MealPatch, mealDoc]{
		col:      store.Collection(mealsCollection),
		validate: (*domain.Meal).Validate,
		toDoc: func(meal *domain.Meal, now time.Time) mealDoc {
			return mealDoc{
				ShopID:      meal.ShopID,
				Name:        meal.Name,
				Description: meal.Description,
				Price:       meal.Price,
				Image:       meal.Image,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		},
		toDomain: func(doc mealDoc) domain.Meal {
			return domain.Meal{
				ID:          doc.ID.Hex(),
				ShopID:      doc.ShopID,
				Name:        doc.Name,
				Description: doc.Description,
				Price:       doc.Price,
				Image:       doc.Image,
				CreatedAt:   doc.CreatedAt,
				UpdatedAt:   doc.UpdatedAt,
			}
		},
		patchSet: func(patch domain.MealPatch, now time.Time) bson.M {
			set := bson.M{"updated_at": now}
			if patch.Name != nil {
				set["name"] = *patch.Name
			}
			if patch.Description != nil {
				set["description"] = *patch.Description
			}
			if patch.Price != nil {
				set["price"] = *patch.Price
			}
			if patch.Image != nil {
				set["image"] = *patch.Image
			}
			return set
		},
	}
}
