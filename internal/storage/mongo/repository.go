package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// repository — общая реализация пятиоперационного контракта поверх одной
// коллекции MongoDB. T — доменная сущность, P — частичное обновление,
// D — хранимый документ с bson-тегами.
type repository[T any, P any, D any] struct {
	col *mongo.Collection

	// validate проверяет сущность перед вставкой.
	validate func(*T) []error
	// toDoc собирает хранимый документ без _id; идентификатор назначает Mongo.
	toDoc func(*T, time.Time) D
	// toDomain восстанавливает доменную сущность из документа.
	toDomain func(D) T
	// patchSet собирает $set-документ из ненулевых полей патча.
	patchSet func(P, time.Time) bson.M
}

func (r *repository[T, P, D]) FindAll(ctx context.Context) ([]T, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.col.Find(opCtx, bson.M{})
	if err != nil {
		return nil, persistence("find all", err)
	}

	var docs []D
	if err := cursor.All(opCtx, &docs); err != nil {
		return nil, persistence("decode documents", err)
	}

	result := make([]T, 0, len(docs))
	for _, doc := range docs {
		result = append(result, r.toDomain(doc))
	}
	return result, nil
}

func (r *repository[T, P, D]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Синтаксически некорректный идентификатор — не сбой, а отсутствие.
		return zero, domain.ErrNotFound
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc D
	if err := r.col.FindOne(opCtx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, domain.ErrNotFound
		}
		return zero, persistence("find by id", err)
	}

	return r.toDomain(doc), nil
}

func (r *repository[T, P, D]) ExistsBy(ctx context.Context, filter domain.Filter) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(opCtx, bson.M(filter), options.Count().SetLimit(1))
	if err != nil {
		return false, persistence("count documents", err)
	}
	return count > 0, nil
}

func (r *repository[T, P, D]) Create(ctx context.Context, entity T) (string, error) {
	if errs := r.validate(&entity); len(errs) != 0 {
		return "", errors.Join(errs...)
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.InsertOne(opCtx, r.toDoc(&entity, time.Now().UTC()))
	if err != nil {
		return "", persistence("insert document", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", persistence("insert document", fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	return oid.Hex(), nil
}

func (r *repository[T, P, D]) UpdateByID(ctx context.Context, id string, patch P) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	set := r.patchSet(patch, time.Now().UTC())

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(opCtx, oid, bson.M{"$set": set})
	if err != nil {
		return false, persistence("update document", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *repository[T, P, D]) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(opCtx, bson.M{"_id": oid})
	if err != nil {
		return false, persistence("delete document", err)
	}
	return res.DeletedCount > 0, nil
}

// persistence помечает ошибку драйвера как сбой хранилища, сохраняя причину.
func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}
