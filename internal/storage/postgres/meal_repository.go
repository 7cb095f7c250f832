package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

const opTimeout = 5 * time.Second

type mealRepository struct {
	db *sql.DB
}

// NewMealRepository создаёт PostgreSQL-реализацию MealRepository.
func NewMealRepository(store *Store) domain.MealRepository {
	return &mealRepository{db: store.DB()}
}

func (r *mealRepository) FindAll(ctx context.Context) ([]domain.Meal, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(opCtx, `
		SELECT id, shop_id, name, description, price, image, created_at, updated_at
		FROM meals
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, persistence("list meals", err)
	}
	defer rows.Close()

	meals := make([]domain.Meal, 0)
	for rows.Next() {
		var meal domain.Meal
		if err := rows.Scan(
			&meal.ID, &meal.ShopID, &meal.Name, &meal.Description,
			&meal.Price, &meal.Image, &meal.CreatedAt, &meal.UpdatedAt,
		); err != nil {
			return nil, persistence("scan meal row", err)
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate meal rows", err)
	}

	return meals, nil
}

func (r *mealRepository) FindByID(ctx context.Context, id string) (domain.Meal, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var meal domain.Meal
	err := r.db.QueryRowContext(opCtx, `
		SELECT id, shop_id, name, description, price, image, created_at, updated_at
		FROM meals
		WHERE id = $1
	`, id).Scan(
		&meal.ID, &meal.ShopID, &meal.Name, &meal.Description,
		&meal.Price, &meal.Image, &meal.CreatedAt, &meal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Meal{}, domain.ErrNotFound
		}
		return domain.Meal{}, persistence("select meal", err)
	}

	return meal, nil
}

// mealFilterColumns — допустимые ключи фильтра; всё остальное отвергается,
// чтобы имена колонок не собирались из непроверенного ввода.
var mealFilterColumns = map[string]bool{
	"shop_id": true,
	"name":    true,
	"price":   true,
}

func (r *mealRepository) ExistsBy(ctx context.Context, filter domain.Filter) (bool, error) {
	where, args, err := buildWhere(filter, mealFilterColumns)
	if err != nil {
		return false, err
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM meals` + where + `)`
	if err := r.db.QueryRowContext(opCtx, query, args...).Scan(&exists); err != nil {
		return false, persistence("check meal exists", err)
	}
	return exists, nil
}

func (r *mealRepository) Create(ctx context.Context, meal domain.Meal) (string, error) {
	if errs := meal.Validate(); len(errs) != 0 {
		return "", errors.Join(errs...)
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	id := uuid.NewString()
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(opCtx, `
		INSERT INTO meals (id, shop_id, name, description, price, image, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, id, meal.ShopID, meal.Name, meal.Description, meal.Price, meal.Image, now, now); err != nil {
		return "", persistence("insert meal", err)
	}

	return id, nil
}

func (r *mealRepository) UpdateByID(ctx context.Context, id string, patch domain.MealPatch) (bool, error) {
	set := []string{"updated_at = $1"}
	args := []any{time.Now().UTC()}

	addSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Price != nil {
		addSet("price", *patch.Price)
	}
	if patch.Image != nil {
		addSet("image", *patch.Image)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE meals SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(opCtx, query, args...)
	if err != nil {
		return false, persistence("update meal", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, persistence("rows affected", err)
	}
	return affected > 0, nil
}

func (r *mealRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(opCtx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return false, persistence("delete meal", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, persistence("rows affected", err)
	}
	return affected > 0, nil
}

// buildWhere собирает WHERE из фильтра по списку допустимых колонок.
func buildWhere(filter domain.Filter, allowed map[string]bool) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	conds := make([]string, 0, len(filter))
	args := make([]any, 0, len(filter))
	for column, value := range filter {
		if !allowed[column] {
			return "", nil, fmt.Errorf("%w: unsupported filter field %q", domain.ErrValidation, column)
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// persistence помечает ошибку драйвера как сбой хранилища, сохраняя причину.
func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

var _ domain.MealRepository = (*mealRepository)(nil)
