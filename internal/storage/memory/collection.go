package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// collection — in-memory реализация пятиоперационного контракта хранилища.
// Поведение конкретной сущности задаётся хуками; сами операции общие.
type collection[T any, P any] struct {
	mu   sync.RWMutex
	docs map[string]T

	// validate проверяет сущность перед созданием.
	validate func(*T) []error
	// onCreate проставляет сгенерированные поля (id, временные метки).
	onCreate func(*T, string, time.Time)
	// fields отдаёт хранимое представление полей для сверки с фильтром.
	fields func(*T) map[string]any
	// apply применяет частичное обновление; nil-поля патча не меняются.
	apply func(*T, P, time.Time)
	// clone делает глубокую копию, чтобы мутации извне не задели хранилище.
	clone func(T) T
}

func (c *collection[T, P]) FindAll(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.docs))
	for id := range c.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]T, 0, len(ids))
	for _, id := range ids {
		result = append(result, c.clone(c.docs[id]))
	}
	return result, nil
}

func (c *collection[T, P]) FindByID(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return c.clone(doc), nil
}

func (c *collection[T, P]) ExistsBy(_ context.Context, filter domain.Filter) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if c.matches(&doc, filter) {
			return true, nil
		}
	}
	return false, nil
}

func (c *collection[T, P]) Create(_ context.Context, entity T) (string, error) {
	if errs := c.validate(&entity); len(errs) != 0 {
		return "", errors.Join(errs...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	c.onCreate(&entity, id, time.Now().UTC())
	c.docs[id] = c.clone(entity)
	return id, nil
}

func (c *collection[T, P]) UpdateByID(_ context.Context, id string, patch P) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		return false, nil
	}
	c.apply(&doc, patch, time.Now().UTC())
	c.docs[id] = doc
	return true, nil
}

func (c *collection[T, P]) DeleteByID(_ context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	return true, nil
}

func (c *collection[T, P]) matches(doc *T, filter domain.Filter) bool {
	fields := c.fields(doc)
	for key, want := range filter {
		got, ok := fields[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}
