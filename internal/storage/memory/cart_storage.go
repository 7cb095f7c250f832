package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// cartStorage — in-memory слот для сериализованной корзины. Заменяет
// браузерное хранилище в тестах и локальной разработке.
type cartStorage struct {
	mu   sync.RWMutex
	data string
	set  bool
}

// NewCartStorage возвращает пустой слот корзины.
func NewCartStorage() domain.CartStorage {
	return &cartStorage{}
}

// Read возвращает документ; ok == false, пока слот ни разу не записан.
func (s *cartStorage) Read(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.set, nil
}

// Write перезаписывает слот целиком.
func (s *cartStorage) Write(_ context.Context, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.set = true
	return nil
}

var _ domain.CartStorage = (*cartStorage)(nil)
