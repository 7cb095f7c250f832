package cart

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// Manager держит корзину пользователя в памяти и синхронизирует её с
// долговременным клиентским слотом. Все мутации работают с состоянием в
// памяти; в слот попадает только целиком сериализованный документ через
// Flush, поэтому падение между мутацией и записью не оставляет частичного
// документа.
type Manager struct {
	storage domain.CartStorage
	logger  *log.Entry
	cart    domain.UserCart
}

// NewManager создаёт менеджер с пустой корзиной пользователя.
func NewManager(userID string, storage domain.CartStorage, logger *log.Entry) *Manager {
	if logger == nil {
		logger = log.WithField("component", "cart")
	}
	return &Manager{
		storage: storage,
		logger:  logger,
		cart:    domain.NewUserCart(userID),
	}
}

// Load восстанавливает корзину из слота. Отсутствие слота — пустая корзина
// без ошибки. Повреждённые данные тоже дают пустую корзину, но возвращается
// ErrCorruptCart, чтобы вызывающая сторона могла это залогировать.
func (m *Manager) Load(ctx context.Context) error {
	userID := m.cart.UserID

	data, ok, err := m.storage.Read(ctx)
	if err != nil {
		return fmt.Errorf("read cart slot: %w", err)
	}
	if !ok {
		m.cart = domain.NewUserCart(userID)
		return nil
	}

	restored, err := DecodeCart(data)
	if err != nil {
		m.logger.WithError(err).WithField("user_id", userID).Warn("cart slot is corrupted, starting empty")
		m.cart = domain.NewUserCart(userID)
		return err
	}

	if restored.UserID == "" {
		restored.UserID = userID
	}
	m.cart = restored
	return nil
}

// UpsertItem добавляет позицию в группу магазина; совпадение по meal_id
// складывает количества.
func (m *Manager) UpsertItem(shopID string, shop domain.ShopRef, item domain.OrderItem) {
	m.cart.Upsert(shopID, shop, item)
}

// SetItemQuantity выставляет количество позиции. Ноль и меньше удаляет
// позицию. Возвращает false, если позиции нет.
func (m *Manager) SetItemQuantity(shopID, mealID string, quantity int32) bool {
	group, ok := m.cart.OrdersByShop[shopID]
	if !ok {
		return false
	}

	for i := range group.Items {
		if group.Items[i].MealID != mealID {
			continue
		}
		if quantity <= 0 {
			return m.RemoveItem(shopID, mealID)
		}
		group.Items[i].Quantity = quantity
		m.cart.OrdersByShop[shopID] = group
		return true
	}
	return false
}

// RemoveItem удаляет позицию; опустевшая группа удаляется целиком.
func (m *Manager) RemoveItem(shopID, mealID string) bool {
	group, ok := m.cart.OrdersByShop[shopID]
	if !ok {
		return false
	}

	for i := range group.Items {
		if group.Items[i].MealID != mealID {
			continue
		}
		group.Items = append(group.Items[:i], group.Items[i+1:]...)
		if len(group.Items) == 0 {
			m.cart.RemoveShop(shopID)
		} else {
			m.cart.OrdersByShop[shopID] = group
		}
		return true
	}
	return false
}

// RemoveShop удаляет подкорзину магазина целиком.
func (m *Manager) RemoveShop(shopID string) {
	m.cart.RemoveShop(shopID)
}

// Snapshot возвращает копию группы магазина для передачи в оформление заказа.
func (m *Manager) Snapshot(shopID string) (domain.ShopOrderGroup, bool) {
	return m.cart.Group(shopID)
}

// Cart возвращает копию всей корзины.
func (m *Manager) Cart() domain.UserCart {
	return m.cart.Clone()
}

// Flush атомарно перезаписывает слот текущим состоянием корзины.
func (m *Manager) Flush(ctx context.Context) error {
	data, err := EncodeCart(m.cart)
	if err != nil {
		return err
	}
	if err := m.storage.Write(ctx, data); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}
