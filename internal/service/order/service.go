package order

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// Service создаёт заказы из снимков корзины. Позиции берутся как есть,
// без сверки цен с каталогом: снимок клиента считается достоверным.
type Service struct {
	repo   domain.OrderRepository
	logger *log.Entry
}

// NewService конструирует сервис заказов.
func NewService(repo domain.OrderRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{repo: repo, logger: logger}
}

// Create валидирует запрос и сохраняет заказ. Ошибки валидации и ошибки
// хранилища различимы через domain.IsValidation / domain.IsPersistence,
// чтобы вызывающая сторона могла решить, повторять ли попытку.
func (s *Service) Create(ctx context.Context, payload domain.CreateOrderPayload) (string, error) {
	if errs := payload.Validate(); len(errs) != 0 {
		return "", errors.Join(errs...)
	}

	order := domain.Order{
		UserID:     payload.UserID,
		ShopID:     payload.ShopID,
		Status:     domain.OrderStatusCreated,
		OrderItems: payload.OrderItems,
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"user_id": payload.UserID,
			"shop_id": payload.ShopID,
		}).Warn("order create failed")
		return "", fmt.Errorf("create order: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"order_id": id,
		"user_id":  payload.UserID,
		"shop_id":  payload.ShopID,
		"items":    len(payload.OrderItems),
		"total":    payload.Total(),
	}).Info("order created")

	return id, nil
}

var _ domain.OrderPlacer = (*Service)(nil)
