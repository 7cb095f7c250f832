package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fos/internal/cart"
	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fos/internal/metrics"
)

// State описывает фазы одной попытки оформления заказа.
type State string

const (
	// StateIdle — попытка ещё не начата либо отклонена guard-ом.
	StateIdle State = "idle"
	// StateSubmitting — запрос на создание заказа в полёте.
	StateSubmitting State = "submitting"
	// StateCommitted — заказ создан, корзина сверена.
	StateCommitted State = "committed"
	// StateFailed — создание заказа не удалось, корзина не тронута.
	StateFailed State = "failed"
)

// Result — исход попытки оформления. Терминальные состояния не
// перезапускаются автоматически: новое действие пользователя начинает
// новую попытку.
type Result struct {
	State   State
	OrderID string
	// Cart — корзина после сверки. После успешного оформления зависимые
	// представления должны перерисоваться из неё, иначе устаревшее
	// состояние в памяти воскресит удалённую группу.
	Cart domain.UserCart
}

// Orchestrator превращает подкорзину одного магазина в сохранённый заказ
// и сверяет долговременную корзину после успеха.
type Orchestrator interface {
	Checkout(ctx context.Context, userID, shopID string, items []domain.OrderItem) (Result, error)
}

type orchestrator struct {
	orders   domain.OrderPlacer
	storage  domain.CartStorage
	notifier domain.Notifier
	logger   *log.Entry
	metrics  *metrics.CheckoutMetrics
	producer *kafka.Producer // опциональный producer событий заказов

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewOrchestrator создаёт рабочий экземпляр оркестратора.
func NewOrchestrator(
	orders domain.OrderPlacer,
	storage domain.CartStorage,
	notifier domain.Notifier,
	logger *log.Entry,
) Orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &orchestrator{
		orders:   orders,
		storage:  storage,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics.NewCheckoutMetrics(),
		inFlight: make(map[string]struct{}),
	}
}

// NewOrchestratorWithKafka создаёт оркестратор, публикующий события заказов.
func NewOrchestratorWithKafka(
	orders domain.OrderPlacer,
	storage domain.CartStorage,
	notifier domain.Notifier,
	producer *kafka.Producer,
	logger *log.Entry,
) Orchestrator {
	o := NewOrchestrator(orders, storage, notifier, logger).(*orchestrator)
	o.producer = producer
	return o
}

// NewOrchestratorWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewOrchestratorWithoutMetrics(
	orders domain.OrderPlacer,
	storage domain.CartStorage,
	notifier domain.Notifier,
	logger *log.Entry,
) Orchestrator {
	o := NewOrchestrator(orders, storage, notifier, logger).(*orchestrator)
	o.metrics = nil
	return o
}

// Checkout выполняет одну попытку оформления: Idle → Submitting →
// {Committed, Failed}. Снимок позиций делается на входе, поэтому мутации
// корзины во время запроса не влияют на уже отправленные данные.
//
// Сверка корзины (чтение слота, удаление группы, запись) не обёрнута в
// транзакцию: одновременная запись корзины другого магазина может
// потеряться. Это принятое ограничение — в поддерживаемом сценарии оба
// участника работают с непересекающимися группами.
func (o *orchestrator) Checkout(ctx context.Context, userID, shopID string, items []domain.OrderItem) (Result, error) {
	attemptLogger := o.logger.WithFields(log.Fields{
		"user_id": userID,
		"shop_id": shopID,
	})

	if !o.acquire(userID, shopID) {
		attemptLogger.Warn("checkout already in flight, rejecting")
		if o.metrics != nil {
			o.metrics.RecordCheckoutRejected()
		}
		return Result{State: StateIdle}, domain.ErrCheckoutInFlight
	}
	defer o.release(userID, shopID)

	start := time.Now()
	if o.metrics != nil {
		o.metrics.RecordCheckoutStarted()
	}
	defer func() {
		if o.metrics != nil {
			o.metrics.RecordCheckoutFinished()
			o.metrics.RecordCheckoutDuration(time.Since(start))
		}
	}()

	// Снимок на момент подтверждения.
	snapshot := make([]domain.OrderItem, len(items))
	copy(snapshot, items)

	payload := domain.CreateOrderPayload{
		UserID:     userID,
		ShopID:     shopID,
		OrderItems: snapshot,
	}

	submitStart := time.Now()
	orderID, err := o.orders.Create(ctx, payload)
	if o.metrics != nil {
		o.metrics.RecordStepDuration(metrics.StepSubmit, time.Since(submitStart))
	}
	if err != nil {
		attemptLogger.WithError(err).Warn("checkout failed")
		if o.metrics != nil {
			o.metrics.RecordCheckoutFailed()
		}
		o.publishEvent(kafka.EventTypeCheckoutFailed, "", userID, shopID, map[string]interface{}{
			"error": err.Error(),
		})
		// Долговременная корзина не тронута: пользователь может повторить
		// попытку, не набирая позиции заново.
		o.notifier.Failure("Error creating an order.")
		return Result{State: StateFailed}, fmt.Errorf("submit order: %w", err)
	}

	if o.metrics != nil {
		o.metrics.RecordCheckoutCommitted()
	}
	o.publishEvent(kafka.EventTypeOrderCreated, orderID, userID, shopID, map[string]interface{}{
		"items": len(snapshot),
	})
	o.notifier.Success("Order created successfully!")

	reconcileStart := time.Now()
	reconciled := o.reconcileCart(ctx, attemptLogger, userID, shopID)
	if o.metrics != nil {
		o.metrics.RecordStepDuration(metrics.StepReconcile, time.Since(reconcileStart))
	}

	attemptLogger.WithField("order_id", orderID).Info("checkout committed")

	return Result{
		State:   StateCommitted,
		OrderID: orderID,
		Cart:    reconciled,
	}, nil
}

// reconcileCart убирает оформленную группу из долговременной корзины.
// Заказ уже создан на сервере, поэтому любые локальные проблемы здесь не
// отменяют успеха: отсутствующий слот — не ошибка, повреждённый документ
// трактуется как отсутствие корзины, неудачная запись только логируется.
func (o *orchestrator) reconcileCart(ctx context.Context, logger *log.Entry, userID, shopID string) domain.UserCart {
	empty := domain.NewUserCart(userID)

	data, ok, err := o.storage.Read(ctx)
	if err != nil {
		logger.WithError(err).Warn("cart slot read failed after commit, skipping reconcile")
		return empty
	}
	if !ok {
		return empty
	}

	current, err := cart.DecodeCart(data)
	if err != nil {
		logger.WithError(err).Warn("cart slot is corrupted after commit, skipping reconcile")
		return empty
	}

	current.RemoveShop(shopID)

	encoded, err := cart.EncodeCart(current)
	if err != nil {
		logger.WithError(err).Warn("cart encode failed after commit")
		return current
	}
	if err := o.storage.Write(ctx, encoded); err != nil {
		logger.WithError(err).Warn("cart slot write failed after commit")
	}

	return current
}

func (o *orchestrator) publishEvent(eventType kafka.EventType, orderID, userID, shopID string, metadata map[string]interface{}) {
	if o.producer == nil {
		return
	}

	event := kafka.NewOrderEvent(eventType, orderID, userID, shopID, metadata)
	if err := o.producer.PublishEvent(kafka.TopicOrderEvents, userID+":"+shopID, event); err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"order_id":   orderID,
		}).Warn("failed to publish order event")
		return
	}
	if o.metrics != nil {
		o.metrics.RecordOrderEvent()
	}
}

// acquire резервирует пару (user_id, shop_id); не более одной попытки в
// полёте на пару.
func (o *orchestrator) acquire(userID, shopID string) bool {
	key := userID + "/" + shopID

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, taken := o.inFlight[key]; taken {
		return false
	}
	o.inFlight[key] = struct{}{}
	return true
}

func (o *orchestrator) release(userID, shopID string) {
	key := userID + "/" + shopID

	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, key)
}
