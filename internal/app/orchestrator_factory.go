package app

import (
	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fos/internal/service/checkout"
)

// createOrchestrator создаёт checkout orchestrator с или без Kafka в
// зависимости от наличия kafka producer.
func createOrchestrator(
	deps *Dependencies,
	placer domain.OrderPlacer,
	notifier domain.Notifier,
	kafkaProducer *kafka.Producer,
) checkout.Orchestrator {
	if kafkaProducer != nil {
		return checkout.NewOrchestratorWithKafka(
			placer,
			deps.CartSlot,
			notifier,
			kafkaProducer,
			deps.Logger,
		)
	}

	return checkout.NewOrchestrator(
		placer,
		deps.CartSlot,
		notifier,
		deps.Logger,
	)
}
