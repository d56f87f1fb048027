package service

import (
	"go.uber.org/zap"

	"github.com/walink/walink/internal/whatsapp"
)

type Service struct {
	Message MessageService
	Health  HealthService
}

func NewService(
	gate *whatsapp.Gate,
	client whatsapp.Client,
	breaker BreakerStats,
	logger *zap.Logger,
) *Service {
	return &Service{
		Message: NewMessageService(gate, client, logger),
		Health:  NewHealthService(gate, breaker),
	}
}
