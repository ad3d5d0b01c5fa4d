package service

import (
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
)

// AnalyticsService derives the teacher-facing engagement report from
// the raw interaction log. Pure reads, recomputed on every call.
type AnalyticsService struct {
	InteractionRepo *repository.InteractionRepository
}

func NewAnalyticsService(interactionRepo *repository.InteractionRepository) *AnalyticsService {
	return &AnalyticsService{InteractionRepo: interactionRepo}
}

func (s *AnalyticsService) InteractionStats() ([]model.InteractionStat, error) {
	return s.InteractionRepo.GroupedStats()
}
