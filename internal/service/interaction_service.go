package service

import (
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/monitoring"
)

type InteractionService struct {
	InteractionRepo *repository.InteractionRepository
	TutorialRepo    *repository.TutorialRepository
}

func NewInteractionService(interactionRepo *repository.InteractionRepository, tutorialRepo *repository.TutorialRepository) *InteractionService {
	return &InteractionService{
		InteractionRepo: interactionRepo,
		TutorialRepo:    tutorialRepo,
	}
}

// Record appends one event to the interaction log. Repeated identical
// events each produce a fresh row.
func (s *InteractionService) Record(userID, tutorialID uint, kind model.InteractionKind) error {
	exists, err := s.TutorialRepo.Exists(tutorialID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrTutorialNotFound
	}

	interaction := &model.VideoInteraction{
		UserID:          userID,
		TutorialID:      tutorialID,
		InteractionType: kind,
	}
	if err := s.InteractionRepo.Create(interaction); err != nil {
		return err
	}

	monitoring.InteractionCounter.WithLabelValues(string(kind)).Inc()
	return nil
}
