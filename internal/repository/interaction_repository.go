package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

// Create appends one event row. No dedup: the log is a raw stream,
// identical events land as separate rows.
func (r *InteractionRepository) Create(interaction *model.VideoInteraction) error {
	return r.DB.Create(interaction).Error
}

// GroupedStats counts the full interaction log grouped by
// (tutorial, student, kind), ordered by tutorial title then username.
func (r *InteractionRepository) GroupedStats() ([]model.InteractionStat, error) {
	var stats []model.InteractionStat
	err := r.DB.Raw(`
		SELECT
			t.title AS tutorial_title,
			u.username AS student_name,
			vi.interaction_type,
			COUNT(*) AS count
		FROM video_interactions vi
		JOIN tutorials t ON vi.tutorial_id = t.id
		JOIN users u ON vi.user_id = u.id
		WHERE vi.deleted_at IS NULL
		  AND t.deleted_at IS NULL
		  AND u.deleted_at IS NULL
		GROUP BY t.title, u.username, vi.interaction_type
		ORDER BY t.title, u.username`).
		Scan(&stats).Error
	return stats, err
}
