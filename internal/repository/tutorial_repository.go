package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type TutorialRepository struct {
	DB *gorm.DB
}

func NewTutorialRepository(db *gorm.DB) *TutorialRepository {
	return &TutorialRepository{DB: db}
}

func (r *TutorialRepository) Create(tutorial *model.Tutorial) error {
	return r.DB.Create(tutorial).Error
}

// ListWithTeacher returns all tutorials joined with the owning
// teacher's username, newest first. Recomputed on every call.
func (r *TutorialRepository) ListWithTeacher() ([]model.TutorialWithTeacher, error) {
	var tutorials []model.TutorialWithTeacher
	err := r.DB.Raw(`
		SELECT t.*, u.username AS teacher_name
		FROM tutorials t
		JOIN users u ON t.teacher_id = u.id
		WHERE t.deleted_at IS NULL AND u.deleted_at IS NULL
		ORDER BY t.created_at DESC`).
		Scan(&tutorials).Error
	return tutorials, err
}

func (r *TutorialRepository) FindWithTeacher(id uint) (*model.TutorialWithTeacher, error) {
	var tutorial model.TutorialWithTeacher
	err := r.DB.Raw(`
		SELECT t.*, u.username AS teacher_name
		FROM tutorials t
		JOIN users u ON t.teacher_id = u.id
		WHERE t.id = ? AND t.deleted_at IS NULL AND u.deleted_at IS NULL`, id).
		Scan(&tutorial).Error
	if err != nil {
		return nil, err
	}
	if tutorial.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &tutorial, nil
}

func (r *TutorialRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Tutorial{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *TutorialRepository) IncrementViewCount(id uint) error {
	return r.DB.Model(&model.Tutorial{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).
		Error
}
