package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TutorialService struct {
	TutorialRepo   *repository.TutorialRepository
	StorageService *StorageService
	DB             *gorm.DB
}

func NewTutorialService(tutorialRepo *repository.TutorialRepository, storageService *StorageService, db *gorm.DB) *TutorialService {
	return &TutorialService{
		TutorialRepo:   tutorialRepo,
		StorageService: storageService,
		DB:             db,
	}
}

// Create inserts a tutorial for teacherID. The role check runs inside
// the same transaction as the insert, so the store enforces ownership
// even when called outside the route layer.
func (s *TutorialService) Create(tutorial *model.Tutorial, teacherID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var teacher model.User
		if err := tx.First(&teacher, teacherID).Error; err != nil {
			return err
		}
		if teacher.Role != model.Teacher {
			return util.ErrPermissionDenied
		}
		tutorial.TeacherID = teacherID
		return tx.Create(tutorial).Error
	})
}

func (s *TutorialService) List() ([]model.TutorialWithTeacher, error) {
	return s.TutorialRepo.ListWithTeacher()
}

// Get loads one tutorial with its teacher name and bumps the view
// counter. A failed counter update is logged, not surfaced.
func (s *TutorialService) Get(id uint) (*model.TutorialWithTeacher, error) {
	tutorial, err := s.TutorialRepo.FindWithTeacher(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTutorialNotFound
		}
		return nil, err
	}

	if err := s.TutorialRepo.IncrementViewCount(id); err != nil {
		logger.Log.Warn("view count update failed", zap.Uint("tutorial_id", id), zap.Error(err))
	}

	return tutorial, nil
}

// UploadVideo stores a teacher-supplied video file and returns its URL
// plus ffprobe metadata. The file lands in a temp path first so it can
// be probed before going to the configured storage backend.
func (s *TutorialService) UploadVideo(ctx context.Context, file *multipart.FileHeader) (string, *util.VideoInfo, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", nil, util.ErrInvalidVideoExt
	}

	src, err := file.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		return "", nil, fmt.Errorf("invalid video content: %v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return "", nil, err
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		return "", nil, err
	}

	probeSrc, err := os.Open(tmp.Name())
	if err != nil {
		return "", nil, err
	}
	defer probeSrc.Close()

	filename := "videos/" + time.Now().Format("20060102150405") + "_" + uuid.New().String()[:8] + ext
	url, err := s.StorageService.Upload(ctx, filename, probeSrc, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", nil, err
	}

	return url, info, nil
}
