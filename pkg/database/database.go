package database

import (
	"fmt"
	"log"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if shouldMigrate(cfg.Server.Mode, cfg.ForceMigrate) {
		err = db.AutoMigrate(
			&model.User{},
			&model.Tutorial{},
			&model.VideoInteraction{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	if err := seedDefaultTeacher(db, &cfg.Bootstrap); err != nil {
		return nil, err
	}

	return db, nil
}

// shouldMigrate release 模式默认跳过自动迁移，需通过 -migrate 显式开启
func shouldMigrate(mode string, force bool) bool {
	return force || mode != "release"
}

// seedDefaultTeacher 首次启动时创建默认教师账号。仅当一个教师都不存在时
// 才会写入，重复执行不会产生第二个账号。
func seedDefaultTeacher(db *gorm.DB, bootstrap *config.BootstrapConfig) error {
	var teacherCount int64
	if err := db.Model(&model.User{}).Where("role = ?", model.Teacher).Count(&teacherCount).Error; err != nil {
		return err
	}
	if teacherCount > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(bootstrap.TeacherPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	teacher := &model.User{
		Username: bootstrap.TeacherUsername,
		Email:    bootstrap.TeacherEmail,
		Password: string(hashed),
		Role:     model.Teacher,
	}
	if err := db.Create(teacher).Error; err != nil {
		return err
	}

	log.Printf("Default teacher account created: %s / %s (change this password before any real deployment)",
		bootstrap.TeacherUsername, bootstrap.TeacherPassword)
	return nil
}
