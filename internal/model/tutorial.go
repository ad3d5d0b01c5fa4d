package model

// Tutorial is a published video lesson owned by a teacher account.
// swagger:model Tutorial
type Tutorial struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	VideoURL    string  `gorm:"size:255;not null" json:"videoUrl"`
	TeacherID   uint    `gorm:"index;type:bigint unsigned" json:"teacherId"`
	ViewCount   int     `gorm:"column:view_count;default:0" json:"viewCount"`
	Duration    float64 `gorm:"column:duration;default:0" json:"duration"`
	Format      string  `gorm:"size:50" json:"format"`
}

func (Tutorial) TableName() string {
	return "tutorials"
}

// TutorialWithTeacher is the joined read shape used by the dashboards.
type TutorialWithTeacher struct {
	Tutorial
	TeacherName string `json:"teacherName"`
}
