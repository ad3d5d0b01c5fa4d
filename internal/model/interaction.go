package model

type InteractionKind string

const (
	Play     InteractionKind = "play"
	Pause    InteractionKind = "pause"
	Complete InteractionKind = "complete"
)

// VideoInteraction is one raw playback event. Rows are append-only and
// never deduplicated; identical events produce identical rows.
type VideoInteraction struct {
	BaseModel
	UserID          uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	TutorialID      uint            `gorm:"index;type:bigint unsigned" json:"tutorialId"`
	InteractionType InteractionKind `gorm:"size:20;not null" json:"interactionType"`
}

func (VideoInteraction) TableName() string {
	return "video_interactions"
}

// InteractionStat is one grouped row of the teacher-facing engagement
// report: how many times a given student fired a given event on a
// given tutorial.
type InteractionStat struct {
	TutorialTitle   string `json:"title" gorm:"column:tutorial_title"`
	StudentName     string `json:"student_name" gorm:"column:student_name"`
	InteractionType string `json:"interaction_type" gorm:"column:interaction_type"`
	Count           int64  `json:"count" gorm:"column:count"`
}
