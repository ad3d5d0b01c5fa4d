package repository

import (
	"testing"

	"learning_platform_backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInteractionCreate_AppendsEveryEvent(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewInteractionRepository(db)

	// Same (user, tutorial, kind) three times: three rows, no dedup.
	for i := int64(1); i <= 3; i++ {
		mock.ExpectExec("INSERT INTO `video_interactions`").
			WillReturnResult(sqlmock.NewResult(i, 1))
	}

	for i := 0; i < 3; i++ {
		event := &model.VideoInteraction{UserID: 2, TutorialID: 1, InteractionType: model.Play}
		if err := repo.Create(event); err != nil {
			t.Fatalf("Create #%d error: %v", i+1, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInteractionGroupedStats(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewInteractionRepository(db)

	rows := sqlmock.NewRows([]string{"tutorial_title", "student_name", "interaction_type", "count"}).
		AddRow("Intro", "alice", "complete", 1).
		AddRow("Intro", "alice", "play", 3).
		AddRow("Intro", "bob", "pause", 2)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.GroupedStats()
	if err != nil {
		t.Fatalf("GroupedStats error: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 stat rows, got %d", len(stats))
	}
	first := stats[0]
	if first.TutorialTitle != "Intro" || first.StudentName != "alice" ||
		first.InteractionType != "complete" || first.Count != 1 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if stats[1].Count != 3 {
		t.Fatalf("expected play count 3, got %d", stats[1].Count)
	}
}

func TestInteractionGroupedStats_SkipsSoftDeletedJoins(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewInteractionRepository(db)

	// 软删除的教程/用户不能出现在统计里，和列表查询保持一致
	mock.ExpectQuery(`(?s)t\.deleted_at IS NULL.*u\.deleted_at IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"tutorial_title", "student_name", "interaction_type", "count"}))

	if _, err := repo.GroupedStats(); err != nil {
		t.Fatalf("GroupedStats error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInteractionGroupedStats_Empty(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewInteractionRepository(db)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"tutorial_title", "student_name", "interaction_type", "count"}))

	stats, err := repo.GroupedStats()
	if err != nil {
		t.Fatalf("GroupedStats error: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected no rows, got %d", len(stats))
	}
}
