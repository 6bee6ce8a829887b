package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/studytrack/pkg/models"
	"github.com/google/uuid"
)

// SeedDemoData inserts a small demo syllabus plus sample logs and quiz
// results for the user, so the bot surfaces show something before any real
// data exists. It is a no-op when the user already has a syllabus document.
func SeedDemoData(ctx context.Context, userID int64) error {
	syllabusRepo := NewSyllabusRepository()
	existing, err := syllabusRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check existing syllabus: %w", err)
	}
	if existing != nil {
		return nil
	}

	now := time.Now()
	nineDaysAgo := now.AddDate(0, 0, -9).Format(time.RFC3339)
	twoDaysAgo := now.AddDate(0, 0, -2).Format(time.RFC3339)

	paper := func(title string, children ...*models.SyllabusNode) *models.SyllabusNode {
		return &models.SyllabusNode{ID: uuid.NewString(), Title: title, Children: children}
	}
	topic := func(title string, stats *models.TopicStats) *models.SyllabusNode {
		return &models.SyllabusNode{ID: uuid.NewString(), Title: title, Stats: stats}
	}

	history := paper("History",
		topic("Ancient", &models.TopicStats{
			TotalMinutes:     120,
			LastStudied:      &nineDaysAgo,
			RevisionInterval: models.DefaultRevisionInterval,
		}),
		topic("Medieval", nil),
		topic("Modern", &models.TopicStats{
			TotalMinutes:     45,
			LastStudied:      &twoDaysAgo,
			RevisionInterval: models.DefaultRevisionInterval,
		}),
	)
	polity := paper("Polity",
		topic("Constitution", &models.TopicStats{
			TotalMinutes:     90,
			LastStudied:      &twoDaysAgo,
			RevisionInterval: 14,
		}),
		topic("Parliament", nil),
	)

	syllabusID := uuid.NewString()
	coll := &models.SyllabusCollection{
		Syllabi: map[string]*models.Syllabus{
			syllabusID: {
				Name:      "Main Syllabus",
				Items:     []*models.SyllabusNode{history, polity},
				Completed: []string{history.Children[0].ID},
			},
		},
		SyllabusIDs:      []string{syllabusID},
		ActiveSyllabusID: syllabusID,
	}
	if err := syllabusRepo.Save(ctx, userID, coll); err != nil {
		return fmt.Errorf("failed to seed syllabus: %w", err)
	}

	logRepo := NewStudyLogRepository()
	logs := []models.StudyLogEntry{
		{UserID: userID, Date: now.AddDate(0, 0, -1).Format(time.RFC3339), Subject: "History", Topic: "Ancient", DurationMinutes: 90, Mode: models.ModeStopwatch},
		{UserID: userID, Date: now.AddDate(0, 0, -2).Format(time.RFC3339), Subject: "Polity", Topic: "Constitution", DurationMinutes: 60, Mode: models.ModePomodoro},
		{UserID: userID, Date: now.AddDate(0, 0, -3).Format(time.RFC3339), Subject: "History", Topic: "Modern", DurationMinutes: 45, Mode: models.ModeManual},
	}
	for i := range logs {
		if err := logRepo.Create(ctx, &logs[i]); err != nil {
			return fmt.Errorf("failed to seed study logs: %w", err)
		}
	}

	quizRepo := NewQuizResultRepository()
	quizzes := []models.QuizResult{
		{UserID: userID, Topic: "Polity", Score: 8, TotalQuestions: 10},
		{UserID: userID, Topic: "History", Score: 6, TotalQuestions: 10},
	}
	for i := range quizzes {
		if err := quizRepo.Create(ctx, &quizzes[i]); err != nil {
			return fmt.Errorf("failed to seed quiz results: %w", err)
		}
	}

	statsRepo := NewUserStatsRepository()
	stats := &models.UserStats{UserID: userID, CurrentStreak: 3, LastStudyDate: now.Format("2006-01-02")}
	if err := statsRepo.Upsert(ctx, stats); err != nil {
		return fmt.Errorf("failed to seed user stats: %w", err)
	}
	return nil
}
