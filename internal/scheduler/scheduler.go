package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/studytrack/internal/engine"
	"github.com/go-co-op/gocron"
)

// Default notification window
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier interface for sending notifications
type Notifier interface {
	SendReminders(userID int64, count int) error
}

// Scheduler periodically refreshes the engine from the store and reminds the
// user about due topics inside the notification window.
type Scheduler struct {
	scheduler *gocron.Scheduler
	engine    *engine.Engine
	notifier  Notifier
	userID    int64
}

// New creates a new scheduler instance
func New(eng *engine.Engine, notifier Notifier, userID int64) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		engine:    eng,
		notifier:  notifier,
		userID:    userID,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders refreshes the snapshots and sends a reminder when
// due topics exist.
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()
	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.engine.Refresh(ctx); err != nil {
		log.Printf("Error refreshing engine: %v", err)
		return
	}

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	due := s.engine.Dashboard().DueCount
	if due == 0 {
		return
	}
	if err := s.notifier.SendReminders(s.userID, due); err != nil {
		log.Printf("Error sending reminder to user %d: %v", s.userID, err)
	}
}

// RunManualCheck forces a refresh-and-remind cycle regardless of the
// notification window.
func (s *Scheduler) RunManualCheck(ctx context.Context) error {
	if err := s.engine.Refresh(ctx); err != nil {
		return err
	}
	due := s.engine.Dashboard().DueCount
	if due == 0 {
		return nil
	}
	return s.notifier.SendReminders(s.userID, due)
}

func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
