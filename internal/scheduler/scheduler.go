// Package scheduler runs the periodic negative-balance alert job: for every
// user it projects the next months of checkpoints and emails a warning when
// the balance first dips below zero.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/config"
	"github.com/saldoapp/saldo-service/internal/models"
	"github.com/saldoapp/saldo-service/internal/notify"
	"github.com/saldoapp/saldo-service/internal/service"
)

// alert checkpoints: around the start of the month and mid-month, covering
// the usual salary and rent days.
var alertDays = []int{5, 10}

const alertMonths = 12

// Scheduler owns the cron instance and the alert job.
type Scheduler struct {
	svc    *service.Service
	users  UserLister
	sender *notify.Sender
	log    *logrus.Logger
	cfg    *config.Config
	cron   *cron.Cron
}

// UserLister yields every user to scan. Satisfied by the repository.
type UserLister interface {
	ListUsers() ([]models.User, error)
}

// NewScheduler creates the scheduler without starting it.
func NewScheduler(svc *service.Service, users UserLister, sender *notify.Sender, log *logrus.Logger, cfg *config.Config) *Scheduler {
	return &Scheduler{
		svc:    svc,
		users:  users,
		sender: sender,
		log:    log,
		cfg:    cfg,
		cron:   cron.New(),
	}
}

// Start registers the alert job on the configured cron expression and
// launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.AlertCron, s.runAlerts); err != nil {
		return fmt.Errorf("failed to schedule alert job: %w", err)
	}
	s.cron.Start()
	s.log.Infof("Alert job scheduled: %s", s.cfg.AlertCron)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runAlerts() {
	users, err := s.users.ListUsers()
	if err != nil {
		s.log.Errorf("Alert job failed to list users: %v", err)
		return
	}

	now := calendar.FromTime(time.Now())
	for _, user := range users {
		point, found := s.firstNegativeCheckpoint(user.ID, now)
		if !found {
			continue
		}
		if err := s.sender.SendNegativeBalanceAlert(user.Email, user.Username, point); err != nil {
			s.log.Errorf("Alert for user %d not sent: %v", user.ID, err)
		}
	}
}

// firstNegativeCheckpoint scans the alert day projections and returns the
// earliest checkpoint with a negative balance.
func (s *Scheduler) firstNegativeCheckpoint(userID int64, now calendar.Date) (models.ProjectionPoint, bool) {
	var earliest models.ProjectionPoint
	found := false
	for _, day := range alertDays {
		points, err := s.svc.ProjectionForUser(userID, day, alertMonths, nil, now)
		if err != nil {
			s.log.Errorf("Projection for user %d failed: %v", userID, err)
			continue
		}
		for _, point := range points {
			if point.Balance >= 0 {
				continue
			}
			if !found || point.Date.Before(earliest.Date) {
				earliest = point
				found = true
			}
			break
		}
	}
	return earliest, found
}
