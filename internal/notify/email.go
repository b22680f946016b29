package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/saldoapp/saldo-service/internal/config"
	"github.com/saldoapp/saldo-service/internal/models"
)

// Sender handles sending alert emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendNegativeBalanceAlert warns a user that their projected balance goes
// negative at the given checkpoint.
func (s *Sender) SendNegativeBalanceAlert(to, username string, point models.ProjectionPoint) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Projected Negative Balance Warning"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Based on your recurring incomes and expenses, your balance is projected\n"+
			"to drop to %.2f EUR on %s.\n\n"+
			"Projected flows for that period:\n"+
			"  Income:         %.2f EUR\n"+
			"  Fixed expenses: %.2f EUR\n"+
			"  Cost of living: %.2f EUR\n\n"+
			"Consider adjusting your budget or upcoming expenses.\n"+
			"\nBest regards,\nSaldo Service",
		username, point.Balance, point.Date, point.Income, point.Expenses, point.CostOfLiving,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert to %s: %v", to, err)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
