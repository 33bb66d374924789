package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/salon-ops/internal/config"
	"github.com/Dan9191/salon-ops/internal/models"
)

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   sendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendBudgetAlert notifies the configured recipients about categories whose
// actual spend exceeds the projection.
func (s *Sender) SendBudgetAlert(summary models.ProjectCostsSummary, overBudget []models.CategorySummary, at time.Time) error {
	if len(s.cfg.AlertRecipients) == 0 {
		return fmt.Errorf("no alert recipients configured")
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = s.cfg.AlertRecipients
	e.Subject = budgetAlertSubject(overBudget)
	e.Text = []byte(budgetAlertBody(summary, overBudget, at))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send budget alert to %s: %v", strings.Join(e.To, ", "), err)
		return fmt.Errorf("failed to send budget alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", strings.Join(e.To, ", "), e.Subject)
	return nil
}

func budgetAlertSubject(overBudget []models.CategorySummary) string {
	switch len(overBudget) {
	case 0:
		return "Build-out budget exceeded"
	case 1:
		return fmt.Sprintf("Budget alert: %s is over budget", overBudget[0].Category.Name)
	default:
		return fmt.Sprintf("Budget alert: %d categories over budget", len(overBudget))
	}
}

func budgetAlertBody(summary models.ProjectCostsSummary, overBudget []models.CategorySummary, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project budget status as of %s\n\n", at.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Projected: $%s\n", summary.TotalProjected.StringFixed(2))
	fmt.Fprintf(&b, "Actual:    $%s\n", summary.TotalActual.StringFixed(2))
	fmt.Fprintf(&b, "Remaining: $%s\n", summary.RemainingBudget.StringFixed(2))

	if len(overBudget) > 0 {
		b.WriteString("\nOver budget:\n")
		for _, c := range overBudget {
			fmt.Fprintf(&b, "  - %s: spent $%s of $%s (over by $%s)\n",
				c.Category.Name,
				c.ActualTotal.StringFixed(2),
				c.Category.ProjectedTotal.StringFixed(2),
				c.Variance.Neg().StringFixed(2),
			)
		}
	}
	b.WriteString("\nSalon Ops")
	return b.String()
}
