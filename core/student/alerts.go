package student

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/earlysignal/earlysignal/core"
)

type AlertStatus string

const (
	AlertSent    AlertStatus = "sent"
	AlertSkipped AlertStatus = "skipped"
	AlertFailed  AlertStatus = "failed"
)

// AlertResult is the per-recipient outcome of a dispatch attempt.
type AlertResult struct {
	ID        string      `json:"id"`
	StudentID string      `json:"student_id"`
	Recipient string      `json:"recipient"`
	Status    AlertStatus `json:"status"`
	Detail    string      `json:"detail,omitempty"`
}

// Alerter formats and sends risk notifications. When the mail credential is
// not configured it reports skipped instead of failing, so alert batches
// stay a no-op in unconfigured environments.
type Alerter struct {
	mailSvc          core.EmailService
	enabled          bool
	defaultRecipient string
}

func NewAlerter(mailSvc core.EmailService, enabled bool, defaultRecipient string) *Alerter {
	return &Alerter{mailSvc: mailSvc, enabled: enabled, defaultRecipient: defaultRecipient}
}

// SendRiskAlert notifies `recipient` (the configured mentor inbox when empty)
// that the student sits at their current risk tier.
func (a *Alerter) SendRiskAlert(s Student, recipient string) AlertResult {
	if recipient == "" {
		recipient = a.defaultRecipient
	}
	res := AlertResult{
		ID:        uuid.New().String(),
		StudentID: s.StudentID,
		Recipient: recipient,
	}

	if !a.enabled {
		res.Status = AlertSkipped
		res.Detail = "email service not configured"
		return res
	}

	msg := &core.EmailMessage{
		To:          []mail.Address{{Address: recipient}},
		Subject:     fmt.Sprintf("Alert: Student %s at %s Risk", s.StudentID, strings.Title(string(s.RiskLevel))),
		TextContent: a.body(s),
	}
	if err := a.mailSvc.SendMessage(msg); err != nil {
		res.Status = AlertFailed
		res.Detail = err.Error()
		return res
	}
	res.Status = AlertSent
	return res
}

func (a *Alerter) body(s Student) string {
	var b strings.Builder
	name := s.Name
	if name == "" {
		name = s.StudentID
	}
	fmt.Fprintf(&b, "Student %s (%s) is classified as %s risk.\n", name, s.StudentID, s.RiskLevel)
	if s.DropoutProbability > 0 {
		fmt.Fprintf(&b, "Estimated dropout probability: %.2f%%\n", s.DropoutProbability*100)
	}
	if len(s.RiskFactors) > 0 {
		b.WriteString("Risk factors:\n")
		for _, f := range s.RiskFactors {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	return b.String()
}
