// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/foodorder-backend/internal/config"
)

// Service sends transactional mail over SMTP. When EMAIL_ENABLED is false
// every send becomes a logged no-op, so development and tests never need a
// mail server.
type Service struct {
	config *config.Config
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// OrderLine is one line of an order confirmation
type OrderLine struct {
	Name      string
	SizeName  string
	Quantity  int
	LineTotal int64
}

// OrderConfirmation carries the data rendered into the confirmation email
type OrderConfirmation struct {
	OrderNumber  string
	CustomerName string
	TotalAmount  int64
	Currency     string
	Lines        []OrderLine

	// Filled in by the service from config
	StoreName  string
	StorePhone string
}

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`
<h2>{{.StoreName}} — xác nhận đơn hàng {{.OrderNumber}}</h2>
<p>Cảm ơn {{.CustomerName}}! Đơn hàng của bạn đã được tiếp nhận.</p>
<table border="0" cellpadding="4">
{{range .Lines}}
  <tr>
    <td>{{.Name}}{{if .SizeName}} ({{.SizeName}}){{end}}</td>
    <td>x{{.Quantity}}</td>
    <td align="right">{{.LineTotal}} {{$.Currency}}</td>
  </tr>
{{end}}
  <tr>
    <td colspan="2"><strong>Tổng cộng</strong></td>
    <td align="right"><strong>{{.TotalAmount}} {{.Currency}}</strong></td>
  </tr>
</table>
<p>Mọi thắc mắc xin gọi {{.StorePhone}}.</p>
`))

// SendOrderConfirmation renders and sends the order confirmation email
func (s *Service) SendOrderConfirmation(to string, data OrderConfirmation) error {
	data.StoreName = s.config.Store.Name
	data.StorePhone = s.config.Store.Phone

	var body bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render order confirmation: %w", err)
	}

	subject := fmt.Sprintf("%s: đơn hàng %s", s.config.Store.Name, data.OrderNumber)
	return s.send([]string{to}, subject, body.String())
}

// send delivers one HTML email over SMTP
func (s *Service) send(to []string, subject, htmlBody string) error {
	if !s.config.Email.Enabled {
		logrus.WithFields(logrus.Fields{
			"to":      strings.Join(to, ", "),
			"subject": subject,
		}).Debug("Email sending disabled, skipping")
		return nil
	}

	if s.config.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}

	from := s.config.Email.FromEmail
	if s.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.config.Email.SMTPHost, s.config.Email.SMTPPort)

	var auth smtp.Auth
	if s.config.Email.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.config.Email.SMTPUser, s.config.Email.SMTPPass, s.config.Email.SMTPHost)
	}

	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, to, msg.Bytes())
}
