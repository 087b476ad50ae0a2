package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/utils/format"
)

type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{config: cfg}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg strings.Builder
	for k, v := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n" + htmlBody)

	auth := smtp.PlainAuth(m.config.From, m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) SendOrderConfirmation(order *models.Order) error {
	subject := fmt.Sprintf("Order confirmation %s", order.OrderCode)
	return m.SendHTMLEmail(order.Email, subject, buildOrderConfirmationBody(order))
}

func buildOrderConfirmationBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.OrderItems {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			item.ProductName, item.Qty, format.Money(item.Subtotal))
	}

	return fmt.Sprintf(`
        <html>
        <body>
            <h2>Thanks for your order, %s!</h2>
            <p>Order <strong>%s</strong> has been received and is being prepared.</p>
            <table border="0" cellpadding="4">
                <tr><th>Item</th><th>Qty</th><th>Subtotal</th></tr>
                %s
            </table>
            <p>Shipping: %s<br>Tax: %s<br><strong>Total: %s</strong></p>
            <p>We will let you know when it ships.</p>
        </body>
        </html>
    `, order.FirstName, order.OrderCode, rows.String(),
		format.Money(order.ShippingCost), format.Money(order.TaxAmount), format.Money(order.GrandTotal))
}
