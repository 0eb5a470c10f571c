package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender `json:"sender"`
	To          []BrevoTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// KnockoutAlert carries the contract facts for a knockout notification.
type KnockoutAlert struct {
	Commodity     string
	Buyer         string
	KnockoutPrice decimal.Decimal
	MarketPrice   decimal.Decimal
	TriggeredAt   time.Time
}

// Sender sends transactional emails. Nil = no-op.
type Sender interface {
	SendKnockoutAlert(ctx context.Context, toEmail, firstName string, alert KnockoutAlert) error
}

// BrevoClient sends emails via Brevo (Sendinblue) API. Configured with
// BREVO_API_KEY and MAIL_FROM; an empty key makes every send a no-op.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@grainbook.app"
}

// send sends one email via Brevo API.
func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "Grainbook"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendKnockoutAlert notifies a user that an accumulator contract knocked out.
func (c *BrevoClient) SendKnockoutAlert(ctx context.Context, toEmail, firstName string, alert KnockoutAlert) error {
	if c.APIKey == "" {
		return nil
	}
	if firstName == "" {
		firstName = "there"
	}
	content := knockoutContent(firstName, alert)
	return c.send(ctx, toEmail, "Accumulator contract knocked out", EmailLayout(content))
}

func knockoutContent(firstName string, alert KnockoutAlert) string {
	buyer := alert.Buyer
	if buyer == "" {
		buyer = "your buyer"
	}
	return fmt.Sprintf(`
    <h1>Knockout Triggered</h1>
    <p>Hi %s,</p>
    <p>Your %s accumulator contract with <strong>%s</strong> hit its knockout barrier on %s.</p>
    <p>The market traded at <strong>$%s</strong> against a knockout price of <strong>$%s</strong>. Daily bushel accrual on this contract has stopped as of that date.</p>
    <p>Log in to review the contract's accrued position and your remaining open bushels.</p>
`, EscapeHTML(firstName), EscapeHTML(alert.Commodity), EscapeHTML(buyer),
		alert.TriggeredAt.Format("January 2, 2006"),
		alert.MarketPrice.StringFixed(2), alert.KnockoutPrice.StringFixed(2))
}
