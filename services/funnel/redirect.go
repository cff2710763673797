// File: services/funnel/redirect.go
package funnel

import (
	"fmt"
	"net/url"
	"strings"

	"streamafrica/config"
	"streamafrica/models"
)

// buildRedirectMessage assembles the multi-line summary the support chat
// receives. Wording branches on how the payment completed: a reference
// means an instant (widget/cashier) payment, a bank label means a manual
// transfer awaiting reconciliation.
func buildRedirectMessage(session *models.FunnelSession) string {
	u := session.PendingUser

	var b strings.Builder
	b.WriteString("Hello Stream Africa,\n\n")
	b.WriteString("I have just completed my payment and registration.\n\n")
	b.WriteString("*Here are my details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", u.Name)
	fmt.Fprintf(&b, "Username: %s\n", u.Username)
	fmt.Fprintf(&b, "Email: %s\n", u.Email)
	fmt.Fprintf(&b, "Phone: %s\n", u.Phone)

	if session.PaymentMethod() == "manual" {
		fmt.Fprintf(&b, "Payment Method: Manual Bank Transfer\n")
		fmt.Fprintf(&b, "Bank: %s\n", session.PaymentBankLabel)
	} else {
		fmt.Fprintf(&b, "Payment Method: Instant Payment\n")
		fmt.Fprintf(&b, "Payment Ref: %s\n", session.PaymentReference)
	}

	b.WriteString("\nPlease verify my account.")
	return b.String()
}

// buildRedirectURL wraps the message in the configured messaging deep link:
// a WhatsApp compose link or a Telegram channel link.
func buildRedirectURL(cfg *config.Config, session *models.FunnelSession) string {
	text := url.QueryEscape(buildRedirectMessage(session))

	if cfg.RedirectUseWhatsApp {
		return fmt.Sprintf("https://wa.me/%s?text=%s", cfg.WhatsAppNumber, text)
	}

	// A channel link may already carry query parameters.
	separator := "?"
	if strings.Contains(cfg.TelegramURL, "?") {
		separator = "&"
	}
	return cfg.TelegramURL + separator + "text=" + text
}
