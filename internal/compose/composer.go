package compose

import (
	"fmt"
	"net/url"
	"strings"

	"novares-ledger-go/internal/models"
)

const gmailComposeURL = "https://mail.google.com/mail/"

// MailComposer builds a pre-filled support e-mail for a transfer request.
// Nothing is sent; the caller opens the link in a mail client.
type MailComposer struct {
	SupportEmail string
}

func NewMailComposer(supportEmail string) *MailComposer {
	return &MailComposer{SupportEmail: supportEmail}
}

func (m *MailComposer) Subject(c models.TransferComposition) string {
	return "Novares Transfer " + c.SenderId
}

func (m *MailComposer) Body(c models.TransferComposition) string {
	lines := []string{
		"Transfer request:",
		"Reference: " + c.Reference,
		"Reason: " + c.Reason,
		"Sender: " + c.SenderId,
		fmt.Sprintf("Receiver: %s (%s)", c.ReceiverId, c.ReceiverName),
		fmt.Sprintf("Amount: %d Nóvares", c.Amount),
		fmt.Sprintf("Balance before: %d", c.BalanceBefore),
		fmt.Sprintf("Balance after transfer: %d", c.BalanceAfter),
	}
	return strings.Join(lines, "\n")
}

// ComposeURL returns a Gmail compose link addressed to the support desk
func (m *MailComposer) ComposeURL(c models.TransferComposition) string {
	q := url.Values{}
	q.Set("view", "cm")
	q.Set("fs", "1")
	q.Set("to", m.SupportEmail)
	q.Set("su", m.Subject(c))
	q.Set("body", m.Body(c))
	return gmailComposeURL + "?" + q.Encode()
}
