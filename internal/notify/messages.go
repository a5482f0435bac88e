package notify

import (
	"fmt"
	"strings"

	"novares-ledger-go/internal/models"
)

// Unit is the display name of the point currency
const Unit = "Nóvares"

func TransferApproved(tx models.Transaction, receiverFirstName string) string {
	return fmt.Sprintf("Transfer approved [REF:%s]: you sent %d %s to %s. Reason: %s",
		tx.ReferenceSuffix(), tx.Amount, Unit, receiverFirstName, tx.Reason)
}

func TransferReceived(tx models.Transaction, senderFirstName string) string {
	return fmt.Sprintf("Transfer received [REF:%s]: %s sent you %d %s. Reason: %s",
		tx.ReferenceSuffix(), senderFirstName, tx.Amount, Unit, tx.Reason)
}

func BalanceOverridden(newBalance int64) string {
	return fmt.Sprintf("Your balance was manually updated by the central system to %d %s.", newBalance, Unit)
}

func BonusIssued(bonusName string) string {
	return "Congratulations, you received the bonus: " + strings.TrimSpace(bonusName)
}

func Welcome() string {
	return "Activated! Your account has been validated. Use your ID and the password you chose to sign in."
}

func FoundingWelcome(a models.Account) string {
	return fmt.Sprintf("Welcome %s! You are a founding member of SpaceTramoya X.", a.DisplayName())
}
