package models

import "time"

// TransactionStatus is the lifecycle state of a transfer request
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionApproved TransactionStatus = "approved"
	TransactionRejected TransactionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed. Only a pending
// transaction can still be approved or rejected.
func (s TransactionStatus) Terminal() bool {
	return s != TransactionPending
}

// Transaction is a member-to-member transfer request.
// FromName/ToName are snapshots and are never recomputed from live accounts on read.
type Transaction struct {
	Id        string            `db:"id" json:"id"`
	Reference string            `db:"reference" json:"reference"`
	Reason    string            `db:"reason" json:"reason"`
	FromId    string            `db:"from_id" json:"from_id"`
	FromName  string            `db:"from_name" json:"from_name"`
	ToId      string            `db:"to_id" json:"to_id"`
	ToName    string            `db:"to_name" json:"to_name"`
	ToCode    string            `db:"to_code" json:"to_code"`
	Amount    int64             `db:"amount" json:"amount"`
	Status    TransactionStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// ReferenceSuffix returns the last four characters of the reference
func (t Transaction) ReferenceSuffix() string {
	if len(t.Reference) <= 4 {
		return t.Reference
	}
	return t.Reference[len(t.Reference)-4:]
}

// Involves reports whether the account is the sender or the receiver
func (t Transaction) Involves(accountId string) bool {
	return t.FromId == accountId || t.ToId == accountId
}

// TransferComposition carries the fields an outbound composer needs to
// describe a transfer request to a human (support desk, e-mail client).
type TransferComposition struct {
	Reference     string
	Reason        string
	SenderId      string
	SenderName    string
	ReceiverId    string
	ReceiverName  string
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
}
