/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package notify

import (
	"time"

	"novares-ledger-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Inbox is the part of the account store the dispatcher writes to
type Inbox interface {
	Exists(id string) bool
	AppendNotification(id string, n models.Notification) error
}

// Dispatcher builds notifications and prepends them to member inboxes.
// Delivery is a local append; a missing target account is a silent no-op.
type Dispatcher struct {
	now   func() time.Time
	newId func() string
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		now:   time.Now,
		newId: func() string { return uuid.New().String() },
	}
}

// WithClock replaces the timestamp source
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Send appends a standard message. It reports whether the account existed.
func (d *Dispatcher) Send(inbox Inbox, accountId, message string) bool {
	return d.deliver(inbox, accountId, models.Notification{
		Kind:    models.NotificationStandard,
		Message: message,
	})
}

// SendBonus appends a bonus card carrying the bonus name and amount
func (d *Dispatcher) SendBonus(inbox Inbox, accountId, bonusName string, amount int64) bool {
	return d.deliver(inbox, accountId, models.Notification{
		Kind:      models.NotificationBonus,
		Message:   BonusIssued(bonusName),
		BonusName: bonusName,
		Amount:    amount,
	})
}

func (d *Dispatcher) deliver(inbox Inbox, accountId string, n models.Notification) bool {
	if !inbox.Exists(accountId) {
		zap.L().Debug("Notification target missing, skipping", zap.String("account_id", accountId))
		return false
	}

	n.Id = d.newId()
	n.Timestamp = d.now()
	if err := inbox.AppendNotification(accountId, n); err != nil {
		// only reachable if the account vanished between the two calls
		zap.L().Warn("Failed to append notification", zap.String("account_id", accountId), zap.Error(err))
		return false
	}

	zap.L().Debug("Notification delivered",
		zap.String("account_id", accountId),
		zap.String("notification_id", n.Id),
		zap.String("kind", string(n.Kind)))
	return true
}
