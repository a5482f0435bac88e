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

package models

import "time"

// AccountStatus is the onboarding state of a member
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusActive   AccountStatus = "active"
	StatusRejected AccountStatus = "rejected"
)

// NotificationKind distinguishes plain inbox messages from bonus cards
type NotificationKind string

const (
	NotificationStandard NotificationKind = "standard"
	NotificationBonus    NotificationKind = "bonus"
)

// Credentials holds the login material of a member.
// PasswordHash is set at registration; Username is assigned on activation.
// An active account always carries both.
type Credentials struct {
	Username     string `db:"username" json:"username,omitempty"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Complete reports whether the credentials allow signing in
func (c Credentials) Complete() bool {
	return c.Username != "" && c.PasswordHash != ""
}

// Notification is a single inbox entry. Entries are never mutated after insertion.
type Notification struct {
	Id        string           `db:"id" json:"id"`
	Kind      NotificationKind `db:"kind" json:"kind"`
	Message   string           `db:"message" json:"message"`
	BonusName string           `db:"bonus_name" json:"bonus_name,omitempty"`
	Amount    int64            `db:"amount" json:"amount,omitempty"`
	Read      bool             `db:"read" json:"read"`
	Timestamp time.Time        `db:"timestamp" json:"timestamp"`
}

// Account represents a member of the platform with a Nóvares balance
type Account struct {
	Id          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	LastName    string         `db:"last_name" json:"last_name"`
	Country     string         `db:"country" json:"country"`
	Phone       string         `db:"phone" json:"phone"`
	Email       string         `db:"email" json:"email"`
	Credentials Credentials    `json:"credentials"`
	Status      AccountStatus  `db:"status" json:"status"`
	Balance     int64          `db:"balance" json:"balance"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	Inbox       []Notification `json:"inbox"` // newest first
}

// DisplayName returns the full name used for transaction snapshots
func (a Account) DisplayName() string {
	if a.LastName == "" {
		return a.Name
	}
	return a.Name + " " + a.LastName
}

// Clone returns a deep copy so callers never share the inbox backing array
func (a Account) Clone() Account {
	c := a
	if a.Inbox != nil {
		c.Inbox = make([]Notification, len(a.Inbox))
		copy(c.Inbox, a.Inbox)
	}
	return c
}

// Profile is the registration form submitted by a prospective member
type Profile struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	LastName string `json:"last_name" yaml:"last_name" validate:"required"`
	Country  string `json:"country" yaml:"country" validate:"required"`
	Phone    string `json:"phone" yaml:"phone" validate:"required"`
	Email    string `json:"email" yaml:"email" validate:"required,email"`
	Password string `json:"password" yaml:"-" validate:"required"`
}

// FoundingMember is an entry of the seed file loaded into an empty ledger.
// Founding members start active; the password is supplied as a bcrypt hash.
type FoundingMember struct {
	Id           string `yaml:"id"`
	Name         string `yaml:"name"`
	LastName     string `yaml:"last_name"`
	Country      string `yaml:"country"`
	Phone        string `yaml:"phone"`
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
	Balance      int64  `yaml:"balance"`
}
