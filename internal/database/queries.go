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

package database

const (
	schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		country TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		status TEXT NOT NULL,
		balance INTEGER NOT NULL CHECK (balance >= 0),
		created_at TIMESTAMP NOT NULL
	);

	-- Login aliases are only assigned on activation
	CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username) WHERE username != '';
	CREATE INDEX IF NOT EXISTS idx_accounts_status ON accounts(status);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		bonus_name TEXT NOT NULL DEFAULT '',
		amount INTEGER NOT NULL DEFAULT 0,
		read BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_account ON notifications(account_id, position);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		reference TEXT NOT NULL UNIQUE,
		reason TEXT NOT NULL,
		from_id TEXT NOT NULL,
		from_name TEXT NOT NULL,
		to_id TEXT NOT NULL,
		to_name TEXT NOT NULL,
		to_code TEXT NOT NULL,
		amount INTEGER NOT NULL CHECK (amount > 0),
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status);
	`

	// Account queries
	querySelectAccounts = `
		SELECT id, name, last_name, country, phone, email, username, password_hash, status, balance, created_at
		FROM accounts
		ORDER BY position`

	queryInsertAccount = `
		INSERT INTO accounts (id, position, name, last_name, country, phone, email, username, password_hash, status, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryDeleteAccounts = `DELETE FROM accounts`

	// Notification queries
	querySelectNotifications = `
		SELECT id, account_id, kind, message, bonus_name, amount, read, created_at
		FROM notifications
		ORDER BY account_id, position`

	queryInsertNotification = `
		INSERT INTO notifications (id, account_id, position, kind, message, bonus_name, amount, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryDeleteNotifications = `DELETE FROM notifications`

	// Transaction queries
	querySelectTransactions = `
		SELECT id, reference, reason, from_id, from_name, to_id, to_name, to_code, amount, status, created_at
		FROM transactions
		ORDER BY position`

	queryInsertTransaction = `
		INSERT INTO transactions (id, position, reference, reason, from_id, from_name, to_id, to_name, to_code, amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryDeleteTransactions = `DELETE FROM transactions`

	// Reporting
	querySumBalances = `
		SELECT COUNT(*), COALESCE(SUM(balance), 0)
		FROM accounts
		WHERE status = ?`
)
