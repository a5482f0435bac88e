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

// TransferRequest is the body of a member's transfer request
type TransferRequest struct {
	ReceiverId string `json:"receiver_id"`
	Amount     int64  `json:"amount"`
	Reason     string `json:"reason"`
}

// TransferResult returns the pending transaction plus a support compose link
type TransferResult struct {
	Transaction Transaction `json:"transaction"`
	ComposeURL  string      `json:"compose_url,omitempty"`
}

// RecipientView is what a sender may see about a recipient
type RecipientView struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// BalanceOverrideRequest sets an absolute balance
type BalanceOverrideRequest struct {
	Balance *int64 `json:"balance" binding:"required"`
}

// BonusRequest credits a named bonus
type BonusRequest struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// ErrorResponse carries the stable error kind and a human message
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
