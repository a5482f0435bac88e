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

import "errors"

// Error kinds returned by the ledger core. Callers classify with errors.Is.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingReason      = errors.New("missing reason")
	ErrInvalidRecipient   = errors.New("invalid recipient")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNotFound           = errors.New("not found")
	ErrNotActive          = errors.New("account not active")
	ErrNotPending         = errors.New("not pending")
	ErrBadCredential      = errors.New("bad credential")
	ErrDuplicateIdentity  = errors.New("duplicate identity")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrUnauthorized       = errors.New("unauthorized")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidAmount, "invalid_amount"},
	{ErrMissingReason, "missing_reason"},
	{ErrInvalidRecipient, "invalid_recipient"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrNotFound, "not_found"},
	{ErrNotActive, "not_active"},
	{ErrNotPending, "not_pending"},
	{ErrBadCredential, "bad_credential"},
	{ErrDuplicateIdentity, "duplicate_identity"},
	{ErrPersistenceFailure, "persistence_failure"},
	{ErrInvalidProfile, "invalid_profile"},
	{ErrUnauthorized, "unauthorized"},
}

// Kind returns the stable name of the error kind wrapped by err,
// or "internal" when err carries none of them.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
