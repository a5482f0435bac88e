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

package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"novares-ledger-go/internal/common"
	"novares-ledger-go/internal/config"
	"novares-ledger-go/internal/database"
	"novares-ledger-go/internal/models"

	"go.uber.org/zap"
)

type balanceStats struct {
	accounts      int
	totalBalance  int64
	pendingCount  int
	pendingAmount int64
}

func printAccount(account models.Account, isLast bool) {
	fmt.Printf("%s %-10s %-9s %16s  %s\n",
		common.BoxPrefix(isLast),
		account.Id,
		common.StatusLabel(string(account.Status)),
		common.FormatNovares(account.Balance),
		account.DisplayName())
	fmt.Printf("%s   %s | %s | unread: %d\n",
		common.BoxDetailPrefix(isLast),
		account.Email,
		common.MaskPhone(account.Phone),
		unread(account.Inbox))
}

func unread(inbox []models.Notification) int {
	n := 0
	for _, msg := range inbox {
		if !msg.Read {
			n++
		}
	}
	return n
}

func matches(account models.Account, email string, status string) bool {
	if email != "" && !strings.EqualFold(account.Email, email) {
		return false
	}
	if status != "" && string(account.Status) != status {
		return false
	}
	return true
}

func generateReport(state *models.State, email, status string) balanceStats {
	stats := balanceStats{}

	selected := make([]models.Account, 0, len(state.Accounts))
	for _, account := range state.Accounts {
		if matches(account, email, status) {
			selected = append(selected, account)
		}
	}

	for i, account := range selected {
		printAccount(account, i == len(selected)-1)
		stats.accounts++
		stats.totalBalance += account.Balance
	}

	for _, tx := range state.Transactions {
		if tx.Status == models.TransactionPending {
			stats.pendingCount++
			stats.pendingAmount += tx.Amount
		}
	}
	return stats
}

func printTotals(ctx context.Context, dbService *database.Service) {
	common.PrintBoxSeparator(78)
	for _, status := range []models.AccountStatus{models.StatusActive, models.StatusPending} {
		count, total, err := dbService.StatusTotals(ctx, status)
		if err != nil {
			zap.L().Error("Failed to compute totals", zap.String("status", string(status)), zap.Error(err))
			continue
		}
		fmt.Printf("│  %-9s %4d accounts %18s\n", common.StatusLabel(string(status)), count, common.FormatNovares(total))
	}
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "Filter by member email (optional)")
	statusFlag := flag.String("status", "", "Filter by account status: active or pending (optional)")
	flag.Parse()

	logger.Info("Starting balance report")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// read-only: no ledger engine, no admin session
	logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	state, err := dbService.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load ledger state", zap.Error(err))
	}

	common.PrintHeader("NÓVARES BALANCE REPORT", common.DefaultWidth)
	stats := generateReport(state, *emailFlag, *statusFlag)
	printTotals(ctx, dbService)

	summary := fmt.Sprintf("SUMMARY: %d accounts holding %s (%d pending transfers worth %s)",
		stats.accounts, common.FormatNovares(stats.totalBalance),
		stats.pendingCount, common.FormatNovares(stats.pendingAmount))
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Balance report completed",
		zap.Int("accounts", stats.accounts),
		zap.Int64("total_balance", stats.totalBalance),
		zap.Int("pending_transfers", stats.pendingCount))
}
