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

	"novares-ledger-go/internal/common"
	"novares-ledger-go/internal/config"
	"novares-ledger-go/internal/models"

	"go.uber.org/zap"
)

func printHistory(accountId string, txs []models.Transaction) {
	common.PrintHeader(fmt.Sprintf("TRANSFERS FOR %s", accountId), common.DefaultWidth)
	if len(txs) == 0 {
		fmt.Println("No transfers found")
		return
	}
	for i, tx := range txs {
		isLast := i == len(txs)-1
		direction := "to " + tx.ToName
		if tx.ToId == accountId {
			direction = "from " + tx.FromName
		}
		fmt.Printf("%s REF:%s %14s %-9s %s\n",
			common.BoxPrefix(isLast),
			tx.ReferenceSuffix(),
			common.FormatNovares(tx.Amount),
			common.StatusLabel(string(tx.Status)),
			direction)
		fmt.Printf("%s   %s | %s\n",
			common.BoxDetailPrefix(isLast),
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			tx.Reason)
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	loginFlag := flag.String("login", "", "Member code or email (required)")
	toFlag := flag.String("to", "", "Recipient member code")
	amountFlag := flag.Int64("amount", 0, "Amount of Nóvares to send")
	reasonFlag := flag.String("reason", "", "Reason for the transfer")
	historyFlag := flag.Bool("history", false, "List your transfers instead of sending one")
	refFlag := flag.String("ref", "", "With --history, filter by reference suffix")
	flag.Parse()

	if *loginFlag == "" {
		zap.L().Fatal("--login is required")
	}
	if !*historyFlag && (*toFlag == "" || *amountFlag == 0) {
		zap.L().Fatal("--to and --amount are required unless --history is set")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	password, err := common.PromptSecret("Password: ")
	if err != nil {
		zap.L().Fatal("Failed to read password", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	me, err := services.Ledger.Authenticate(*loginFlag, password)
	if err != nil {
		zap.L().Fatal("Sign in failed", zap.String("kind", models.Kind(err)))
	}

	if *historyFlag {
		txs, err := services.Ledger.ListTransactionsFor(me.Id, *refFlag)
		if err != nil {
			zap.L().Fatal("Failed to list transfers", zap.Error(err))
		}
		printHistory(me.Id, txs)
		return
	}

	recipient, err := services.Ledger.LookupRecipient(me.Id, *toFlag)
	if err != nil {
		zap.L().Fatal("Recipient is not valid", zap.String("code", *toFlag), zap.Error(err))
	}
	fmt.Printf("Sending %s to %s (%s)\n", common.FormatNovares(*amountFlag), recipient.DisplayName(), recipient.Id)

	tx, err := services.Ledger.RequestTransfer(ctx, me.Id, recipient.Id, *amountFlag, *reasonFlag)
	if err != nil {
		zap.L().Fatal("Transfer request refused", zap.String("kind", models.Kind(err)), zap.Error(err))
	}

	composition, err := services.Ledger.TransferComposition(tx.Id)
	if err != nil {
		zap.L().Fatal("Failed to build transfer summary", zap.Error(err))
	}

	fmt.Println()
	common.PrintHeader("TRANSFER REQUESTED", common.DefaultWidth)
	fmt.Printf("Reference:       %s\n", tx.Reference)
	fmt.Printf("Amount:          %s\n", common.FormatNovares(tx.Amount))
	fmt.Printf("Balance before:  %s\n", common.FormatNovares(composition.BalanceBefore))
	fmt.Printf("Balance after:   %s\n", common.FormatNovares(composition.BalanceAfter))
	fmt.Printf("Status:          %s\n", common.StatusLabel(string(tx.Status)))
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println("Send the request to support to have it approved:")
	fmt.Println(services.Composer.ComposeURL(composition))
}
