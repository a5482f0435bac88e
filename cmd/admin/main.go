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
	"os"
	"strconv"
	"strings"

	"novares-ledger-go/internal/common"
	"novares-ledger-go/internal/config"
	"novares-ledger-go/internal/ledger"
	"novares-ledger-go/internal/models"

	"go.uber.org/zap"
)

const usage = `Usage: admin [--user NAME] <command> [args]

Commands:
  members                       list every account
  activate <member>             activate a pending registration
  reject <member>               discard a pending registration
  remove <member>               delete an account
  pending                       list pending transfers
  search <ref-suffix>           search transfers by reference suffix
  approve <transaction-id>      approve a pending transfer
  reject-tx <transaction-id>    reject a pending transfer
  override <member> <balance>   set a balance
  bonus <member> <amount> <name...>  credit a named bonus
`

func printAccounts(accounts []models.Account) {
	common.PrintHeader("MEMBERS", common.DefaultWidth)
	for i, a := range accounts {
		isLast := i == len(accounts)-1
		fmt.Printf("%s %-10s %-9s %16s  %s\n",
			common.BoxPrefix(isLast),
			a.Id,
			common.StatusLabel(string(a.Status)),
			common.FormatNovares(a.Balance),
			a.DisplayName())
		fmt.Printf("%s   %s | %s | %s\n",
			common.BoxDetailPrefix(isLast),
			a.Email,
			common.MaskPhone(a.Phone),
			a.Country)
	}
	common.PrintFooter(fmt.Sprintf("%d accounts", len(accounts)), common.DefaultWidth)
}

func printTransactions(title string, txs []models.Transaction) {
	common.PrintHeader(title, common.DefaultWidth)
	for i, tx := range txs {
		isLast := i == len(txs)-1
		fmt.Printf("%s %s REF:%s %14s %-9s %s -> %s\n",
			common.BoxPrefix(isLast),
			tx.Id,
			tx.ReferenceSuffix(),
			common.FormatNovares(tx.Amount),
			common.StatusLabel(string(tx.Status)),
			tx.FromId,
			tx.ToId)
		fmt.Printf("%s   %s\n", common.BoxDetailPrefix(isLast), tx.Reason)
	}
	common.PrintFooter(fmt.Sprintf("%d transfers", len(txs)), common.DefaultWidth)
}

func parseAmount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		zap.L().Fatal("Invalid amount", zap.String("value", s))
	}
	return n
}

func requireArgs(args []string, n int) {
	if len(args) < n {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func run(ctx context.Context, l *ledger.Service, command string, args []string) error {
	switch command {
	case "members":
		accounts, err := l.ListAccounts(ctx)
		if err != nil {
			return err
		}
		printAccounts(accounts)
	case "activate":
		requireArgs(args, 1)
		a, err := l.ActivateAccount(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s is now %s\n", a.Id, common.StatusLabel(string(a.Status)))
	case "reject":
		requireArgs(args, 1)
		if err := l.RejectRegistration(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ registration %s discarded\n", args[0])
	case "remove":
		requireArgs(args, 1)
		if err := l.RemoveAccount(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ account %s removed\n", args[0])
	case "pending":
		txs, err := l.ListPendingTransactions(ctx)
		if err != nil {
			return err
		}
		printTransactions("PENDING TRANSFERS", txs)
	case "search":
		requireArgs(args, 1)
		txs, err := l.SearchTransactions(ctx, args[0])
		if err != nil {
			return err
		}
		printTransactions("TRANSFERS MATCHING "+args[0], txs)
	case "approve":
		requireArgs(args, 1)
		tx, err := l.ApproveTransaction(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s %s REF:%s\n", common.StatusLabel(string(tx.Status)), common.FormatNovares(tx.Amount), tx.ReferenceSuffix())
	case "reject-tx":
		requireArgs(args, 1)
		tx, err := l.RejectTransaction(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s REF:%s\n", common.StatusLabel(string(tx.Status)), tx.ReferenceSuffix())
	case "override":
		requireArgs(args, 2)
		a, err := l.OverrideBalance(ctx, args[0], parseAmount(args[1]))
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s balance set to %s\n", a.Id, common.FormatNovares(a.Balance))
	case "bonus":
		requireArgs(args, 3)
		a, err := l.IssueBonus(ctx, args[0], strings.Join(args[2:], " "), parseAmount(args[1]))
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s balance is now %s\n", a.Id, common.FormatNovares(a.Balance))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	userFlag := flag.String("user", "", "Administrator username (defaults to ADMIN_USERNAME)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	username := *userFlag
	if username == "" {
		username = cfg.Admin.Username
	}
	password, err := common.PromptSecret("Admin password: ")
	if err != nil {
		zap.L().Fatal("Failed to read password", zap.Error(err))
	}
	code, err := common.PromptSecret("Security code: ")
	if err != nil {
		zap.L().Fatal("Failed to read security code", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	adminCtx, err := services.AdminContext(ctx, username, password, code)
	if err != nil {
		zap.L().Fatal("Administrator sign in failed", zap.String("kind", models.Kind(err)))
	}

	command := flag.Arg(0)
	if err := run(adminCtx, services.Ledger, command, flag.Args()[1:]); err != nil {
		zap.L().Fatal("Command failed",
			zap.String("command", command),
			zap.String("kind", models.Kind(err)),
			zap.Error(err))
	}
}
