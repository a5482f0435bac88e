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
	"errors"
	"flag"
	"fmt"
	"time"

	"novares-ledger-go/internal/common"
	"novares-ledger-go/internal/config"
	"novares-ledger-go/internal/models"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	nameFlag := flag.String("name", "", "First name (required)")
	lastNameFlag := flag.String("last-name", "", "Last name (required)")
	countryFlag := flag.String("country", "", "Country of residence (required)")
	phoneFlag := flag.String("phone", "", "Phone number (required)")
	emailFlag := flag.String("email", "", "Email address (required)")
	flag.Parse()

	if *nameFlag == "" || *lastNameFlag == "" || *countryFlag == "" || *phoneFlag == "" || *emailFlag == "" {
		zap.L().Fatal("All flags are required: --name, --last-name, --country, --phone and --email")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	window, err := common.ParseAdmissionWindow(cfg.Admission.Open, cfg.Admission.Close)
	if err != nil {
		zap.L().Fatal("Invalid admission window", zap.Error(err))
	}
	if !window.Allows(time.Now()) {
		fmt.Printf("Registrations are only accepted between %s\n", window)
		return
	}

	password, err := common.PromptSecret("Password: ")
	if err != nil {
		zap.L().Fatal("Failed to read password", zap.Error(err))
	}
	confirm, err := common.PromptSecret("Confirm password: ")
	if err != nil {
		zap.L().Fatal("Failed to read password", zap.Error(err))
	}
	if password != confirm {
		zap.L().Fatal("Passwords do not match")
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	account, err := services.Ledger.RegisterAccount(ctx, models.Profile{
		Name:     *nameFlag,
		LastName: *lastNameFlag,
		Country:  *countryFlag,
		Phone:    *phoneFlag,
		Email:    *emailFlag,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateIdentity) {
			zap.L().Fatal("An account already exists with this email", zap.String("email", *emailFlag))
		}
		zap.L().Fatal("Failed to register account", zap.Error(err))
	}

	fmt.Println()
	common.PrintHeader("REGISTRATION RECEIVED", common.DefaultWidth)
	fmt.Printf("Member code: %s\n", account.Id)
	fmt.Printf("Name:        %s\n", account.DisplayName())
	fmt.Printf("Email:       %s\n", account.Email)
	fmt.Printf("Phone:       %s\n", common.MaskPhone(account.Phone))
	fmt.Printf("Status:      %s\n", common.StatusLabel(string(account.Status)))
	fmt.Printf("Balance:     %s\n", common.FormatNovares(account.Balance))
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println("An administrator must activate the account before you can sign in.")
}
