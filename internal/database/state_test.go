package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"novares-ledger-go/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	service, err := NewServiceFromDB(context.Background(), db)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func sampleState() *models.State {
	created := time.Date(2025, 12, 27, 17, 21, 3, 0, time.UTC)
	return &models.State{
		Accounts: []models.Account{
			{
				Id: "STX-00A01", Name: "Luis", LastName: "Fernando", Country: "El Salvador",
				Phone: "50370000001", Email: "luis@example.com",
				Credentials: models.Credentials{Username: "STX-00A01", PasswordHash: "hash-1"},
				Status:      models.StatusActive, Balance: 800, CreatedAt: created,
				Inbox: []models.Notification{
					{Id: "n2", Kind: models.NotificationBonus, Message: "bonus", BonusName: "Launch", Amount: 50, Timestamp: created.Add(time.Minute)},
					{Id: "n1", Kind: models.NotificationStandard, Message: "welcome", Read: true, Timestamp: created},
				},
			},
			{
				Id: "STX-00B02", Name: "Miss", LastName: "Slam", Country: "El Salvador",
				Phone: "50370000002", Email: "miss@example.com",
				Credentials: models.Credentials{PasswordHash: "hash-2"},
				Status:      models.StatusPending, Balance: 100, CreatedAt: created,
			},
		},
		Transactions: []models.Transaction{
			{Id: "t2", Reference: "00000000000000000002", Reason: "rent", FromId: "STX-00A01", FromName: "Luis Fernando",
				ToId: "STX-00B02", ToName: "Miss Slam", ToCode: "STX-00B02", Amount: 20, Status: models.TransactionPending, CreatedAt: created},
			{Id: "t1", Reference: "00000000000000000001", Reason: "gift", FromId: "STX-00A01", FromName: "Luis Fernando",
				ToId: "STX-00B02", ToName: "Miss Slam", ToCode: "STX-00B02", Amount: 200, Status: models.TransactionApproved, CreatedAt: created},
		},
	}
}

func TestLoad_EmptyDatabase(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	state, err := service.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(state.Accounts) != 0 || len(state.Transactions) != 0 {
		t.Errorf("Expected empty state, got %d accounts and %d transactions", len(state.Accounts), len(state.Transactions))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	want := sampleState()
	if err := service.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := service.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(got.Accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(got.Accounts))
	}
	// registration order survives
	if got.Accounts[0].Id != "STX-00A01" || got.Accounts[1].Id != "STX-00B02" {
		t.Errorf("Unexpected account order: %s, %s", got.Accounts[0].Id, got.Accounts[1].Id)
	}

	luis := got.Accounts[0]
	if luis.Balance != 800 || luis.Status != models.StatusActive {
		t.Errorf("Unexpected account state: balance=%d status=%s", luis.Balance, luis.Status)
	}
	if luis.Credentials != want.Accounts[0].Credentials {
		t.Errorf("Expected credentials %+v, got %+v", want.Accounts[0].Credentials, luis.Credentials)
	}
	if !luis.CreatedAt.Equal(want.Accounts[0].CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", want.Accounts[0].CreatedAt, luis.CreatedAt)
	}

	// inbox stays newest first
	if len(luis.Inbox) != 2 || luis.Inbox[0].Id != "n2" || luis.Inbox[1].Id != "n1" {
		t.Fatalf("Unexpected inbox: %+v", luis.Inbox)
	}
	bonus := luis.Inbox[0]
	if bonus.Kind != models.NotificationBonus || bonus.BonusName != "Launch" || bonus.Amount != 50 {
		t.Errorf("Bonus payload lost: %+v", bonus)
	}
	if !luis.Inbox[1].Read {
		t.Errorf("Expected read flag to survive")
	}

	if len(got.Accounts[1].Inbox) != 0 {
		t.Errorf("Expected empty inbox for pending account")
	}

	if len(got.Transactions) != 2 || got.Transactions[0].Id != "t2" {
		t.Fatalf("Expected newest transaction first, got %+v", got.Transactions)
	}
	if got.Transactions[1].Status != models.TransactionApproved || got.Transactions[1].FromName != "Luis Fernando" {
		t.Errorf("Unexpected transaction: %+v", got.Transactions[1])
	}
}

func TestSave_ReplacesPreviousState(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.Save(ctx, sampleState()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	next := sampleState()
	next.Accounts = next.Accounts[:1]
	next.Accounts[0].Balance = 10
	next.Transactions = nil
	if err := service.Save(ctx, next); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, err := service.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Accounts) != 1 || got.Accounts[0].Balance != 10 {
		t.Errorf("Expected one account with balance 10, got %+v", got.Accounts)
	}
	if len(got.Transactions) != 0 {
		t.Errorf("Expected no transactions, got %d", len(got.Transactions))
	}
}

func TestSave_ConstraintViolationKeepsPreviousState(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.Save(ctx, sampleState()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	bad := sampleState()
	bad.Accounts[1].Balance = -1
	if err := service.Save(ctx, bad); err == nil {
		t.Fatal("Expected negative balance to be rejected")
	}

	got, err := service.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Accounts) != 2 || got.Accounts[1].Balance != 100 {
		t.Errorf("Previous state should survive a failed save, got %+v", got.Accounts)
	}
}

func TestStatusTotals(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.Save(ctx, sampleState()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	count, total, err := service.StatusTotals(ctx, models.StatusActive)
	if err != nil {
		t.Fatalf("StatusTotals failed: %v", err)
	}
	if count != 1 || total != 800 {
		t.Errorf("Expected 1 active account holding 800, got %d holding %d", count, total)
	}
}

func TestSave_RollsBackOnExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	service := &Service{db: db}
	boom := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteNotifications)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteTransactions)).WillReturnError(boom)
	mock.ExpectRollback()

	err = service.Save(context.Background(), sampleState())
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped exec error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestSave_BeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	service := &Service{db: db}
	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	if err := service.Save(context.Background(), &models.State{}); err == nil {
		t.Error("Expected begin failure to surface")
	}
}
