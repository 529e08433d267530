package services_test

import (
	"errors"
	"testing"

	"botica/internal/repos"
	"botica/internal/services"
)

func TestAuditSession_VerifyAndFinish(t *testing.T) {
	db := memdbAll(t)
	invRepo := repos.NewInventoryRepo(db)
	svc := services.NewAuditService(invRepo)

	id := svc.Start()
	if id == "" {
		t.Fatal("no session id")
	}

	if err := svc.Verify(id, services.VerificationRecord{InventoryID: 1, ActualQuantity: 48, VerifiedBy: "Carmen"}); err != nil {
		t.Fatal(err)
	}
	// re-verifying overwrites the first count
	if err := svc.Verify(id, services.VerificationRecord{InventoryID: 1, ActualQuantity: 47, VerifiedBy: "Carmen"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Verify(id, services.VerificationRecord{InventoryID: 2, ActualQuantity: 5}); err != nil {
		t.Fatal(err)
	}

	records, _, err := svc.Progress(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}

	report, err := svc.Finish(id)
	if err != nil {
		t.Fatal(err)
	}
	if report.VerifiedItems != 2 {
		t.Fatalf("want 2 verified items, got %d", report.VerifiedItems)
	}
	for _, row := range report.Rows {
		switch row.InventoryID {
		case 1:
			if row.SystemQuantity != 50 || row.Difference != -3 {
				t.Fatalf("batch 1: want system=50 diff=-3, got %+v", row)
			}
		case 2:
			if row.SystemQuantity != 5 || row.Difference != 0 {
				t.Fatalf("batch 2: want system=5 diff=0, got %+v", row)
			}
		}
	}

	// finishing discards the session
	if _, _, err := svc.Progress(id); !errors.Is(err, services.ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound after finish, got %v", err)
	}
}

func TestAuditSession_UnknownInventoryAndSession(t *testing.T) {
	db := memdbAll(t)
	svc := services.NewAuditService(repos.NewInventoryRepo(db))

	id := svc.Start()
	if err := svc.Verify(id, services.VerificationRecord{InventoryID: 999, ActualQuantity: 1}); err == nil {
		t.Fatal("unknown inventory row must fail")
	}
	if err := svc.Verify("no-such-session", services.VerificationRecord{InventoryID: 1, ActualQuantity: 1}); !errors.Is(err, services.ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Finish("no-such-session"); !errors.Is(err, services.ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}

func TestAuditSession_Cancel(t *testing.T) {
	db := memdbAll(t)
	svc := services.NewAuditService(repos.NewInventoryRepo(db))

	id := svc.Start()
	if !svc.Cancel(id) {
		t.Fatal("cancel must find the session")
	}
	if svc.Cancel(id) {
		t.Fatal("second cancel must report not found")
	}
}
