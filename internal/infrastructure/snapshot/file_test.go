package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/store"
)

func TestFileGateway_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	gw := NewFile(path, zerolog.Nop())

	stock := 4
	data := &store.Data{
		Users:   []*domain.User{{ID: 1, Username: "ADMIN", Password: "hash", Role: domain.RoleAdmin, Name: "System Admin"}},
		Clients: []*domain.Client{{ID: 2, Name: "Alice", Loan: 150.5}},
		Products: []*domain.Product{
			{ID: 3, Name: "Rice", Price: 1000, Stock: &stock},
			{ID: 4, Name: "Delivery", Price: 200},
		},
		Transactions:  []domain.Transaction{},
		Notifications: []domain.Notification{},
	}

	if err := gw.Save(data); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := gw.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Users) != 1 || loaded.Users[0].Username != "ADMIN" {
		t.Fatalf("users not restored: %+v", loaded.Users)
	}
	if loaded.Clients[0].Loan != 150.5 {
		t.Fatalf("loan not restored: %v", loaded.Clients[0].Loan)
	}
	if loaded.Products[0].Stock == nil || *loaded.Products[0].Stock != 4 {
		t.Fatalf("tracked stock not restored: %+v", loaded.Products[0])
	}
	if loaded.Products[1].Stock != nil {
		t.Fatalf("untracked product gained a stock value: %+v", loaded.Products[1])
	}
}

func TestFileGateway_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	gw := NewFile(path, zerolog.Nop())

	if err := gw.Save(&store.Data{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
}

func TestFileGateway_LoadMissingFile(t *testing.T) {
	gw := NewFile(filepath.Join(t.TempDir(), "absent.json"), zerolog.Nop())
	if _, err := gw.Load(); err == nil {
		t.Fatalf("expected error for a missing snapshot")
	}
}

func TestFileGateway_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	gw := NewFile(path, zerolog.Nop())
	if _, err := gw.Load(); err == nil {
		t.Fatalf("expected error for a corrupt snapshot")
	}
}

func TestFileGateway_OverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	gw := NewFile(path, zerolog.Nop())

	if err := gw.Save(&store.Data{Clients: []*domain.Client{{ID: 1, Name: "Alice"}}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := gw.Save(&store.Data{Clients: []*domain.Client{{ID: 2, Name: "Bob"}}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := gw.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Clients) != 1 || loaded.Clients[0].Name != "Bob" {
		t.Fatalf("second save not visible: %+v", loaded.Clients)
	}
}

func TestFileGateway_Ping(t *testing.T) {
	dir := t.TempDir()
	gw := NewFile(filepath.Join(dir, "data.json"), zerolog.Nop())
	if err := gw.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}

	gone := NewFile(filepath.Join(dir, "missing", "data.json"), zerolog.Nop())
	if err := gone.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
