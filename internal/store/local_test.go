package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func item(pk, sk string, extra ...any) Item {
	it := Item{"PK": pk, "SK": sk}
	for i := 0; i+1 < len(extra); i += 2 {
		it[extra[i].(string)] = extra[i+1]
	}
	return it
}

func TestLocalTable_PutGet(t *testing.T) {
	tbl := NewLocalTable()
	ctx := context.Background()

	if err := tbl.Put(ctx, item("USER#a@x.com", "PROFILE", "username", "alice"), false); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := tbl.Get(ctx, Key{PK: "USER#a@x.com", SK: "PROFILE"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got["username"] != "alice" {
		t.Errorf("username = %v, want alice", got["username"])
	}

	if _, err := tbl.Get(ctx, Key{PK: "USER#missing", SK: "PROFILE"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLocalTable_PutRequireAbsent(t *testing.T) {
	tbl := NewLocalTable()
	ctx := context.Background()

	if err := tbl.Put(ctx, item("USER#a@x.com", "PROFILE", "username", "alice"), true); err != nil {
		t.Fatalf("first Put() error = %v", err)
	}
	err := tbl.Put(ctx, item("USER#a@x.com", "PROFILE", "username", "mallory"), true)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("second Put() error = %v, want ErrConflict", err)
	}

	// losing writer must not alter the stored item
	got, err := tbl.Get(ctx, Key{PK: "USER#a@x.com", SK: "PROFILE"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got["username"] != "alice" {
		t.Errorf("username = %v, want alice after rejected conditional put", got["username"])
	}
}

func TestLocalTable_PutOverwrite(t *testing.T) {
	tbl := NewLocalTable()
	ctx := context.Background()

	if err := tbl.Put(ctx, item("USER#a@x.com", "HOLDING#ACME", "quantity", 5), false); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := tbl.Put(ctx, item("USER#a@x.com", "HOLDING#ACME", "quantity", 8), false); err != nil {
		t.Fatalf("overwrite Put() error = %v", err)
	}
	got, err := tbl.Get(ctx, Key{PK: "USER#a@x.com", SK: "HOLDING#ACME"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got["quantity"] != 8 {
		t.Errorf("quantity = %v, want 8", got["quantity"])
	}
	n, _ := tbl.Count(ctx)
	if n != 1 {
		t.Errorf("Count() = %d, want 1 after overwrite", n)
	}
}

func TestLocalTable_DeleteIdempotent(t *testing.T) {
	tbl := NewLocalTable()
	ctx := context.Background()
	key := Key{PK: "STOCK#ACME", SK: "META"}

	if err := tbl.Delete(ctx, key); err != nil {
		t.Fatalf("Delete(absent) error = %v", err)
	}
	if err := tbl.Put(ctx, item(key.PK, key.SK), false); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := tbl.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := tbl.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestLocalTable_QueryPrefix(t *testing.T) {
	tbl := NewLocalTable()
	ctx := context.Background()

	puts := []Item{
		item("USER#a@x.com", "PROFILE"),
		item("USER#a@x.com", "HOLDING#ACME"),
		item("USER#a@x.com", "HOLDING#GLOBX"),
		item("USER#a@x.com", "TX#100#t1"),
		item("USER#b@x.com", "HOLDING#ACME"),
	}
	for _, it := range puts {
		if err := tbl.Put(ctx, it, false); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	tests := []struct {
		pk       string
		skPrefix string
		want     int
	}{
		{"USER#a@x.com", "HOLDING#", 2},
		{"USER#a@x.com", "TX#", 1},
		{"USER#a@x.com", "", 4},
		{"USER#b@x.com", "HOLDING#", 1},
		{"USER#c@x.com", "HOLDING#", 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.pk, tt.skPrefix), func(t *testing.T) {
			got, err := tbl.QueryPrefix(ctx, tt.pk, tt.skPrefix)
			if err != nil {
				t.Fatalf("QueryPrefix() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("QueryPrefix() returned %d items, want %d", len(got), tt.want)
			}
		})
	}
}

func TestLocalTable_ScanFilter(t *testing.T) {
	tbl := NewLocalTable()
	ctx := context.Background()

	puts := []Item{
		item("USER#a@x.com", "PROFILE"),
		item("USER#b@x.com", "PROFILE"),
		item("USER#a@x.com", "HOLDING#ACME"),
		item("STOCK#ACME", "META"),
		item("STOCK#GLOBX", "META"),
	}
	for _, it := range puts {
		if err := tbl.Put(ctx, it, false); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	profiles, err := tbl.Scan(ctx, ScanFilter{SKEquals: "PROFILE"})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("profiles = %d, want 2", len(profiles))
	}

	stocks, err := tbl.Scan(ctx, ScanFilter{PKPrefix: "STOCK#", SKEquals: "META"})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(stocks) != 2 {
		t.Errorf("stocks = %d, want 2", len(stocks))
	}

	all, err := tbl.Scan(ctx, ScanFilter{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(all) != 5 {
		t.Errorf("all = %d, want 5", len(all))
	}

	n, err := tbl.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 5 {
		t.Errorf("Count() = %d, want 5", n)
	}
}
