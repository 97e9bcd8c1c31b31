package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func floatp(f float64) *float64 { return &f }

func TestSQLStoreCreateBooking(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	notes := "hem the trousers"
	when := time.Date(2026, 11, 3, 14, 0, 0, 0, time.UTC)
	created, err := store.CreateBooking(ctx, &domain.Booking{
		ID:          "b1",
		CustomerID:  "c1",
		DesignerID:  "d1",
		ServiceType: "alteration",
		Notes:       &notes,
		BookingDate: when,
		Status:      domain.BookingStatusPending,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if created.Status != domain.BookingStatusPending || created.Notes == nil || *created.Notes != notes {
		t.Fatalf("unexpected booking: %+v", created)
	}
	if !created.BookingDate.Equal(when) {
		t.Fatalf("booking date mismatch: got %v want %v", created.BookingDate, when)
	}

	if _, err := store.CreateBooking(ctx, &domain.Booking{ID: "b1", CustomerID: "c1", DesignerID: "d1", ServiceType: "x", BookingDate: when, Status: domain.BookingStatusPending, CreatedAt: time.Now()}); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}
}

func TestSQLStoreGetBookingMissing(t *testing.T) {
	store := newTestStore(t)
	got, err := store.GetBooking(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil booking, got %+v", got)
	}
}

func TestSQLStoreUpsertCustomerProfile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := &domain.CustomerProfile{UserID: "u1", Height: 170, Weight: 65, Age: 30, Chest: floatp(90), UpdatedAt: time.Now()}
	if _, err := store.UpsertCustomerProfile(ctx, first); err != nil {
		t.Fatalf("UpsertCustomerProfile failed: %v", err)
	}

	second := &domain.CustomerProfile{UserID: "u1", Height: 171, Weight: 64, Age: 31, UpdatedAt: time.Now()}
	got, err := store.UpsertCustomerProfile(ctx, second)
	if err != nil {
		t.Fatalf("UpsertCustomerProfile failed: %v", err)
	}
	if got.Height != 171 || got.Age != 31 || got.Chest != nil {
		t.Fatalf("second upsert did not win: %+v", got)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM profile_measurements`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestSQLStoreSearchDesigners(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	designers := []domain.DesignerProfile{
		{UserID: "d1", Height: 160, Weight: 55, Age: 40, Specialization: "Bridal", Location: "Lagos", UpdatedAt: base},
		{UserID: "d2", Height: 180, Weight: 75, Age: 35, Specialization: "Streetwear", Location: "London", UpdatedAt: base.Add(time.Minute)},
		{UserID: "d3", Height: 170, Weight: 60, Age: 28, Specialization: "Bridal couture", Location: "London", UpdatedAt: base.Add(2 * time.Minute)},
	}
	for i := range designers {
		if _, err := store.UpsertDesignerProfile(ctx, &designers[i]); err != nil {
			t.Fatalf("UpsertDesignerProfile failed: %v", err)
		}
	}

	all, err := store.SearchDesigners(ctx, domain.DesignerFilter{})
	if err != nil {
		t.Fatalf("SearchDesigners failed: %v", err)
	}
	if len(all) != 3 || all[0].UserID != "d3" {
		t.Fatalf("unexpected order: %+v", all)
	}

	bridal, err := store.SearchDesigners(ctx, domain.DesignerFilter{Query: "BRIDAL"})
	if err != nil {
		t.Fatalf("SearchDesigners failed: %v", err)
	}
	if len(bridal) != 2 {
		t.Fatalf("expected 2 bridal designers, got %d", len(bridal))
	}

	london, err := store.SearchDesigners(ctx, domain.DesignerFilter{Location: "london", Specialization: "bridal"})
	if err != nil {
		t.Fatalf("SearchDesigners failed: %v", err)
	}
	if len(london) != 1 || london[0].UserID != "d3" {
		t.Fatalf("unexpected result: %+v", london)
	}

	limited, err := store.SearchDesigners(ctx, domain.DesignerFilter{Limit: 1})
	if err != nil {
		t.Fatalf("SearchDesigners failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestRebindPostgres(t *testing.T) {
	s := &SQLStore{driver: driverPostgres}
	if got := s.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Fatalf("unexpected rebind: %s", got)
	}
	s.driver = driverSQLite
	if got := s.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("sqlite query should be unchanged: %s", got)
	}
}

func TestDriverFor(t *testing.T) {
	cases := map[string]string{
		":memory:":                          driverSQLite,
		"file:x.db?mode=rwc":                driverSQLite,
		"postgres://u:p@localhost/db":       driverPostgres,
		"postgresql://u:p@localhost/db?x=1": driverPostgres,
	}
	for dsn, want := range cases {
		if got := DriverFor(dsn); got != want {
			t.Fatalf("DriverFor(%q) = %s, want %s", dsn, got, want)
		}
	}
}

func seedBooking(t *testing.T, store *SQLStore, id, designerID string, created time.Time) {
	t.Helper()
	_, err := store.CreateBooking(context.Background(), &domain.Booking{
		ID:          id,
		CustomerID:  "c1",
		DesignerID:  designerID,
		ServiceType: "fitting",
		BookingDate: created.Add(48 * time.Hour),
		Status:      domain.BookingStatusPending,
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("CreateBooking %s failed: %v", id, err)
	}
}

func TestSQLStoreListBookingsByDesigner(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	seedBooking(t, store, "old", "d1", base)
	seedBooking(t, store, "new", "d1", base.Add(time.Hour))
	seedBooking(t, store, "other", "d2", base.Add(2*time.Hour))

	got, err := store.ListBookingsByDesigner(context.Background(), "d1")
	if err != nil {
		t.Fatalf("ListBookingsByDesigner failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("unexpected bookings: %+v", got)
	}

	none, err := store.ListBookingsByDesigner(context.Background(), "d9")
	if err != nil {
		t.Fatalf("ListBookingsByDesigner failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %+v", none)
	}
}

func TestSQLStoreUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedBooking(t, store, "b1", "d1", time.Now())

	at := time.Date(2026, 10, 2, 12, 0, 0, 0, time.UTC)
	got, err := store.UpdateBookingStatus(ctx, "b1", domain.BookingStatusPending, domain.BookingStatusAccepted, at)
	if err != nil {
		t.Fatalf("UpdateBookingStatus failed: %v", err)
	}
	if got == nil || got.Status != domain.BookingStatusAccepted {
		t.Fatalf("unexpected booking: %+v", got)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(at) {
		t.Fatalf("updated_at not stored: %+v", got.UpdatedAt)
	}

	// The row is no longer pending, so a second pending->rejected is a miss.
	stale, err := store.UpdateBookingStatus(ctx, "b1", domain.BookingStatusPending, domain.BookingStatusRejected, at)
	if err != nil {
		t.Fatalf("UpdateBookingStatus failed: %v", err)
	}
	if stale != nil {
		t.Fatalf("expected no update, got %+v", stale)
	}

	missing, err := store.UpdateBookingStatus(ctx, "nope", domain.BookingStatusPending, domain.BookingStatusAccepted, at)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing booking, got %+v, %v", missing, err)
	}
}

func TestSQLStoreSearchDesignersLiteralWildcards(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i, spec := range []string{"Bridal", "100% silk", "made_to_measure", `back\slash`} {
		d := domain.DesignerProfile{UserID: fmt.Sprintf("d%d", i), Height: 170, Weight: 60, Age: 30, Specialization: spec, UpdatedAt: time.Now()}
		if _, err := store.UpsertDesignerProfile(ctx, &d); err != nil {
			t.Fatalf("UpsertDesignerProfile failed: %v", err)
		}
	}

	cases := map[string]int{
		"%":       1,
		"_":       1,
		"0% s":    1,
		"e_t":     1,
		`\`:       1,
		"bri_al":  0,
		"%bridal": 0,
	}
	for q, want := range cases {
		got, err := store.SearchDesigners(ctx, domain.DesignerFilter{Query: q})
		if err != nil {
			t.Fatalf("SearchDesigners(%q) failed: %v", q, err)
		}
		if len(got) != want {
			t.Fatalf("SearchDesigners(%q) = %d results, want %d", q, len(got), want)
		}
	}
}

func TestSQLStoreSearchDesignersCapsLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < maxDesignerLimit+5; i++ {
		d := domain.DesignerProfile{UserID: fmt.Sprintf("d%03d", i), Height: 170, Weight: 60, Age: 30, UpdatedAt: time.Now()}
		if _, err := store.UpsertDesignerProfile(ctx, &d); err != nil {
			t.Fatalf("UpsertDesignerProfile failed: %v", err)
		}
	}

	got, err := store.SearchDesigners(ctx, domain.DesignerFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("SearchDesigners failed: %v", err)
	}
	if len(got) != maxDesignerLimit {
		t.Fatalf("expected %d designers, got %d", maxDesignerLimit, len(got))
	}
}
