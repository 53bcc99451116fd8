package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"paisa/internal/core"
	"paisa/internal/ledger"
)

type fakeService struct {
	txs       []core.Transaction
	createErr error
	deleted   []string
}

func (f *fakeService) Create(ctx context.Context, tx core.Transaction) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	tx.ID = uuid.NewString()
	f.txs = append([]core.Transaction{tx}, f.txs...)
	return tx.ID, nil
}

func (f *fakeService) List(ctx context.Context) ([]core.Transaction, error) {
	return f.txs, nil
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	for i, tx := range f.txs {
		if tx.ID == id {
			f.txs = append(f.txs[:i], f.txs[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func seedTx(typ core.TxType, mode core.Mode, cents int64, category string) core.Transaction {
	return core.Transaction{
		ID:        uuid.NewString(),
		Amount:    core.Money{Cents: cents},
		Category:  category,
		Mode:      mode,
		Type:      typ,
		CreatedAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func newTestServer(t *testing.T, svc TransactionService) *Server {
	t.Helper()
	srv := NewServer(":0", svc)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "paisa") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestDashboardOverview(t *testing.T) {
	svc := &fakeService{txs: []core.Transaction{
		seedTx(core.TypeIncome, core.ModeCash, 10000, "Allowance"),
		seedTx(core.TypeExpense, core.ModeCash, 4000, "Food Essential"),
		seedTx(core.TypeExpense, core.ModeOnline, 2500, core.CategoryUnknown),
	}}
	srv := newTestServer(t, svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/dashboard", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Least to most spent", "Unclassified expenses", "Food Essential"} {
		if !strings.Contains(body, want) {
			t.Fatalf("overview missing %q", want)
		}
	}
}

func TestDashboardWalletTab(t *testing.T) {
	svc := &fakeService{txs: []core.Transaction{
		seedTx(core.TypeIncome, core.ModeCash, 10000, "Allowance"),
		seedTx(core.TypeExpense, core.ModeCash, 4000, "Travel"),
		seedTx(core.TypeExpense, core.ModeOnline, 9999, "Shopping"),
	}}
	srv := newTestServer(t, svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/dashboard?tab=cash", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	body := rr.Body.String()
	// Cash wallet: income 100, spent 40, so 60 left and 40% used.
	for _, want := range []string{"₹60.00", "₹40.00", "40%"} {
		if !strings.Contains(body, want) {
			t.Fatalf("cash tab missing %q in body", want)
		}
	}
	if strings.Contains(body, "Shopping") {
		t.Fatal("online transaction leaked into cash tab")
	}
}

func TestCreateTransaction(t *testing.T) {
	post := func(srv *Server, form string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		srv.Handler.ServeHTTP(rr, req)
		return rr
	}

	t.Run("wrong method", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rr.Code)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		svc := &fakeService{}
		srv := newTestServer(t, svc)
		rr := post(srv, "amount=abc&category=Travel&mode=cash&type=expense")
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
		if len(svc.txs) != 0 {
			t.Fatal("invalid transaction reached the store")
		}
	})

	t.Run("missing category", func(t *testing.T) {
		svc := &fakeService{}
		srv := newTestServer(t, svc)
		rr := post(srv, "amount=12.50&category=&mode=cash&type=expense")
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "category") {
			t.Fatalf("expected category in error, got %s", rr.Body.String())
		}
		if len(svc.txs) != 0 {
			t.Fatal("invalid transaction reached the store")
		}
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{}
		srv := newTestServer(t, svc)
		rr := post(srv, "amount=12.50&category=Travel&mode=cash&type=expense&remarks=bus")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if !strings.Contains(rr.Body.String(), "success") {
			t.Fatalf("expected success fragment: %s", rr.Body.String())
		}
		if rr.Header().Get("HX-Trigger") == "" {
			t.Fatal("expected HX-Trigger header")
		}
		if len(svc.txs) != 1 || svc.txs[0].Amount.Cents != 1250 {
			t.Fatalf("unexpected stored transactions: %+v", svc.txs)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	existing := seedTx(core.TypeExpense, core.ModeOnline, 500, "Travel")
	svc := &fakeService{txs: []core.Transaction{existing}}
	srv := newTestServer(t, svc)

	post := func(form string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transactions/delete", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		srv.Handler.ServeHTTP(rr, req)
		return rr
	}

	rr := post("id=no-such-id")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rr.Code)
	}
	if len(svc.txs) != 1 {
		t.Fatal("failed delete must leave the store unchanged")
	}

	rr = post("id=" + existing.ID)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(svc.txs) != 0 {
		t.Fatal("expected transaction removed")
	}
}

func TestChartEndpoints(t *testing.T) {
	svc := &fakeService{txs: []core.Transaction{
		seedTx(core.TypeExpense, core.ModeCash, 4000, "Travel"),
		seedTx(core.TypeExpense, core.ModeOnline, 6000, "Shopping"),
	}}
	srv := newTestServer(t, svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/charts/mode-split.png", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("mode-split status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}

	// With no transactions there is nothing to draw.
	empty := newTestServer(t, &fakeService{})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/charts/mode-split.png", nil)
	empty.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty data, got %d", rr.Code)
	}
}

func TestMutationInvalidatesListCache(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(t, svc)

	// Warm the cache with the empty list.
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/dashboard", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("amount=5&category=Travel&mode=cash&type=expense"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("create status=%d", rr.Code)
	}

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/dashboard?tab=cash", nil))
	if !strings.Contains(rr.Body.String(), "Travel") {
		t.Fatal("dashboard still serving stale cached list after create")
	}
}
