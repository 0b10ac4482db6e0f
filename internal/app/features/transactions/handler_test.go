package transactions_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	transactionsfeature "github.com/mwsociety/memberhub/internal/app/features/transactions"
	"github.com/mwsociety/memberhub/internal/app/store/audit"
	cardstore "github.com/mwsociety/memberhub/internal/app/store/cards"
	memberstore "github.com/mwsociety/memberhub/internal/app/store/members"
	studentstore "github.com/mwsociety/memberhub/internal/app/store/students"
	transactionstore "github.com/mwsociety/memberhub/internal/app/store/transactions"
	"github.com/mwsociety/memberhub/internal/app/system/approval"
	"github.com/mwsociety/memberhub/internal/app/system/auditlog"
	"github.com/mwsociety/memberhub/internal/app/system/auth"
	"github.com/mwsociety/memberhub/internal/app/system/notify"
	"github.com/mwsociety/memberhub/internal/domain/models"
	"github.com/mwsociety/memberhub/internal/testutil"
)

// newServer wires the transactions feature the way bootstrap does and
// returns the router plus a valid admin bearer token.
func newServer(t *testing.T, db *mongo.Database) (http.Handler, string) {
	t.Helper()
	log := zap.NewNop()

	cascade := approval.NewCascade(memberstore.New(db), cardstore.New(db), log)
	dispatcher := notify.New(log, 16, 1)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)
	engine := approval.NewEngine(transactionstore.New(db), studentstore.New(db), cascade, dispatcher, log)

	auditLog := auditlog.New(audit.New(db), log, auditlog.Config{Auth: "db", Decision: "db"})
	tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)

	h := transactionsfeature.NewHandler(db, engine, auditLog, log)

	token, _, err := tokens.Issue(primitive.NewObjectID().Hex(), "admin@test.org", "admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return transactionsfeature.Routes(h, tokens), token
}

func doJSON(t *testing.T, srv http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func TestSubmit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, _ := newServer(t, db)

	w := doJSON(t, srv, "POST", "/", "", `{
		"category": "membership",
		"reference": "TXN-HTTP-1",
		"payer_name": "Ada Lovelace",
		"payer_email": "ada@test.org",
		"amount": 500
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var tx models.PaymentTransaction
	if err := json.Unmarshal(w.Body.Bytes(), &tx); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if tx.Status != models.TxnPending {
		t.Errorf("status: got %q, want pending", tx.Status)
	}
	if tx.ID.IsZero() {
		t.Error("expected an id")
	}
}

func TestSubmit_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, _ := newServer(t, db)

	tests := []struct {
		name string
		body string
	}{
		{"unknown category", `{"category":"bribery","reference":"T1","payer_name":"A","amount":5}`},
		{"missing reference", `{"category":"donation","payer_name":"A","amount":5}`},
		{"zero amount", `{"category":"donation","reference":"T2","payer_name":"A","amount":0}`},
		{"membership without email", `{"category":"membership","reference":"T3","payer_name":"A","amount":5}`},
		{"bad email", `{"category":"membership","reference":"T4","payer_name":"A","payer_email":"not-an-email","amount":5}`},
		{"unknown field", `{"category":"donation","reference":"T5","payer_name":"A","amount":5,"extra":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, srv, "POST", "/", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestSubmit_DuplicateReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, _ := newServer(t, db)

	body := `{"category":"donation","reference":"TXN-HTTP-DUP","payer_name":"A","amount":5}`
	if w := doJSON(t, srv, "POST", "/", "", body); w.Code != http.StatusCreated {
		t.Fatalf("first submit: got %d", w.Code)
	}
	if w := doJSON(t, srv, "POST", "/", "", body); w.Code != http.StatusBadRequest {
		t.Errorf("duplicate submit: got %d, want 400", w.Code)
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, _ := newServer(t, db)

	for _, path := range []string{"/", "/export.csv"} {
		r := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: got %d, want 401", path, w.Code)
		}
	}
}

func TestApprove_ProvisionsMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, token := newServer(t, db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tx := f.CreatePendingTransaction(ctx, "TXN-HTTP-APPROVE", "approve@test.org")

	w := doJSON(t, srv, "POST", "/"+tx.ID.Hex()+"/approve", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Transaction models.PaymentTransaction `json:"transaction"`
		Warning     string                    `json:"warning"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Transaction.Status != models.TxnApproved {
		t.Errorf("status: got %q", resp.Transaction.Status)
	}
	if resp.Warning != "" {
		t.Errorf("unexpected warning: %q", resp.Warning)
	}

	if _, err := memberstore.New(db).FindByEmail(ctx, "approve@test.org"); err != nil {
		t.Errorf("member should have been provisioned: %v", err)
	}

	// The decision is in the audit trail.
	events, err := audit.New(db).GetByTransaction(ctx, tx.ID, 10)
	if err != nil {
		t.Fatalf("audit query failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != audit.EventTransactionApproved {
		t.Errorf("audit events: %+v", events)
	}
}

func TestApprove_Twice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, token := newServer(t, db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tx := f.CreatePendingTransaction(ctx, "TXN-HTTP-TWICE", "twice@test.org")

	if w := doJSON(t, srv, "POST", "/"+tx.ID.Hex()+"/approve", token, ""); w.Code != http.StatusOK {
		t.Fatalf("first approve: got %d", w.Code)
	}
	if w := doJSON(t, srv, "POST", "/"+tx.ID.Hex()+"/approve", token, ""); w.Code != http.StatusConflict {
		t.Errorf("second approve: got %d, want 409", w.Code)
	}
}

func TestApprove_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, token := newServer(t, db)

	if w := doJSON(t, srv, "POST", "/"+primitive.NewObjectID().Hex()+"/approve", token, ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", w.Code)
	}
	if w := doJSON(t, srv, "POST", "/not-a-hex-id/approve", token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: got %d, want 400", w.Code)
	}
}

func TestReject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, token := newServer(t, db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tx := f.CreatePendingTransaction(ctx, "TXN-HTTP-REJECT", "reject@test.org")

	w := doJSON(t, srv, "POST", "/"+tx.ID.Hex()+"/reject", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Transaction models.PaymentTransaction `json:"transaction"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Transaction.Status != models.TxnRejected {
		t.Errorf("status: got %q", resp.Transaction.Status)
	}
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, token := newServer(t, db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreatePendingTransaction(ctx, "TXN-HTTP-LIST-1", "l1@test.org")
	f.CreatePendingTransaction(ctx, "TXN-HTTP-LIST-2", "l2@test.org")

	w := doJSON(t, srv, "GET", "/", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp struct {
		Transactions []models.PaymentTransaction `json:"transactions"`
		Count        int                         `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count: got %d, want 2", resp.Count)
	}

	if w := doJSON(t, srv, "GET", "/?status=bogus", token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bogus status: got %d, want 400", w.Code)
	}
	if w := doJSON(t, srv, "GET", "/?limit=0", token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("limit 0: got %d, want 400", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv, token := newServer(t, db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreatePendingTransaction(ctx, "TXN-HTTP-CSV-1", "csv@test.org")

	w := doJSON(t, srv, "GET", "/export.csv", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "TXN-HTTP-CSV-1") {
		t.Errorf("csv missing transaction row: %q", body)
	}
	if !strings.Contains(body, "reference") {
		t.Error("csv missing header row")
	}

	if w := doJSON(t, srv, "GET", "/export.csv?from=yesterday", token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad from filter: got %d, want 400", w.Code)
	}
}
