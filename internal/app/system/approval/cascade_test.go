package approval_test

import (
	"testing"

	"go.uber.org/zap"

	cardstore "github.com/mwsociety/memberhub/internal/app/store/cards"
	memberstore "github.com/mwsociety/memberhub/internal/app/store/members"
	"github.com/mwsociety/memberhub/internal/app/system/approval"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
	"github.com/mwsociety/memberhub/internal/testutil"
)

func TestCascade_EnsureMembership_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cascade := approval.NewCascade(memberstore.New(db), cardstore.New(db), zap.NewNop())
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tx := f.CreatePendingTransaction(ctx, "TXN-CASCADE-1", "cascade@test.org")
	tx.DecidedBy = "admin-1"

	member1, card1, err := cascade.EnsureMembership(ctx, tx)
	if err != nil {
		t.Fatalf("first EnsureMembership failed: %v", err)
	}

	// Re-running converges to the same member and card.
	member2, card2, err := cascade.EnsureMembership(ctx, tx)
	if err != nil {
		t.Fatalf("second EnsureMembership failed: %v", err)
	}
	if member2.ID != member1.ID {
		t.Errorf("member changed across runs: %s -> %s", member1.ID.Hex(), member2.ID.Hex())
	}
	if card2.ID != card1.ID {
		t.Errorf("card changed across runs: %s -> %s", card1.ID.Hex(), card2.ID.Hex())
	}
}

func TestCascade_EnsureMembership_RequiresEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cascade := approval.NewCascade(memberstore.New(db), cardstore.New(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tx := models.PaymentTransaction{
		Category:  models.CategoryMembership,
		Reference: "TXN-NOEMAIL-1",
		PayerName: "No Email",
	}
	if _, _, err := cascade.EnsureMembership(ctx, tx); !apperr.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestCascade_EnsureMembership_FinalizesSelfRegistration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	members := memberstore.New(db)
	cascade := approval.NewCascade(members, cardstore.New(db), zap.NewNop())
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A self-registered member awaiting payment.
	registered, err := members.Register(ctx, models.Member{
		FullName: "Self Registered",
		Email:    "self@test.org",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !registered.IsActive {
		t.Fatal("precondition: registration should be active")
	}

	tx := f.CreatePendingTransaction(ctx, "TXN-SELF-1", "self@test.org")
	tx.DecidedBy = "admin-1"

	member, _, err := cascade.EnsureMembership(ctx, tx)
	if err != nil {
		t.Fatalf("EnsureMembership failed: %v", err)
	}
	if member.ID != registered.ID {
		t.Error("cascade should reuse the self-registered member")
	}

	got, err := members.GetByID(ctx, registered.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Error("payment approval should finalize the self-registration")
	}
	if got.MembershipNumber != registered.MembershipNumber {
		t.Errorf("membership number changed: %q -> %q", registered.MembershipNumber, got.MembershipNumber)
	}
}

func TestCascade_EnsureCard_LinksMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	members := memberstore.New(db)
	cascade := approval.NewCascade(members, cardstore.New(db), zap.NewNop())
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateMember(ctx, "Card Holder", "holder@test.org", "MWSS-M0001")

	card, issued, err := cascade.EnsureCard(ctx, member)
	if err != nil {
		t.Fatalf("EnsureCard failed: %v", err)
	}
	if !issued {
		t.Error("expected a card to be issued")
	}

	got, err := members.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CardID == nil || *got.CardID != card.ID {
		t.Error("member should be linked to the issued card")
	}

	// Second run returns the same card without issuing.
	again, issued, err := cascade.EnsureCard(ctx, got)
	if err != nil {
		t.Fatalf("second EnsureCard failed: %v", err)
	}
	if issued {
		t.Error("second run should not issue a new card")
	}
	if again.ID != card.ID {
		t.Error("second run should return the original card")
	}
}
