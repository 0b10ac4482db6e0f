package cardstore_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	cardstore "github.com/mwsociety/memberhub/internal/app/store/cards"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
	"github.com/mwsociety/memberhub/internal/testutil"
)

func TestStore_CreateOrFetch_IssuesCard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateMember(ctx, "Ada Lovelace", "ada@test.org", "MWSS-M0001")

	card, created, err := store.CreateOrFetch(ctx, member)
	if err != nil {
		t.Fatalf("CreateOrFetch failed: %v", err)
	}
	if !created {
		t.Error("expected created=true for a first card")
	}
	if card.CardNumber != "MWSS-CARD-000001" {
		t.Errorf("card number: got %q, want MWSS-CARD-000001", card.CardNumber)
	}
	if card.FullName != member.FullName || card.Email != member.Email {
		t.Error("card should denormalize the member's display fields")
	}
	if !card.ValidUntil.Equal(card.ValidFrom.AddDate(1, 0, 0)) {
		t.Errorf("validity window: %v -> %v, want one year", card.ValidFrom, card.ValidUntil)
	}
}

func TestStore_CreateOrFetch_OneCardPerMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateMember(ctx, "Ada Lovelace", "ada@test.org", "MWSS-M0001")

	first, _, err := store.CreateOrFetch(ctx, member)
	if err != nil {
		t.Fatalf("first CreateOrFetch failed: %v", err)
	}

	second, created, err := store.CreateOrFetch(ctx, member)
	if err != nil {
		t.Fatalf("second CreateOrFetch failed: %v", err)
	}
	if created {
		t.Error("expected created=false for a member that has a card")
	}
	if second.ID != first.ID || second.CardNumber != first.CardNumber {
		t.Errorf("expected the original card back, got %q want %q", second.CardNumber, first.CardNumber)
	}
}

func TestStore_CreateOrFetch_ConcurrentSingleWinner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateMember(ctx, "Ada Lovelace", "ada@test.org", "MWSS-M0001")

	const n = 6
	var wg sync.WaitGroup
	cards := make([]models.MemberCard, n)
	errs := make([]error, n)
	createdCount := 0
	var mu sync.Mutex

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			card, created, err := store.CreateOrFetch(ctx, member)
			cards[i], errs[i] = card, err
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("CreateOrFetch %d failed: %v", i, errs[i])
		}
		if cards[i].CardNumber != cards[0].CardNumber {
			t.Errorf("racing callers got different cards: %q vs %q", cards[i].CardNumber, cards[0].CardNumber)
		}
	}
	if createdCount != 1 {
		t.Errorf("exactly one caller should create the card, got %d", createdCount)
	}
}

func TestStore_CreateOrFetch_NumbersAreSequential(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var last models.MemberCard
	for i, email := range []string{"a@test.org", "b@test.org", "c@test.org"} {
		member := f.CreateMember(ctx, "Member "+email, email, fmt.Sprintf("MWSS-M%04d", i+1))
		card, _, err := store.CreateOrFetch(ctx, member)
		if err != nil {
			t.Fatalf("CreateOrFetch failed: %v", err)
		}
		if !strings.HasPrefix(card.CardNumber, cardstore.CardNumberPrefix) {
			t.Errorf("card number %q missing prefix", card.CardNumber)
		}
		last = card
	}

	if last.CardNumber != "MWSS-CARD-000003" {
		t.Errorf("third card number: got %q, want MWSS-CARD-000003", last.CardNumber)
	}
}

func TestStore_FindByMemberID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.FindByMemberID(ctx, primitive.NewObjectID())
	if !apperr.IsNotFound(err) {
		t.Errorf("got %v, want not-found error", err)
	}
}
