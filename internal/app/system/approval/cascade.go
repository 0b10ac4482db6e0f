// internal/app/system/approval/cascade.go
package approval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/metrics"
	cardstore "github.com/mwsociety/memberhub/internal/app/store/cards"
	memberstore "github.com/mwsociety/memberhub/internal/app/store/members"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// Cascade idempotently provisions the resources an approved membership
// payment entitles the payer to: a Member record and its identity card.
type Cascade struct {
	members *memberstore.Store
	cards   *cardstore.Store
	log     *zap.Logger
}

// NewCascade constructs the provisioning cascade.
func NewCascade(members *memberstore.Store, cards *cardstore.Store, log *zap.Logger) *Cascade {
	return &Cascade{members: members, cards: cards, log: log}
}

// EnsureMembership converges to exactly one Member and one MemberCard for
// the transaction's payer email, no matter how many times it runs or how
// many concurrent approvals race for the same email. Each step is
// create-or-fetch under a unique index, so re-running after a partial
// failure completes whatever is missing and changes nothing else.
func (c *Cascade) EnsureMembership(ctx context.Context, tx models.PaymentTransaction) (models.Member, models.MemberCard, error) {
	if tx.PayerEmail == "" {
		return models.Member{}, models.MemberCard{}, apperr.Validation("membership transaction %s has no payer email", tx.Reference)
	}

	now := time.Now().UTC()
	until := now.AddDate(1, 0, 0)
	candidate := models.Member{
		FullName:    tx.PayerName,
		Email:       tx.PayerEmail,
		Phone:       tx.PayerPhone,
		Status:      models.MemberApproved,
		IsVerified:  true,
		IsActive:    false, // born finalized; never subject to the sweep
		MemberSince: &now,
		MemberUntil: &until,
		ApprovedBy:  tx.DecidedBy,
	}

	member, created, err := c.members.CreateOrFetch(ctx, candidate)
	if err != nil {
		return models.Member{}, models.MemberCard{}, err
	}
	if created {
		metrics.ProvisionedMembersTotal.Inc()
		c.log.Info("member provisioned",
			zap.String("member_id", member.ID.Hex()),
			zap.String("membership_number", member.MembershipNumber),
			zap.String("transaction_id", tx.ID.Hex()))
	} else if member.IsActive {
		// A self-registered signup just paid: finalize it so the sweeper
		// leaves it alone.
		if err := c.members.Finalize(ctx, member.ID, tx.DecidedBy); err != nil {
			return models.Member{}, models.MemberCard{}, err
		}
		member.IsActive = false
		member.Status = models.MemberApproved
		member.IsVerified = true
	}

	card, issued, err := c.EnsureCard(ctx, member)
	if err != nil {
		return member, models.MemberCard{}, err
	}
	if issued {
		c.log.Info("card issued",
			zap.String("member_id", member.ID.Hex()),
			zap.String("card_number", card.CardNumber))
	}
	return member, card, nil
}

// EnsureCard issues the member's identity card if it does not exist yet
// and links it back onto the member. The admin "generate card" action and
// the cascade both land here, so the two paths cannot disagree about "at
// most one card per member". The bool result reports whether a card was
// newly issued.
func (c *Cascade) EnsureCard(ctx context.Context, member models.Member) (models.MemberCard, bool, error) {
	card, created, err := c.cards.CreateOrFetch(ctx, member)
	if err != nil {
		return models.MemberCard{}, false, err
	}
	if created {
		metrics.ProvisionedCardsTotal.Inc()
	}
	// Re-linking an already linked card is harmless; skipping the write
	// when the member already points at this card saves a round trip on
	// the hot retry path.
	if member.CardID == nil || *member.CardID != card.ID {
		if err := c.members.LinkCard(ctx, member.ID, card.ID); err != nil {
			return card, created, err
		}
	}
	return card, created, nil
}
