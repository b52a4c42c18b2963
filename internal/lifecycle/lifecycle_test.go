package lifecycle

import (
	"errors"
	"testing"

	"stc-compliance-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func ownerContext(captured, total int32) Context {
	return Context{
		ActorID:           "tradie-1",
		ActorRole:         domain.UserRoleTradie,
		OwnerID:           "tradie-1",
		CapturedPanels:    captured,
		TotalPanels:       total,
		SignaturePresent:  true,
		AgreementAccepted: true,
	}
}

func adminContext() Context {
	return Context{ActorID: "admin-1", ActorRole: domain.UserRoleAdmin}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	return terr.Reason
}

func TestTransition_AssignCredits(t *testing.T) {
	t.Run("Incomplete capture rejected", func(t *testing.T) {
		_, err := Transition(domain.InstallationStatusDraft, EventAssignCredits, ownerContext(9, 10))
		assert.Equal(t, ReasonIncompletePanelCapture, reasonOf(t, err))
	})

	t.Run("Complete capture succeeds", func(t *testing.T) {
		next, err := Transition(domain.InstallationStatusDraft, EventAssignCredits, ownerContext(10, 10))
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusSubmitted, next)
	})

	t.Run("Capture above declared total still satisfies guard", func(t *testing.T) {
		next, err := Transition(domain.InstallationStatusDraft, EventAssignCredits, ownerContext(11, 10))
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusSubmitted, next)
	})

	t.Run("Missing signature", func(t *testing.T) {
		tctx := ownerContext(10, 10)
		tctx.SignaturePresent = false
		_, err := Transition(domain.InstallationStatusDraft, EventAssignCredits, tctx)
		assert.Equal(t, ReasonMissingSignature, reasonOf(t, err))
	})

	t.Run("Agreement not accepted", func(t *testing.T) {
		tctx := ownerContext(10, 10)
		tctx.AgreementAccepted = false
		_, err := Transition(domain.InstallationStatusDraft, EventAssignCredits, tctx)
		assert.Equal(t, ReasonAgreementNotAccepted, reasonOf(t, err))
	})

	t.Run("Non-owner rejected even with admin role", func(t *testing.T) {
		tctx := ownerContext(10, 10)
		tctx.ActorID = "someone-else"
		tctx.ActorRole = domain.UserRoleAdmin
		_, err := Transition(domain.InstallationStatusDraft, EventAssignCredits, tctx)
		assert.Equal(t, ReasonNotOwner, reasonOf(t, err))
	})

	t.Run("Not allowed once out of draft", func(t *testing.T) {
		_, err := Transition(domain.InstallationStatusSubmitted, EventAssignCredits, ownerContext(10, 10))
		assert.Equal(t, ReasonInvalidTransition, reasonOf(t, err))
	})
}

func TestTransition_ReviewPipeline(t *testing.T) {
	t.Run("Happy path to credits claimed", func(t *testing.T) {
		admin := adminContext()

		next, err := Transition(domain.InstallationStatusSubmitted, EventStartReview, admin)
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusUnderReview, next)

		next, err = Transition(next, EventApprove, admin)
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusApproved, next)

		next, err = Transition(next, EventClaimCredits, admin)
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusCreditsClaimed, next)
	})

	t.Run("Approve and reject valid straight from submitted", func(t *testing.T) {
		next, err := Transition(domain.InstallationStatusSubmitted, EventApprove, adminContext())
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusApproved, next)

		next, err = Transition(domain.InstallationStatusSubmitted, EventReject, adminContext())
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusRejected, next)
	})

	t.Run("Non-admin rejected from every review state", func(t *testing.T) {
		tradie := Context{ActorID: "tradie-1", ActorRole: domain.UserRoleTradie}
		cases := []struct {
			from  domain.InstallationStatus
			event Event
		}{
			{domain.InstallationStatusSubmitted, EventStartReview},
			{domain.InstallationStatusSubmitted, EventApprove},
			{domain.InstallationStatusSubmitted, EventReject},
			{domain.InstallationStatusUnderReview, EventApprove},
			{domain.InstallationStatusUnderReview, EventReject},
			{domain.InstallationStatusApproved, EventClaimCredits},
		}
		for _, tc := range cases {
			_, err := Transition(tc.from, tc.event, tradie)
			assert.Equal(t, ReasonInsufficientRole, reasonOf(t, err), "%s from %s", tc.event, tc.from)
		}
	})

	t.Run("Terminal states accept nothing", func(t *testing.T) {
		events := []Event{EventAssignCredits, EventStartReview, EventApprove, EventReject, EventClaimCredits}
		for _, terminal := range []domain.InstallationStatus{domain.InstallationStatusRejected, domain.InstallationStatusCreditsClaimed} {
			for _, ev := range events {
				_, err := Transition(terminal, ev, adminContext())
				assert.Error(t, err, "%s from %s", ev, terminal)
			}
		}
	})

	t.Run("Repeated rejection fails identically", func(t *testing.T) {
		_, err1 := Transition(domain.InstallationStatusRejected, EventReject, adminContext())
		_, err2 := Transition(domain.InstallationStatusRejected, EventReject, adminContext())
		assert.Equal(t, err1.Error(), err2.Error())
		assert.Equal(t, ReasonInvalidTransition, reasonOf(t, err1))
	})

	t.Run("Unknown event", func(t *testing.T) {
		_, err := Transition(domain.InstallationStatusSubmitted, Event("escalate"), adminContext())
		assert.Equal(t, ReasonInvalidTransition, reasonOf(t, err))
	})
}
