// Package lifecycle is the installation status state machine:
//
//	draft -> submitted -> under_review -> approved -> credits_claimed
//	                   \-> rejected (also reachable from under_review)
//
// rejected and credits_claimed are terminal. There is no edge back to draft
// and no resubmission edge out of rejected: a rejected installation stays
// rejected and a new installation must be created instead.
package lifecycle

import (
	"fmt"

	"stc-compliance-backend/internal/domain"
)

type Event string

const (
	// EventAssignCredits is the tradie signing the rights assignment
	// agreement. It requires 100% panel capture plus a signature and an
	// accepted agreement, and moves the installation to submitted.
	EventAssignCredits Event = "assign_credits"

	EventStartReview  Event = "start_review"
	EventApprove      Event = "approve"
	EventReject       Event = "reject"
	EventClaimCredits Event = "claim_credits"
)

type Reason string

const (
	ReasonInvalidTransition      Reason = "InvalidTransition"
	ReasonIncompletePanelCapture Reason = "IncompletePanelCapture"
	ReasonMissingSignature       Reason = "MissingSignature"
	ReasonAgreementNotAccepted   Reason = "AgreementNotAccepted"
	ReasonInsufficientRole       Reason = "InsufficientRole"
	ReasonNotOwner               Reason = "NotOwner"
)

// TransitionError identifies the attempted event and the guard that failed.
type TransitionError struct {
	Event  Event
	From   domain.InstallationStatus
	Reason Reason
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition not allowed: event %q from status %q (%s)", e.Event, e.From, e.Reason)
}

// Context carries everything the guards need. The acting principal is passed
// in explicitly; the state machine never resolves identity itself.
type Context struct {
	ActorID   string
	ActorRole domain.UserRole

	// OwnerID is the tradie who owns the installation.
	OwnerID string

	// Panel capture progress, read by the assign-credits guard.
	CapturedPanels int32
	TotalPanels    int32

	SignaturePresent  bool
	AgreementAccepted bool
}

// sourceStates lists the statuses each event may fire from.
var sourceStates = map[Event][]domain.InstallationStatus{
	EventAssignCredits: {domain.InstallationStatusDraft},
	EventStartReview:   {domain.InstallationStatusSubmitted},
	EventApprove:       {domain.InstallationStatusSubmitted, domain.InstallationStatusUnderReview},
	EventReject:        {domain.InstallationStatusSubmitted, domain.InstallationStatusUnderReview},
	EventClaimCredits:  {domain.InstallationStatusApproved},
}

var targetStates = map[Event]domain.InstallationStatus{
	EventAssignCredits: domain.InstallationStatusSubmitted,
	EventStartReview:   domain.InstallationStatusUnderReview,
	EventApprove:       domain.InstallationStatusApproved,
	EventReject:        domain.InstallationStatusRejected,
	EventClaimCredits:  domain.InstallationStatusCreditsClaimed,
}

// Transition validates event against current and returns the next status.
// It is pure: persisting the result (and stamping updated_at) is the
// caller's single atomic write, so a failed guard leaves nothing changed.
func Transition(current domain.InstallationStatus, event Event, tctx Context) (domain.InstallationStatus, error) {
	target, known := targetStates[event]
	if !known {
		return "", &TransitionError{Event: event, From: current, Reason: ReasonInvalidTransition}
	}

	allowed := false
	for _, from := range sourceStates[event] {
		if from == current {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", &TransitionError{Event: event, From: current, Reason: ReasonInvalidTransition}
	}

	if err := checkGuards(current, event, tctx); err != nil {
		return "", err
	}

	return target, nil
}

func checkGuards(current domain.InstallationStatus, event Event, tctx Context) error {
	fail := func(reason Reason) error {
		return &TransitionError{Event: event, From: current, Reason: reason}
	}

	if event == EventAssignCredits {
		// Only the owning tradie signs the assignment.
		if tctx.ActorID != tctx.OwnerID {
			return fail(ReasonNotOwner)
		}
		// Captured count can never exceed the declared total in the intended
		// flow, but >= satisfies the capture guard defensively.
		if tctx.CapturedPanels < tctx.TotalPanels {
			return fail(ReasonIncompletePanelCapture)
		}
		if !tctx.SignaturePresent {
			return fail(ReasonMissingSignature)
		}
		if !tctx.AgreementAccepted {
			return fail(ReasonAgreementNotAccepted)
		}
		return nil
	}

	// Every post-submission event is admin-only.
	if tctx.ActorRole != domain.UserRoleAdmin {
		return fail(ReasonInsufficientRole)
	}
	return nil
}
