package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/lifecycle"
	"stc-compliance-backend/internal/repository"
	"stc-compliance-backend/internal/service"
)

func newReviewFixture() (*MockInstallationRepo, *MockUserRepo, *MockEmailService, service.ReviewService) {
	instRepo := new(MockInstallationRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	return instRepo, userRepo, emailSvc, service.NewReviewService(instRepo, userRepo, emailSvc)
}

func reviewInstallation(status domain.InstallationStatus) *domain.Installation {
	return &domain.Installation{
		ID:          "inst-1",
		TradieID:    "tradie-1",
		SiteAddress: "1 Solar St",
		Status:      status,
	}
}

func TestReviewService_StartReview(t *testing.T) {
	ctx := context.Background()
	adminID := "admin-1"

	t.Run("Success", func(t *testing.T) {
		instRepo, userRepo, emailSvc, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusSubmitted), nil)
		instRepo.On("UpdateStatus", ctx, "inst-1", domain.InstallationStatusSubmitted, domain.InstallationStatusUnderReview, "checking serials").Return(nil)
		userRepo.On("GetByID", ctx, "tradie-1").Return(&domain.User{ID: "tradie-1", Email: "tradie@test.com", FullName: "Tradie"}, nil)
		emailSvc.On("SendReviewOutcomeNotification", ctx, "tradie@test.com", "Tradie", "1 Solar St", domain.InstallationStatusUnderReview, "checking serials").Return(nil)

		res, err := svc.StartReview(ctx, adminID, domain.UserRoleAdmin, "inst-1", "checking serials")
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusUnderReview, res.Status)
		emailSvc.AssertNumberOfCalls(t, "SendReviewOutcomeNotification", 1)
	})

	t.Run("Non-Admin Leaves Status Unchanged", func(t *testing.T) {
		instRepo, _, _, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusSubmitted), nil)

		res, err := svc.StartReview(ctx, "tradie-1", domain.UserRoleTradie, "inst-1", "")
		assert.Error(t, err)
		assert.Nil(t, res)

		var terr *lifecycle.TransitionError
		assert.True(t, errors.As(err, &terr))
		assert.Equal(t, lifecycle.ReasonInsufficientRole, terr.Reason)
		instRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Wrong Source Status", func(t *testing.T) {
		instRepo, _, _, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusDraft), nil)

		res, err := svc.StartReview(ctx, adminID, domain.UserRoleAdmin, "inst-1", "")
		assert.Error(t, err)
		assert.Nil(t, res)
		instRepo.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestReviewService_Approve(t *testing.T) {
	ctx := context.Background()
	adminID := "admin-1"

	t.Run("From Submitted", func(t *testing.T) {
		instRepo, userRepo, emailSvc, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusSubmitted), nil)
		instRepo.On("UpdateStatus", ctx, "inst-1", domain.InstallationStatusSubmitted, domain.InstallationStatusApproved, "").Return(nil)
		userRepo.On("GetByID", ctx, "tradie-1").Return(&domain.User{Email: "tradie@test.com"}, nil)
		emailSvc.On("SendReviewOutcomeNotification", ctx, mock.Anything, mock.Anything, mock.Anything, domain.InstallationStatusApproved, mock.Anything).Return(nil)

		res, err := svc.Approve(ctx, adminID, domain.UserRoleAdmin, "inst-1", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusApproved, res.Status)
	})

	t.Run("Concurrent Reviewer Loses", func(t *testing.T) {
		instRepo, _, _, svc := newReviewFixture()

		// Another admin rejected between our read and our write; the
		// compare-and-swap write reports the conflict.
		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusUnderReview), nil)
		instRepo.On("UpdateStatus", ctx, "inst-1", domain.InstallationStatusUnderReview, domain.InstallationStatusApproved, "").Return(repository.ErrStatusConflict)

		res, err := svc.Approve(ctx, adminID, domain.UserRoleAdmin, "inst-1", "")
		assert.ErrorIs(t, err, repository.ErrStatusConflict)
		assert.Nil(t, res)
	})

	t.Run("Notification Failure Is Swallowed", func(t *testing.T) {
		instRepo, userRepo, emailSvc, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusSubmitted), nil)
		instRepo.On("UpdateStatus", ctx, "inst-1", domain.InstallationStatusSubmitted, domain.InstallationStatusApproved, "").Return(nil)
		userRepo.On("GetByID", ctx, "tradie-1").Return(&domain.User{Email: "tradie@test.com"}, nil)
		emailSvc.On("SendReviewOutcomeNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		res, err := svc.Approve(ctx, adminID, domain.UserRoleAdmin, "inst-1", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusApproved, res.Status)
	})
}

func TestReviewService_Reject(t *testing.T) {
	ctx := context.Background()
	adminID := "admin-1"

	t.Run("With Notes", func(t *testing.T) {
		instRepo, userRepo, emailSvc, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusUnderReview), nil)
		instRepo.On("UpdateStatus", ctx, "inst-1", domain.InstallationStatusUnderReview, domain.InstallationStatusRejected, "duplicate serials").Return(nil)
		userRepo.On("GetByID", ctx, "tradie-1").Return(&domain.User{Email: "tradie@test.com"}, nil)
		emailSvc.On("SendReviewOutcomeNotification", ctx, mock.Anything, mock.Anything, mock.Anything, domain.InstallationStatusRejected, "duplicate serials").Return(nil)

		res, err := svc.Reject(ctx, adminID, domain.UserRoleAdmin, "inst-1", "duplicate serials")
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusRejected, res.Status)
		assert.Equal(t, "duplicate serials", res.Notes)
	})

	t.Run("Rejected Is Terminal", func(t *testing.T) {
		instRepo, _, _, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusRejected), nil)

		res, err := svc.Reject(ctx, adminID, domain.UserRoleAdmin, "inst-1", "again")
		assert.Error(t, err)
		assert.Nil(t, res)
		instRepo.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestReviewService_MarkCreditsClaimed(t *testing.T) {
	ctx := context.Background()
	adminID := "admin-1"

	t.Run("From Approved", func(t *testing.T) {
		instRepo, userRepo, emailSvc, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusApproved), nil)
		instRepo.On("UpdateStatus", ctx, "inst-1", domain.InstallationStatusApproved, domain.InstallationStatusCreditsClaimed, "").Return(nil)
		userRepo.On("GetByID", ctx, "tradie-1").Return(&domain.User{Email: "tradie@test.com"}, nil)
		emailSvc.On("SendReviewOutcomeNotification", ctx, mock.Anything, mock.Anything, mock.Anything, domain.InstallationStatusCreditsClaimed, mock.Anything).Return(nil)

		res, err := svc.MarkCreditsClaimed(ctx, adminID, domain.UserRoleAdmin, "inst-1", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusCreditsClaimed, res.Status)
	})

	t.Run("Not From Submitted", func(t *testing.T) {
		instRepo, _, _, svc := newReviewFixture()

		instRepo.On("GetByID", ctx, "inst-1").Return(reviewInstallation(domain.InstallationStatusSubmitted), nil)

		res, err := svc.MarkCreditsClaimed(ctx, adminID, domain.UserRoleAdmin, "inst-1", "")
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestReviewService_ListByStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Only", func(t *testing.T) {
		_, _, _, svc := newReviewFixture()

		res, total, err := svc.ListByStatus(ctx, domain.UserRoleTradie, domain.InstallationStatusSubmitted, 1, 20)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		assert.Nil(t, res)
		assert.Zero(t, total)
	})

	t.Run("Clamps Paging", func(t *testing.T) {
		instRepo, _, _, svc := newReviewFixture()

		instRepo.On("ListByStatus", ctx, domain.InstallationStatusSubmitted, int32(1), int32(20)).
			Return([]domain.Installation{*reviewInstallation(domain.InstallationStatusSubmitted)}, int32(1), nil)

		res, total, err := svc.ListByStatus(ctx, domain.UserRoleAdmin, domain.InstallationStatusSubmitted, 0, 500)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, int32(1), total)
	})
}

func TestReviewService_ListTradies(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Only", func(t *testing.T) {
		_, userRepo, _, svc := newReviewFixture()

		res, err := svc.ListTradies(ctx, domain.UserRoleTradie)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		assert.Nil(t, res)
		userRepo.AssertNotCalled(t, "ListTradies")
	})

	t.Run("Success", func(t *testing.T) {
		_, userRepo, _, svc := newReviewFixture()

		userRepo.On("ListTradies", ctx).Return([]domain.User{
			{ID: "tradie-1", FullName: "Alex Sparks", Role: domain.UserRoleTradie},
			{ID: "tradie-2", FullName: "Sam Volt", Role: domain.UserRoleTradie},
		}, nil)

		res, err := svc.ListTradies(ctx, domain.UserRoleAdmin)
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "Alex Sparks", res[0].FullName)
	})
}
