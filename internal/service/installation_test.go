package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/service"
)

func newInstallationFixture() (*MockInstallationRepo, *MockPanelRepo, *MockUserRepo, service.InstallationService) {
	instRepo := new(MockInstallationRepo)
	panelRepo := new(MockPanelRepo)
	userRepo := new(MockUserRepo)
	return instRepo, panelRepo, userRepo, service.NewInstallationService(instRepo, panelRepo, userRepo)
}

func TestInstallationService_CreateInstallation(t *testing.T) {
	ctx := context.Background()

	valid := func() *domain.Installation {
		return &domain.Installation{
			CustomerName:     "Jane Customer",
			SiteAddress:      "1 Solar St",
			SitePostcode:     "4000",
			InstallationDate: "2026-08-01",
			SystemSizeKw:     6.6,
			TotalPanels:      15,
		}
	}

	t.Run("Success", func(t *testing.T) {
		instRepo, _, _, svc := newInstallationFixture()
		instRepo.On("Create", ctx, mock.AnythingOfType("*domain.Installation")).Return(nil)

		res, err := svc.CreateInstallation(ctx, "tradie-1", valid())
		assert.NoError(t, err)
		assert.Equal(t, "tradie-1", res.TradieID)
		assert.Equal(t, domain.InstallationStatusDraft, res.Status)
		assert.False(t, res.CreditsAssigned)
	})

	t.Run("Status Cannot Be Forced", func(t *testing.T) {
		instRepo, _, _, svc := newInstallationFixture()
		instRepo.On("Create", ctx, mock.AnythingOfType("*domain.Installation")).Return(nil)

		inst := valid()
		inst.Status = domain.InstallationStatusApproved
		inst.CreditsAssigned = true

		res, err := svc.CreateInstallation(ctx, "tradie-1", inst)
		assert.NoError(t, err)
		assert.Equal(t, domain.InstallationStatusDraft, res.Status)
		assert.False(t, res.CreditsAssigned)
	})

	t.Run("Validation", func(t *testing.T) {
		_, _, _, svc := newInstallationFixture()

		cases := map[string]func(*domain.Installation){
			"no customer":   func(i *domain.Installation) { i.CustomerName = "" },
			"no address":    func(i *domain.Installation) { i.SiteAddress = "" },
			"zero size":     func(i *domain.Installation) { i.SystemSizeKw = 0 },
			"negative size": func(i *domain.Installation) { i.SystemSizeKw = -1 },
			"zero panels":   func(i *domain.Installation) { i.TotalPanels = 0 },
			"bad date":      func(i *domain.Installation) { i.InstallationDate = "01/08/2026" },
		}
		for name, mutate := range cases {
			inst := valid()
			mutate(inst)
			_, err := svc.CreateInstallation(ctx, "tradie-1", inst)
			assert.Error(t, err, name)
		}
	})

	t.Run("Date Defaults To Today", func(t *testing.T) {
		instRepo, _, _, svc := newInstallationFixture()
		instRepo.On("Create", ctx, mock.AnythingOfType("*domain.Installation")).Return(nil)

		inst := valid()
		inst.InstallationDate = ""
		res, err := svc.CreateInstallation(ctx, "tradie-1", inst)
		assert.NoError(t, err)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, res.InstallationDate)
	})
}

func TestInstallationService_GetInstallation(t *testing.T) {
	ctx := context.Background()
	inst := &domain.Installation{ID: "inst-1", TradieID: "tradie-1"}
	panels := []domain.Panel{{ID: "p-1", InstallationID: "inst-1"}}

	t.Run("Owner Gets Panels And Tradie", func(t *testing.T) {
		instRepo, panelRepo, userRepo, svc := newInstallationFixture()
		instRepo.On("GetByID", ctx, "inst-1").Return(inst, nil)
		panelRepo.On("ListByInstallation", ctx, "inst-1").Return(panels, nil)
		userRepo.On("GetByID", ctx, "tradie-1").Return(&domain.User{ID: "tradie-1", FullName: "Tradie"}, nil)

		res, resPanels, err := svc.GetInstallation(ctx, "tradie-1", domain.UserRoleTradie, "inst-1")
		assert.NoError(t, err)
		assert.Len(t, resPanels, 1)
		assert.NotNil(t, res.Tradie)
		assert.Equal(t, "Tradie", res.Tradie.FullName)
	})

	t.Run("Other Tradie Denied", func(t *testing.T) {
		instRepo, _, _, svc := newInstallationFixture()
		instRepo.On("GetByID", ctx, "inst-1").Return(inst, nil)

		_, _, err := svc.GetInstallation(ctx, "tradie-2", domain.UserRoleTradie, "inst-1")
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})
}

func TestInstallationService_UpdateDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft Only", func(t *testing.T) {
		instRepo, _, _, svc := newInstallationFixture()
		instRepo.On("GetByID", ctx, "inst-1").Return(&domain.Installation{
			ID: "inst-1", TradieID: "tradie-1", Status: domain.InstallationStatusSubmitted,
		}, nil)

		err := svc.UpdateDetails(ctx, "tradie-1", &domain.Installation{ID: "inst-1"})
		assert.Error(t, err)
		instRepo.AssertNotCalled(t, "UpdateDetails")
	})

	t.Run("Owner Only", func(t *testing.T) {
		instRepo, _, _, svc := newInstallationFixture()
		instRepo.On("GetByID", ctx, "inst-1").Return(&domain.Installation{
			ID: "inst-1", TradieID: "tradie-1", Status: domain.InstallationStatusDraft,
		}, nil)

		err := svc.UpdateDetails(ctx, "tradie-2", &domain.Installation{ID: "inst-1"})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("Success", func(t *testing.T) {
		instRepo, _, _, svc := newInstallationFixture()
		instRepo.On("GetByID", ctx, "inst-1").Return(&domain.Installation{
			ID: "inst-1", TradieID: "tradie-1", Status: domain.InstallationStatusDraft,
		}, nil)
		instRepo.On("UpdateDetails", ctx, mock.AnythingOfType("*domain.Installation")).Return(nil)

		err := svc.UpdateDetails(ctx, "tradie-1", &domain.Installation{
			ID:               "inst-1",
			CustomerName:     "New Name",
			SiteAddress:      "2 Solar St",
			InstallationDate: "2026-08-02",
			SystemSizeKw:     6.6,
			TotalPanels:      15,
		})
		assert.NoError(t, err)
	})

	// An update is held to the same field rules as a create. A zeroed panel
	// count would make the capture guard on submission vacuous, so it must
	// never reach the stored record.
	t.Run("Validation Applies To Updates", func(t *testing.T) {
		valid := func() *domain.Installation {
			return &domain.Installation{
				ID:               "inst-1",
				CustomerName:     "Jane Customer",
				SiteAddress:      "1 Solar St",
				InstallationDate: "2026-08-01",
				SystemSizeKw:     6.6,
				TotalPanels:      15,
			}
		}

		cases := map[string]func(*domain.Installation){
			"zero panels":     func(i *domain.Installation) { i.TotalPanels = 0 },
			"negative panels": func(i *domain.Installation) { i.TotalPanels = -3 },
			"zero size":       func(i *domain.Installation) { i.SystemSizeKw = 0 },
			"no customer":     func(i *domain.Installation) { i.CustomerName = "" },
			"bad date":        func(i *domain.Installation) { i.InstallationDate = "01/08/2026" },
		}
		for name, mutate := range cases {
			instRepo, _, _, svc := newInstallationFixture()
			instRepo.On("GetByID", ctx, "inst-1").Return(&domain.Installation{
				ID: "inst-1", TradieID: "tradie-1", Status: domain.InstallationStatusDraft,
			}, nil)

			inst := valid()
			mutate(inst)
			err := svc.UpdateDetails(ctx, "tradie-1", inst)
			assert.Error(t, err, name)
			instRepo.AssertNotCalled(t, "UpdateDetails")
		}
	})
}

func TestInstallationService_CaptureProgress(t *testing.T) {
	ctx := context.Background()
	inst := &domain.Installation{ID: "inst-1", TradieID: "tradie-1", TotalPanels: 15}

	instRepo, panelRepo, _, svc := newInstallationFixture()
	instRepo.On("GetByID", ctx, "inst-1").Return(inst, nil)
	panelRepo.On("CountByInstallation", ctx, "inst-1").Return(int32(9), nil)

	captured, total, err := svc.CaptureProgress(ctx, "tradie-1", domain.UserRoleTradie, "inst-1")
	assert.NoError(t, err)
	assert.Equal(t, int32(9), captured)
	assert.Equal(t, int32(15), total)
}
