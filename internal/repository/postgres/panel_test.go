package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository/postgres"
)

func panelRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "installation_id", "serial_number", "manufacturer", "model", "wattage",
		"serial_image_url", "installation_image_url", "verified", "cec_approved", "created_at",
	})
}

func TestPanelRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPanelRepository(db)
	ctx := context.Background()

	panel := &domain.Panel{
		InstallationID:  "inst-1",
		SerialNumber:    "TRINA12345678",
		Manufacturer:    "Trina",
		Model:           "Vertex S",
		SerialImageURL:  "inst-1/1_serial.jpg",
		InstallImageURL: "inst-1/1_install.jpg",
	}

	mock.ExpectExec("INSERT INTO panels").
		WithArgs(sqlmock.AnyArg(), panel.InstallationID, panel.SerialNumber, panel.Manufacturer, panel.Model, panel.Wattage,
			panel.SerialImageURL, panel.InstallImageURL, panel.Verified, panel.CECApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(ctx, panel)
	assert.NoError(t, err)
	assert.NotEmpty(t, panel.ID)
}

func TestPanelRepository_ListByInstallation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPanelRepository(db)
	ctx := context.Background()

	rows := panelRows().
		AddRow("p-1", "inst-1", "TRINA12345678", "Trina", "Vertex S", nil, "a.jpg", "b.jpg", false, false, time.Now()).
		AddRow("p-2", "inst-1", "TRINA12345679", "Trina", "Vertex S", 415, "c.jpg", "d.jpg", true, true, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM panels WHERE installation_id = \\$1").
		WithArgs("inst-1").
		WillReturnRows(rows)

	panels, err := repo.ListByInstallation(ctx, "inst-1")
	assert.NoError(t, err)
	assert.Len(t, panels, 2)
	assert.Nil(t, panels[0].Wattage)
	assert.NotNil(t, panels[1].Wattage)
	assert.Equal(t, int32(415), *panels[1].Wattage)
}

func TestPanelRepository_CountByInstallation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPanelRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM panels WHERE installation_id = \\$1").
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	count, err := repo.CountByInstallation(ctx, "inst-1")
	assert.NoError(t, err)
	assert.Equal(t, int32(9), count)
}

func TestPanelRepository_UpdateVerification(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPanelRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE panels SET verified=").
		WithArgs(true, true, "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateVerification(ctx, "p-1", true, true)
	assert.NoError(t, err)
}

func TestPanelRepository_ListUnverified(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPanelRepository(db)
	ctx := context.Background()

	rows := panelRows().
		AddRow("p-1", "inst-1", "TRINA12345678", "Trina", "Vertex S", nil, "a.jpg", "b.jpg", false, false, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM panels WHERE verified = FALSE").
		WithArgs(int32(100)).
		WillReturnRows(rows)

	panels, err := repo.ListUnverified(ctx, 100)
	assert.NoError(t, err)
	assert.Len(t, panels, 1)
	assert.False(t, panels[0].Verified)
}
