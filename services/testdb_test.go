package services

import (
	"context"
	"testing"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB initializes an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&model.User{},
		&model.CompanyProfile{},
		&model.UniversityProfile{},
		&model.JobPosting{},
		&model.Collaboration{},
		&model.BoardTask{},
		&model.Message{},
		&model.TimelineEntry{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedParties creates a company account and a university account, each
// with a profile, and returns actors for both sides.
func seedParties(t *testing.T, db *gorm.DB) (*Actor, *Actor) {
	t.Helper()

	companyUser := model.User{
		Email:        "hr@acme.test",
		PasswordHash: "x",
		Name:         "Acme HR",
		Role:         model.RoleCompany,
	}
	require.NoError(t, db.Create(&companyUser).Error)

	companyProfile := model.CompanyProfile{
		UserID:       companyUser.ID,
		Name:         "Acme Technologies",
		ContactEmail: "contact@acme.test",
	}
	require.NoError(t, db.Create(&companyProfile).Error)

	universityUser := model.User{
		Email:        "placements@tech.test",
		PasswordHash: "x",
		Name:         "Tech University Placements",
		Role:         model.RoleUniversity,
	}
	require.NoError(t, db.Create(&universityUser).Error)

	universityProfile := model.UniversityProfile{
		UserID:       universityUser.ID,
		Name:         "Tech University",
		Code:         "TECHU",
		ContactEmail: "placements@tech.test",
	}
	require.NoError(t, db.Create(&universityProfile).Error)

	companyActor := &Actor{
		UserID:    companyUser.ID,
		Name:      companyUser.Name,
		Role:      model.RoleCompany,
		CompanyID: companyProfile.ID,
	}
	universityActor := &Actor{
		UserID:       universityUser.ID,
		Name:         universityUser.Name,
		Role:         model.RoleUniversity,
		UniversityID: universityProfile.ID,
	}
	return companyActor, universityActor
}

// startCollab creates a collaboration between the seeded parties and
// returns it with version 1 in the draft stage.
func startCollab(t *testing.T, svc *CollaborationService, companyActor *Actor) *model.Collaboration {
	t.Helper()

	collab, err := svc.Start(context.Background(), companyActor, StartRequest{
		Title:       "Campus Hiring 2026",
		Counterpart: "Tech University",
	})
	require.NoError(t, err)
	return collab
}
