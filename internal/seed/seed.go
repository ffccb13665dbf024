package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campushub/campushub/internal/app/models"
	appRepos "github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/auth"
)

// CreateDefaultData seeds the superadmin account and a starter set of
// departments and programs. Every step is idempotent, so running it on
// each boot is safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if !cfg.Seed.Enabled {
		lgr.Info().Msg("Seeding disabled, skipping default data")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)

	var finalErr error

	if err := seedSuperadmin(ctx, dbPool, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	departments := []struct {
		dept     appModels.Department
		programs []appModels.Program
	}{
		{
			dept: appModels.Department{Name: "Computer Science", Code: "CS"},
			programs: []appModels.Program{
				{Name: "BSc Computer Science", Code: "CSE", DurationYears: 4, TotalCredits: 140},
			},
		},
		{
			dept: appModels.Department{Name: "Business Administration", Code: "BUS"},
			programs: []appModels.Program{
				{Name: "Bachelor of Business Administration", Code: "BBA", DurationYears: 4, TotalCredits: 120},
			},
		},
	}

	for _, entry := range departments {
		dept := entry.dept
		err := departmentRepo.Create(ctx, &dept)
		if err != nil {
			if !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
				lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating default department")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			existingID, findErr := findDepartmentID(ctx, departmentRepo, dept.Code)
			if findErr != nil {
				lgr.Error().Err(findErr).Str("code", dept.Code).Msg("Error resolving existing department")
				finalErr = errors.Join(finalErr, findErr)
				continue
			}
			dept.ID = existingID
		}

		for _, program := range entry.programs {
			program.DepartmentID = dept.ID
			if err := programRepo.Create(ctx, &program); err != nil && !errors.Is(err, apperrors.ErrProgramAlreadyExists) {
				lgr.Error().Err(err).Str("code", program.Code).Msg("Error creating default program")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Msg("Default data check complete")
	return finalErr
}

func seedSuperadmin(ctx context.Context, dbPool *pgxpool.Pool, userRepo *appRepos.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	email := cfg.Seed.SuperadminEmail
	if email == "" {
		email = "admin@campushub.edu"
	}

	_, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	password := cfg.Seed.SuperadminPassword
	if password == "" {
		lgr.Warn().Str("email", email).Msg("No superadmin password configured, skipping superadmin seed")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &appModels.User{
		Email:     email,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleSuperadmin,
	}

	tx, err := dbPool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := userRepo.Create(ctx, tx, user); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	// The superadmin never goes through the email verification flow
	if err := userRepo.SetEmailVerified(ctx, user.ID); err != nil {
		return err
	}

	lgr.Info().Str("email", email).Msg("Superadmin account created")
	return nil
}

func findDepartmentID(ctx context.Context, repo *appRepos.DepartmentRepository, code string) (int64, error) {
	departments, _, err := repo.List(ctx, 0, 100)
	if err != nil {
		return 0, err
	}
	for _, d := range departments {
		if d.Code == code {
			return d.ID, nil
		}
	}
	return 0, apperrors.ErrDepartmentNotFound
}
