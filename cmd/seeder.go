package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal/application"
	applicationpg "github.com/jobnest/jobnest/internal/application/postgres"
	"github.com/jobnest/jobnest/internal/auth"
	authpg "github.com/jobnest/jobnest/internal/auth/postgres"
	"github.com/jobnest/jobnest/internal/candidate"
	candidatepg "github.com/jobnest/jobnest/internal/candidate/postgres"
	"github.com/jobnest/jobnest/internal/core/events"
	"github.com/jobnest/jobnest/internal/interview"
	interviewpg "github.com/jobnest/jobnest/internal/interview/postgres"
	"github.com/jobnest/jobnest/internal/job"
	jobpg "github.com/jobnest/jobnest/internal/job/postgres"
	"github.com/jobnest/jobnest/internal/tenant"
	tenantpg "github.com/jobnest/jobnest/internal/tenant/postgres"
	"github.com/jobnest/jobnest/internal/tenantdb"
	"github.com/jobnest/jobnest/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const seedSubdomain = "acme"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Provision a demo tenant with one user per role and sample recruiting data.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSeed(); err != nil {
			log.Fatalf("seed: %v", err)
		}
	},
}

func runSeed() error {
	ctx := context.Background()

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	logger.Init(cfg.Environment)
	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	sharedGorm, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return err
	}
	if err := sharedGorm.AutoMigrate(&tenant.Tenant{}, &auth.User{}); err != nil {
		return fmt.Errorf("migrate shared tables: %w", err)
	}

	if clearData {
		if err := sharedGorm.Where("subdomain = ?", seedSubdomain).Delete(&tenant.Tenant{}).Error; err != nil {
			return fmt.Errorf("clear tenant: %w", err)
		}
	}

	bus := events.NewEventBus(lg)
	manager := tenantdb.NewManager(sharedGorm, cfg.Database.Source, cfg.Tenancy, lg, tenantModels()...)

	tenantRepo := tenantpg.NewTenantRepository(sharedGorm)
	tenantService := tenant.NewService(tenantRepo, manager, bus, lg)

	t, err := tenantRepo.GetBySubdomain(ctx, seedSubdomain)
	if err != nil {
		t, err = tenantService.CreateTenant(ctx, tenant.CreateTenantDTO{
			Name:      "Acme Recruiting",
			Subdomain: seedSubdomain,
			Plan:      tenant.PlanProfessional,
		})
		if err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}
		fmt.Println("Seeded tenant:", t.Subdomain)
	} else {
		fmt.Println("tenant already exists:", t.Subdomain)
	}

	// all sample entities live inside the demo tenant
	ctx = tenant.ContextWithTenant(ctx, t)

	userRepo := authpg.NewUserRepository(sharedGorm)
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
	if err != nil {
		return err
	}

	seedUsers := []struct {
		Name  string
		Email string
		Role  auth.Role
	}{
		{"Ada Admin", "admin@acme.test", auth.RoleAdmin},
		{"Mori Manager", "manager@acme.test", auth.RoleManager},
		{"Evan Employee", "employee@acme.test", auth.RoleEmployee},
		{"Cleo Candidate", "candidate@acme.test", auth.RoleCandidate},
	}

	users := make(map[auth.Role]*auth.User)
	for _, su := range seedUsers {
		existing, err := userRepo.GetByEmail(ctx, t.ID, su.Email)
		if err == nil {
			users[su.Role] = existing
			fmt.Println("user already exists:", su.Email)
			continue
		}

		u := &auth.User{
			ID:           uuid.NewString(),
			TenantID:     t.ID,
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", su.Email, err)
		}
		users[su.Role] = u
		fmt.Println("Seeded user:", su.Email)
	}

	jobService := job.NewService(jobpg.NewJobRepository(manager), bus, nil, lg)
	candidateService := candidate.NewService(candidatepg.NewCandidateRepository(manager), bus, nil, lg)
	applicationService := application.NewService(applicationpg.NewApplicationRepository(manager), nil, bus, nil, lg)
	interviewService := interview.NewService(interviewpg.NewInterviewRepository(manager), bus, nil, lg)

	existingJobs, err := jobService.ListJobs(ctx, job.ListJobsFilter{})
	if err != nil {
		return err
	}
	if len(existingJobs) > 0 {
		fmt.Println("sample data already present; nothing to do")
		return nil
	}

	admin := users[auth.RoleAdmin]

	opened, err := jobService.CreateJob(ctx, admin.ID, job.CreateJobDTO{
		Title:            "Backend Engineer",
		Department:       "Engineering",
		Location:         "Remote",
		Type:             "full_time",
		Status:           job.StatusOpen,
		Description:      "Build and operate the services behind our hiring pipeline.",
		Requirements:     []string{"Go", "PostgreSQL"},
		Responsibilities: []string{"Design APIs", "Own services end to end"},
	})
	if err != nil {
		return fmt.Errorf("seed job: %w", err)
	}

	candidateUserID := users[auth.RoleCandidate].ID
	cand, err := candidateService.CreateCandidate(ctx, candidate.CreateCandidateDTO{
		UserID:    &candidateUserID,
		FirstName: "Cleo",
		LastName:  "Candidate",
		Email:     "candidate@acme.test",
		Location:  "Berlin",
		Skills:    []string{"Go", "SQL"},
	})
	if err != nil {
		return fmt.Errorf("seed candidate: %w", err)
	}

	app, err := applicationService.CreateApplication(ctx, application.CreateApplicationDTO{
		CandidateID: cand.ID,
		JobID:       opened.ID,
		CoverLetter: "I have been shipping Go services for five years.",
	})
	if err != nil {
		return fmt.Errorf("seed application: %w", err)
	}

	if _, err := interviewService.ScheduleInterview(ctx, admin.ID, interview.ScheduleInterviewDTO{
		CandidateID:   cand.ID,
		JobID:         opened.ID,
		Interviewers:  []string{users[auth.RoleEmployee].ID},
		ScheduledDate: time.Now().Add(72 * time.Hour),
		StartTime:     "10:00",
		EndTime:       "11:00",
		Type:          interview.TypeVideo,
	}); err != nil {
		return fmt.Errorf("seed interview: %w", err)
	}

	fmt.Println("Seeded sample data for tenant", t.Subdomain, "- application", app.ID)
	return nil
}
