package tenant_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/tenant"
)

// recordingProvisioner counts partition provisioning calls.
type recordingProvisioner struct {
	provisioned []string
	err         error
}

func (p *recordingProvisioner) EnsureTenantDatabase(_ context.Context, tenantID string) error {
	if p.err != nil {
		return p.err
	}
	p.provisioned = append(p.provisioned, tenantID)
	return nil
}

var _ = Describe("Tenant Service", func() {
	var (
		repo        *mockTenantRepository
		provisioner *recordingProvisioner
		service     *tenant.Service
	)

	BeforeEach(func() {
		repo = newMockTenantRepository()
		provisioner = &recordingProvisioner{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = tenant.NewService(repo, provisioner, nil, logger)
	})

	Describe("CreateTenant", func() {
		It("creates the record and provisions its partition", func() {
			created, err := service.CreateTenant(context.Background(), tenant.CreateTenantDTO{
				Name:      "Acme",
				Subdomain: "acme",
				Plan:      tenant.PlanProfessional,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).ToNot(BeEmpty())
			Expect(created.Plan).To(Equal(tenant.PlanProfessional))
			Expect(provisioner.provisioned).To(ConsistOf(created.ID))
			Expect(repo.byID).To(HaveKey(created.ID))
		})

		It("defaults to the free plan", func() {
			created, err := service.CreateTenant(context.Background(), tenant.CreateTenantDTO{
				Name:      "Acme",
				Subdomain: "acme",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Plan).To(Equal(tenant.PlanFree))
		})

		It("rejects a taken subdomain", func() {
			repo.add(&tenant.Tenant{ID: "t-1", Name: "First", Subdomain: "acme"})

			_, err := service.CreateTenant(context.Background(), tenant.CreateTenantDTO{
				Name:      "Second",
				Subdomain: "acme",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSubdomainTaken))
			Expect(provisioner.provisioned).To(BeEmpty())
		})

		It("rejects a taken custom domain", func() {
			domain := "careers.acme.io"
			repo.add(&tenant.Tenant{ID: "t-1", Name: "First", Subdomain: "first", CustomDomain: &domain})

			_, err := service.CreateTenant(context.Background(), tenant.CreateTenantDTO{
				Name:         "Second",
				Subdomain:    "second",
				CustomDomain: &domain,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCustomDomainTaken))
		})

		It("rejects an unknown plan", func() {
			_, err := service.CreateTenant(context.Background(), tenant.CreateTenantDTO{
				Name:      "Acme",
				Subdomain: "acme",
				Plan:      "platinum",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("surfaces provisioning failures", func() {
			provisioner.err = errors.New("create database failed")

			_, err := service.CreateTenant(context.Background(), tenant.CreateTenantDTO{
				Name:      "Acme",
				Subdomain: "acme",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("Update", func() {
		var existing *tenant.Tenant

		BeforeEach(func() {
			var err error
			existing, err = service.CreateTenant(context.Background(), tenant.CreateTenantDTO{
				Name:      "Acme",
				Subdomain: "acme",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("patches the name and plan", func() {
			name := "Acme Corp"
			plan := tenant.PlanEnterprise

			updated, err := service.Update(context.Background(), existing, tenant.UpdateTenantDTO{
				Name: &name,
				Plan: &plan,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal("Acme Corp"))
			Expect(updated.Plan).To(Equal(tenant.PlanEnterprise))
			Expect(updated.Subdomain).To(Equal("acme"))
		})

		It("refuses a subdomain already held by another tenant", func() {
			repo.add(&tenant.Tenant{ID: "t-other", Name: "Other", Subdomain: "globex"})
			sub := "globex"

			_, err := service.Update(context.Background(), existing, tenant.UpdateTenantDTO{Subdomain: &sub})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSubdomainTaken))
		})

		It("clears the custom domain with an empty string", func() {
			domain := "careers.acme.io"
			_, err := service.Update(context.Background(), existing, tenant.UpdateTenantDTO{CustomDomain: &domain})
			Expect(err).ToNot(HaveOccurred())
			Expect(existing.CustomDomain).ToNot(BeNil())

			empty := ""
			updated, err := service.Update(context.Background(), existing, tenant.UpdateTenantDTO{CustomDomain: &empty})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.CustomDomain).To(BeNil())
		})
	})
})
