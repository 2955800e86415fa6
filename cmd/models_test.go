package cmd

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jobnest/jobnest/internal/application"
	"github.com/jobnest/jobnest/internal/candidate"
	"github.com/jobnest/jobnest/internal/feedback"
	"github.com/jobnest/jobnest/internal/interview"
	"github.com/jobnest/jobnest/internal/job"
)

func TestCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cmd Suite")
}

var _ = Describe("tenantModels", func() {
	It("migrates every tenant-scoped table", func() {
		models := tenantModels()

		Expect(models).To(ConsistOf(
			&job.Job{},
			&candidate.Candidate{},
			&application.Application{},
			&interview.Interview{},
			&feedback.Feedback{},
		))
	})
})
