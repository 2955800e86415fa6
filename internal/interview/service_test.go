package interview_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/interview"
)

func TestInterview(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Interview Suite")
}

// Mock repository for testing
type mockInterviewRepository struct {
	interviews  map[string]*interview.Interview
	updateError error
}

func newMockInterviewRepository() *mockInterviewRepository {
	return &mockInterviewRepository{interviews: make(map[string]*interview.Interview)}
}

func (m *mockInterviewRepository) Create(_ context.Context, i *interview.Interview) error {
	m.interviews[i.ID] = i
	return nil
}

func (m *mockInterviewRepository) GetByID(_ context.Context, id string) (*interview.Interview, error) {
	if i, ok := m.interviews[id]; ok {
		copied := *i
		return &copied, nil
	}
	return nil, internal.ErrInterviewNotFound
}

func (m *mockInterviewRepository) List(_ context.Context, filter interview.ListInterviewsFilter) ([]*interview.Interview, error) {
	var out []*interview.Interview
	for _, i := range m.interviews {
		if filter.CandidateID != "" && i.CandidateID != filter.CandidateID {
			continue
		}
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		if filter.InterviewerID != "" && !i.HasInterviewer(filter.InterviewerID) {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

func (m *mockInterviewRepository) Update(_ context.Context, i *interview.Interview) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.interviews[i.ID] = i
	return nil
}

func (m *mockInterviewRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.interviews[id]; !ok {
		return internal.ErrInterviewNotFound
	}
	delete(m.interviews, id)
	return nil
}

var _ = Describe("Interview Service", func() {
	var (
		repo    *mockInterviewRepository
		service *interview.Service
	)

	validSchedule := func() interview.ScheduleInterviewDTO {
		return interview.ScheduleInterviewDTO{
			CandidateID:   "cand-1",
			JobID:         "job-1",
			Interviewers:  []string{"emp-1", "emp-2"},
			ScheduledDate: time.Now().Add(72 * time.Hour),
			StartTime:     "10:00",
			EndTime:       "11:00",
			Type:          interview.TypeVideo,
		}
	}

	BeforeEach(func() {
		repo = newMockInterviewRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = interview.NewService(repo, nil, nil, logger)
	})

	Describe("ScheduleInterview", func() {
		It("creates the interview in scheduled status", func() {
			created, err := service.ScheduleInterview(context.Background(), "manager-1", validSchedule())

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(interview.StatusScheduled))
			Expect(created.Interviewers).To(ConsistOf("emp-1", "emp-2"))
			Expect(created.CreatedBy).To(Equal("manager-1"))
		})

		It("requires a panel", func() {
			dto := validSchedule()
			dto.Interviewers = nil

			_, err := service.ScheduleInterview(context.Background(), "manager-1", dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("CancelInterview", func() {
		var existing *interview.Interview

		BeforeEach(func() {
			var err error
			existing, err = service.ScheduleInterview(context.Background(), "manager-1", validSchedule())
			Expect(err).ToNot(HaveOccurred())
		})

		It("cancels a scheduled interview", func() {
			cancelled, err := service.CancelInterview(context.Background(), existing.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(cancelled.Status).To(Equal(interview.StatusCancelled))
		})

		It("cancels a rescheduled interview", func() {
			later := time.Now().Add(96 * time.Hour)
			rescheduled, err := service.UpdateInterview(context.Background(), existing.ID, interview.UpdateInterviewDTO{
				ScheduledDate: &later,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(rescheduled.Status).To(Equal(interview.StatusRescheduled))

			cancelled, err := service.CancelInterview(context.Background(), existing.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(cancelled.Status).To(Equal(interview.StatusCancelled))
		})

		It("refuses to cancel a completed interview", func() {
			status := interview.StatusCompleted
			_, err := service.UpdateInterview(context.Background(), existing.ID, interview.UpdateInterviewDTO{Status: &status})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CancelInterview(context.Background(), existing.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})

		It("keeps attached feedback when cancelling", func() {
			_, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-1", interview.SubmitFeedbackDTO{
				Rating:         4,
				Recommendation: "yes",
			})
			Expect(err).ToNot(HaveOccurred())

			cancelled, err := service.CancelInterview(context.Background(), existing.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(cancelled.Feedback).To(HaveLen(1))
		})
	})

	Describe("SubmitFeedback", func() {
		var existing *interview.Interview

		BeforeEach(func() {
			var err error
			existing, err = service.ScheduleInterview(context.Background(), "manager-1", validSchedule())
			Expect(err).ToNot(HaveOccurred())
		})

		It("records a panel member's assessment", func() {
			updated, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-1", interview.SubmitFeedbackDTO{
				Rating:         4,
				Strengths:      "clear system design reasoning",
				Recommendation: "yes",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Feedback).To(HaveLen(1))
			Expect(updated.Feedback[0].InterviewerID).To(Equal("emp-1"))
			Expect(updated.Feedback[0].Rating).To(Equal(4))
			Expect(updated.Feedback[0].SubmittedAt).ToNot(BeZero())
		})

		It("rejects feedback from outside the panel", func() {
			_, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-99", interview.SubmitFeedbackDTO{
				Rating: 3,
			})

			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})

		It("replaces an interviewer's earlier entry on resubmission", func() {
			_, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-1", interview.SubmitFeedbackDTO{
				Rating: 2,
			})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-1", interview.SubmitFeedbackDTO{
				Rating:   5,
				Comments: "much stronger on the follow-up exercise",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Feedback).To(HaveLen(1))
			Expect(updated.Feedback[0].Rating).To(Equal(5))
		})

		It("collects feedback from each panel member separately", func() {
			_, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-1", interview.SubmitFeedbackDTO{Rating: 4})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-2", interview.SubmitFeedbackDTO{Rating: 3})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Feedback).To(HaveLen(2))
		})

		It("rejects ratings outside 1 to 5", func() {
			_, err := service.SubmitFeedback(context.Background(), existing.ID, "emp-1", interview.SubmitFeedbackDTO{
				Rating: 6,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("ListAssigned", func() {
		It("returns only interviews the member sits on", func() {
			_, err := service.ScheduleInterview(context.Background(), "manager-1", validSchedule())
			Expect(err).ToNot(HaveOccurred())

			other := validSchedule()
			other.Interviewers = []string{"emp-3"}
			_, err = service.ScheduleInterview(context.Background(), "manager-1", other)
			Expect(err).ToNot(HaveOccurred())

			assigned, err := service.ListAssigned(context.Background(), "emp-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(assigned).To(HaveLen(1))
			Expect(assigned[0].HasInterviewer("emp-1")).To(BeTrue())
		})
	})
})
