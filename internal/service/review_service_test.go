package service

import (
	"context"
	"testing"

	"github.com/lshigami/testportal/config"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/messaging"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reviewFixture struct {
	db       *gorm.DB
	svc      ReviewService
	pub      *recordingPublisher
	resultID string
}

// newReviewFixture submits an attempt with a wrong short answer, scoring
// 2 of 4 marks.
func newReviewFixture(t *testing.T, recompute bool) reviewFixture {
	t.Helper()
	db := newTestDB(t)
	test := seedQuiz(t, db, true, nil)

	answers := threeOfFour()
	answers["q4"] = grading.TextValue("London")
	result, err := newSubmissionService(db, nil).SubmitAttempt(context.Background(), test.ID, dto.AttemptSubmitDTO{UserID: "student-1", Answers: answers})
	require.NoError(t, err)
	require.Equal(t, 50, result.Score)

	pub := &recordingPublisher{}
	cfg := &config.Config{Review: config.Review{RecomputeScore: recompute}}
	svc := NewReviewService(db, repository.NewReviewRequestRepository(db), messaging.NewEvents(pub), cfg)
	return reviewFixture{db: db, svc: svc, pub: pub, resultID: result.ID}
}

func (f reviewFixture) open(t *testing.T) *dto.ReviewRequestDTO {
	t.Helper()
	req, err := f.svc.CreateRequest(context.Background(), f.resultID, dto.ReviewRequestCreateDTO{UserID: "student-1", QuestionID: "q4", Reason: "London was the capital I was taught"})
	require.NoError(t, err)
	return req
}

func TestReviewService_CreateRequest(t *testing.T) {
	f := newReviewFixture(t, true)

	req := f.open(t)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, string(grading.ReviewPending), req.Status)
	assert.Equal(t, []string{messaging.QueueReviewCreated}, f.pub.published())

	_, err := f.svc.CreateRequest(context.Background(), f.resultID, dto.ReviewRequestCreateDTO{UserID: "student-1", QuestionID: "q4", Reason: "again"})
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestReviewService_CreateRequestRejections(t *testing.T) {
	f := newReviewFixture(t, true)
	ctx := context.Background()

	_, err := f.svc.CreateRequest(ctx, f.resultID, dto.ReviewRequestCreateDTO{UserID: "student-2", QuestionID: "q4", Reason: "mine"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.CreateRequest(ctx, "missing", dto.ReviewRequestCreateDTO{UserID: "student-1", QuestionID: "q4", Reason: "why"})
	assert.ErrorIs(t, err, ErrNotFound)

	var verr *grading.ValidationError
	_, err = f.svc.CreateRequest(ctx, f.resultID, dto.ReviewRequestCreateDTO{UserID: "student-1", QuestionID: "q3", Reason: "why"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "question_id", verr.Field)

	_, err = f.svc.CreateRequest(ctx, f.resultID, dto.ReviewRequestCreateDTO{UserID: "student-1", QuestionID: "q42", Reason: "why"})
	require.ErrorAs(t, err, &verr)

	_, err = f.svc.CreateRequest(ctx, f.resultID, dto.ReviewRequestCreateDTO{UserID: "student-1", QuestionID: "q4", Reason: "   "})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "reason", verr.Field)

	assert.Empty(t, f.pub.published())
}

func TestReviewService_ApproveWithRecompute(t *testing.T) {
	f := newReviewFixture(t, true)
	ctx := context.Background()
	req := f.open(t)

	resolved, err := f.svc.ResolveRequest(ctx, req.ID, dto.ReviewResolveDTO{Decision: "approved", ReviewerID: "teacher-1", Notes: "accepted", NewMarks: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, string(grading.ReviewApproved), resolved.Status)
	assert.Equal(t, "teacher-1", resolved.ReviewedBy)
	require.NotNil(t, resolved.ReviewedAt)

	result, err := repository.NewTestResultRepository(f.db).FindByID(ctx, f.resultID)
	require.NoError(t, err)
	assert.Equal(t, 75, result.Score)
	assert.Equal(t, 3, result.MarksAwarded)
	assert.Equal(t, 1, result.DetailedResults[3].MarksAwarded)
	assert.False(t, result.DetailedResults[3].IsCorrect)
	assert.Equal(t, 0, result.DetailedResults[2].MarksAwarded)

	assert.Equal(t, []string{messaging.QueueReviewCreated, messaging.QueueReviewResolved}, f.pub.published())
}

func TestReviewService_ApproveChangesOnlyDisputedQuestion(t *testing.T) {
	f := newReviewFixture(t, true)
	ctx := context.Background()
	results := repository.NewTestResultRepository(f.db)

	stored, err := results.FindByID(ctx, f.resultID)
	require.NoError(t, err)
	before := stored.ToGrading()

	req := f.open(t)
	_, err = f.svc.ResolveRequest(ctx, req.ID, dto.ReviewResolveDTO{Decision: "approved", ReviewerID: "teacher-1", NewMarks: intPtr(1)})
	require.NoError(t, err)

	stored, err = results.FindByID(ctx, f.resultID)
	require.NoError(t, err)
	after := stored.ToGrading()

	require.Len(t, after.DetailedResults, len(before.DetailedResults))
	for i, d := range after.DetailedResults {
		if d.QuestionID == "q4" {
			assert.Equal(t, 1, d.MarksAwarded)
			want := before.DetailedResults[i]
			want.MarksAwarded = 1
			assert.Equal(t, want, d)
			continue
		}
		assert.Equal(t, before.DetailedResults[i], d, d.QuestionID)
	}
	assert.Equal(t, before.Answers, after.Answers)
	assert.Equal(t, 50, before.Score)
	assert.Equal(t, 75, after.Score)
	assert.Equal(t, 3, after.MarksAwarded)
}

func TestReviewService_ApproveWithoutRecompute(t *testing.T) {
	f := newReviewFixture(t, false)
	ctx := context.Background()
	req := f.open(t)

	_, err := f.svc.ResolveRequest(ctx, req.ID, dto.ReviewResolveDTO{Decision: "approved", ReviewerID: "teacher-1", NewMarks: intPtr(1)})
	require.NoError(t, err)

	result, err := repository.NewTestResultRepository(f.db).FindByID(ctx, f.resultID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DetailedResults[3].MarksAwarded)
	assert.Equal(t, 50, result.Score)
}

func TestReviewService_ResolveTwiceFails(t *testing.T) {
	f := newReviewFixture(t, true)
	ctx := context.Background()
	req := f.open(t)

	_, err := f.svc.ResolveRequest(ctx, req.ID, dto.ReviewResolveDTO{Decision: "rejected", ReviewerID: "teacher-1"})
	require.NoError(t, err)

	var stateErr *grading.InvalidStateError
	_, err = f.svc.ResolveRequest(ctx, req.ID, dto.ReviewResolveDTO{Decision: "approved", ReviewerID: "teacher-2", NewMarks: intPtr(1)})
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, grading.ReviewRejected, stateErr.Status)

	stored, err := repository.NewReviewRequestRepository(f.db).FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", stored.ReviewedBy)

	result, err := repository.NewTestResultRepository(f.db).FindByID(ctx, f.resultID)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)

	// A rejected request no longer blocks a new one.
	f.open(t)
}

func TestReviewService_OverrideAboveMaxRollsBack(t *testing.T) {
	f := newReviewFixture(t, true)
	ctx := context.Background()
	req := f.open(t)

	var verr *grading.ValidationError
	_, err := f.svc.ResolveRequest(ctx, req.ID, dto.ReviewResolveDTO{Decision: "approved", ReviewerID: "teacher-1", NewMarks: intPtr(2)})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "new_marks", verr.Field)

	stored, err := repository.NewReviewRequestRepository(f.db).FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(grading.ReviewPending), stored.Status)

	result, err := repository.NewTestResultRepository(f.db).FindByID(ctx, f.resultID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.DetailedResults[3].MarksAwarded)
	assert.Equal(t, 50, result.Score)
}

func TestReviewService_ResolveMissing(t *testing.T) {
	f := newReviewFixture(t, true)
	_, err := f.svc.ResolveRequest(context.Background(), "missing", dto.ReviewResolveDTO{Decision: "approved", ReviewerID: "teacher-1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewService_ListRequests(t *testing.T) {
	f := newReviewFixture(t, true)
	ctx := context.Background()
	f.open(t)

	mine, err := f.svc.ListRequests(ctx, dto.Caller{UserID: "student-1", Role: dto.RoleStudent})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.svc.ListRequests(ctx, dto.Caller{UserID: "student-2", Role: dto.RoleStudent})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := f.svc.ListRequests(ctx, dto.Caller{UserID: "teacher-1", Role: dto.RoleTeacher})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
