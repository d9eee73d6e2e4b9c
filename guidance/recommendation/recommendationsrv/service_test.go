package recommendationsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/compasshq/compass/guidance/profile"
	"github.com/compasshq/compass/guidance/recommendation"
	"github.com/compasshq/compass/pkg/errx"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeRecommendationRepo struct {
	rows      []recommendation.Recommendation
	listErr   error
	insertErr error
	inserted  []recommendation.Recommendation
}

func (f *fakeRecommendationRepo) Insert(_ context.Context, rec *recommendation.Recommendation) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *rec)
	return nil
}

func (f *fakeRecommendationRepo) ListRecentByUser(_ context.Context, _ kernel.UserID, limit int) ([]recommendation.Recommendation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

type fakeProfileRepo struct {
	prof          *profile.Profile
	getErr        error
	saveTextErr   error
	savedText     string
	savedLink     kernel.BucketURL
	selectedRole  string
	selectRoleErr error
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, _ kernel.UserID) (*profile.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.prof, nil
}

func (f *fakeProfileRepo) SaveResumeText(_ context.Context, _ kernel.UserID, text string) error {
	if f.saveTextErr != nil {
		return f.saveTextErr
	}
	f.savedText = text
	return nil
}

func (f *fakeProfileRepo) SaveResumeLink(_ context.Context, _ kernel.UserID, link kernel.BucketURL) error {
	f.savedLink = link
	return nil
}

func (f *fakeProfileRepo) SaveSelectedRole(_ context.Context, _ kernel.UserID, roleTitle string) error {
	if f.selectRoleErr != nil {
		return f.selectRoleErr
	}
	f.selectedRole = roleTitle
	return nil
}

type fakeCompleter struct {
	out   string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.out, f.err
}

type fakeExtractor struct {
	out    string
	err    error
	calls  int
	gotURL string
}

func (f *fakeExtractor) Extract(_ context.Context, documentURL string) (string, error) {
	f.calls++
	f.gotURL = documentURL
	return f.out, f.err
}

type fakeRunLock struct {
	acquired bool
	calls    int
	released bool
}

func (f *fakeRunLock) Acquire(_ context.Context, _ kernel.UserID, _ time.Duration) (func(), bool) {
	f.calls++
	return func() { f.released = true }, f.acquired
}

// ============================================================================
// Helpers
// ============================================================================

const userID = kernel.UserID("user-1")

func profileWithSkills() *profile.Profile {
	return &profile.Profile{
		UserID: userID,
		Discovery: &profile.Snapshot{
			Skills: profile.Category{Selected: []string{"Go"}},
		},
	}
}

func newService(repo *fakeRecommendationRepo, profiles *fakeProfileRepo, completer *fakeCompleter, extractor *fakeExtractor) *Service {
	return NewService(repo, profiles, completer, extractor, nil)
}

// ============================================================================
// Tests
// ============================================================================

func TestGenerateRequiresUserID(t *testing.T) {
	svc := newService(&fakeRecommendationRepo{}, &fakeProfileRepo{}, &fakeCompleter{}, &fakeExtractor{})

	_, err := svc.Generate(context.Background(), recommendation.GenerateRequest{})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, recommendation.CodeMissingUserID, e.Code)
}

func TestGenerateReturnsCachedWithoutModelCall(t *testing.T) {
	cached := []recommendation.Recommendation{
		{RoleTitle: "A"}, {RoleTitle: "B"}, {RoleTitle: "C"},
	}
	repo := &fakeRecommendationRepo{rows: cached}
	completer := &fakeCompleter{out: threeRecords}
	svc := newService(repo, &fakeProfileRepo{prof: profileWithSkills()}, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, cached, resp.Recommendations)
	assert.Zero(t, completer.calls)
}

func TestGenerateCacheIsIdempotent(t *testing.T) {
	repo := &fakeRecommendationRepo{rows: []recommendation.Recommendation{{RoleTitle: "A"}}}
	svc := newService(repo, &fakeProfileRepo{prof: profileWithSkills()}, &fakeCompleter{}, &fakeExtractor{})

	first, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateForceRefreshSkipsCache(t *testing.T) {
	repo := &fakeRecommendationRepo{rows: []recommendation.Recommendation{{RoleTitle: "old"}}}
	completer := &fakeCompleter{out: threeRecords}
	svc := newService(repo, &fakeProfileRepo{prof: profileWithSkills()}, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID, ForceRefresh: true})
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.Len(t, resp.Recommendations, 3)
	assert.NotEqual(t, "old", resp.Recommendations[0].RoleTitle)
}

func TestGenerateEmptySignalReturnsDefaultsWithoutModelCall(t *testing.T) {
	completer := &fakeCompleter{out: threeRecords}
	profiles := &fakeProfileRepo{prof: &profile.Profile{UserID: userID, Discovery: &profile.Snapshot{}}}
	svc := newService(&fakeRecommendationRepo{}, profiles, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, recommendation.DefaultSet(), resp.Recommendations)
	assert.Zero(t, completer.calls)
}

func TestGenerateProfileFetchFailureFallsBackToDefaults(t *testing.T) {
	completer := &fakeCompleter{out: threeRecords}
	profiles := &fakeProfileRepo{getErr: errors.New("db down")}
	svc := newService(&fakeRecommendationRepo{}, profiles, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, recommendation.DefaultSet(), resp.Recommendations)
	assert.Zero(t, completer.calls)
}

func TestGenerateSuccessPersistsAndReturns(t *testing.T) {
	repo := &fakeRecommendationRepo{}
	completer := &fakeCompleter{out: "```json\n" + threeRecords + "\n```"}
	svc := newService(repo, &fakeProfileRepo{prof: profileWithSkills()}, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 3)
	require.Len(t, repo.inserted, 3)

	for _, rec := range repo.inserted {
		assert.Equal(t, userID, rec.UserID)
		assert.False(t, rec.ID.IsEmpty())
		assert.False(t, rec.CreatedAt.IsZero())
		assert.NotEmpty(t, rec.RoleTitle)
	}
}

func TestGenerateCompleterErrorFallsBack(t *testing.T) {
	repo := &fakeRecommendationRepo{}
	completer := &fakeCompleter{err: errors.New("model unavailable")}
	svc := newService(repo, &fakeProfileRepo{prof: profileWithSkills()}, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, recommendation.DefaultSet(), resp.Recommendations)
	// Fallback results are never persisted as user-specific rows.
	assert.Empty(t, repo.inserted)
}

func TestGenerateParseErrorFallsBack(t *testing.T) {
	repo := &fakeRecommendationRepo{}
	completer := &fakeCompleter{out: "sorry, I cannot produce JSON today"}
	svc := newService(repo, &fakeProfileRepo{prof: profileWithSkills()}, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, recommendation.DefaultSet(), resp.Recommendations)
	assert.Empty(t, repo.inserted)
}

func TestGeneratePersistenceFailureStillReturnsRecords(t *testing.T) {
	repo := &fakeRecommendationRepo{insertErr: errors.New("insert failed")}
	completer := &fakeCompleter{out: threeRecords}
	svc := newService(repo, &fakeProfileRepo{prof: profileWithSkills()}, completer, &fakeExtractor{})

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, 3)
}

func TestGenerateRequestResumeURLTakesPrecedence(t *testing.T) {
	prof := profileWithSkills()
	prof.ResumeLink = kernel.BucketURL("https://stored.example/resume.pdf")
	profiles := &fakeProfileRepo{prof: prof}
	extractor := &fakeExtractor{out: "resume body"}
	completer := &fakeCompleter{out: threeRecords}
	svc := newService(&fakeRecommendationRepo{}, profiles, completer, extractor)

	_, err := svc.Generate(context.Background(), recommendation.GenerateRequest{
		UserID:    userID,
		ResumeURL: "https://fresh.example/resume.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://fresh.example/resume.pdf", extractor.gotURL)
	// non-empty extracted text is written back to the profile
	assert.Equal(t, "resume body", profiles.savedText)
}

func TestGenerateUsesStoredResumeLink(t *testing.T) {
	prof := profileWithSkills()
	prof.ResumeLink = kernel.BucketURL("https://stored.example/resume.pdf")
	extractor := &fakeExtractor{out: "resume body"}
	svc := newService(&fakeRecommendationRepo{}, &fakeProfileRepo{prof: prof}, &fakeCompleter{out: threeRecords}, extractor)

	_, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "https://stored.example/resume.pdf", extractor.gotURL)
}

func TestGenerateExtractionFailureProceedsWithDiscoveryData(t *testing.T) {
	prof := profileWithSkills()
	prof.ResumeLink = kernel.BucketURL("https://stored.example/resume.pdf")
	extractor := &fakeExtractor{err: errors.New("ocr down")}
	completer := &fakeCompleter{out: threeRecords}
	svc := newService(&fakeRecommendationRepo{}, &fakeProfileRepo{prof: prof}, completer, extractor)

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.Len(t, resp.Recommendations, 3)
}

func TestGenerateResumeTextAloneTriggersGeneration(t *testing.T) {
	prof := &profile.Profile{
		UserID:     userID,
		Discovery:  &profile.Snapshot{},
		ResumeLink: kernel.BucketURL("https://stored.example/resume.pdf"),
	}
	extractor := &fakeExtractor{out: "ten years of plumbing"}
	completer := &fakeCompleter{out: threeRecords}
	svc := newService(&fakeRecommendationRepo{}, &fakeProfileRepo{prof: prof}, completer, extractor)

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.Len(t, resp.Recommendations, 3)
}

func TestGenerateProceedsWhenLockNotAcquired(t *testing.T) {
	lock := &fakeRunLock{acquired: false}
	completer := &fakeCompleter{out: threeRecords}
	svc := NewService(&fakeRecommendationRepo{}, &fakeProfileRepo{prof: profileWithSkills()}, completer, &fakeExtractor{}, lock)

	resp, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 1, lock.calls)
	assert.Equal(t, 1, completer.calls)
	assert.Len(t, resp.Recommendations, 3)
}

func TestGenerateReleasesAcquiredLock(t *testing.T) {
	lock := &fakeRunLock{acquired: true}
	svc := NewService(&fakeRecommendationRepo{}, &fakeProfileRepo{prof: profileWithSkills()}, &fakeCompleter{out: threeRecords}, &fakeExtractor{}, lock)

	_, err := svc.Generate(context.Background(), recommendation.GenerateRequest{UserID: userID})
	require.NoError(t, err)
	assert.True(t, lock.released)
}

func TestCachedFallsBackToDefaults(t *testing.T) {
	svc := newService(&fakeRecommendationRepo{}, &fakeProfileRepo{}, &fakeCompleter{}, &fakeExtractor{})

	resp, err := svc.Cached(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, recommendation.DefaultSet(), resp.Recommendations)
}

func TestSelectRole(t *testing.T) {
	profiles := &fakeProfileRepo{}
	svc := newService(&fakeRecommendationRepo{}, profiles, &fakeCompleter{}, &fakeExtractor{})

	require.NoError(t, svc.SelectRole(context.Background(), userID, "Data Analyst"))
	assert.Equal(t, "Data Analyst", profiles.selectedRole)

	err := svc.SelectRole(context.Background(), userID, "  ")
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, recommendation.CodeMissingRoleTitle, e.Code)

	err = svc.SelectRole(context.Background(), "", "Data Analyst")
	require.ErrorAs(t, err, &e)
	assert.Equal(t, recommendation.CodeMissingUserID, e.Code)
}
