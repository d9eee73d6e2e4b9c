package recommendationsrv

import (
	"context"
	"strings"
	"time"

	"github.com/compasshq/compass/guidance/profile"
	"github.com/compasshq/compass/guidance/recommendation"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/compasshq/compass/pkg/logx"
	"github.com/google/uuid"
)

const (
	cachedBatchSize = 3
	runLockTTL      = 60 * time.Second
)

// Service runs the recommendation pipeline: cache check, profile fetch,
// resume extraction, generation, parsing, persistence, fallback. One call is
// one sequential run; there is no shared run state between requests.
type Service struct {
	recommendationRepo recommendation.Repository
	profileRepo        profile.Repository
	completer          recommendation.Completer
	extractor          recommendation.Extractor
	runLock            recommendation.RunLock
}

// NewService creates a new recommendation pipeline service. runLock may be
// nil; the pipeline then runs unguarded.
func NewService(
	recommendationRepo recommendation.Repository,
	profileRepo profile.Repository,
	completer recommendation.Completer,
	extractor recommendation.Extractor,
	runLock recommendation.RunLock,
) *Service {
	return &Service{
		recommendationRepo: recommendationRepo,
		profileRepo:        profileRepo,
		completer:          completer,
		extractor:          extractor,
		runLock:            runLock,
	}
}

// Generate runs the pipeline for one user. It returns generated, cached or
// default records; the result is never empty. Only a missing user identifier
// fails outright.
func (s *Service) Generate(ctx context.Context, req recommendation.GenerateRequest) (*recommendation.GenerateResponse, error) {
	if req.UserID.IsEmpty() {
		return nil, recommendation.ErrMissingUserID()
	}

	if !req.ForceRefresh {
		if cached := s.readCache(ctx, req.UserID); len(cached) > 0 {
			return &recommendation.GenerateResponse{Recommendations: cached}, nil
		}
	}

	if s.runLock != nil {
		release, acquired := s.runLock.Acquire(ctx, req.UserID, runLockTTL)
		if acquired {
			defer release()
		} else {
			// Duplicate concurrent generation is tolerated; the lock only
			// narrows the window, so an unacquired lock never blocks a run.
			logx.Warnf("recommendation run for user %s proceeding without lock", req.UserID)
		}
	}

	snapshot := s.fetchSnapshot(ctx, req)

	if snapshot.IsEmpty() && strings.TrimSpace(snapshot.ResumeText) == "" {
		// Nothing to analyze: defaults, no model call.
		return &recommendation.GenerateResponse{Recommendations: recommendation.DefaultSet()}, nil
	}

	records, err := s.generate(ctx, snapshot)
	if err != nil {
		logx.Errorf("recommendation generation fell back to defaults for user %s: %v", req.UserID, err)
		return &recommendation.GenerateResponse{Recommendations: recommendation.DefaultSet()}, nil
	}

	s.persist(ctx, req.UserID, records)

	return &recommendation.GenerateResponse{Recommendations: records}, nil
}

// Cached retrieves the most recent persisted batch without generating
func (s *Service) Cached(ctx context.Context, userID kernel.UserID) (*recommendation.GenerateResponse, error) {
	if userID.IsEmpty() {
		return nil, recommendation.ErrMissingUserID()
	}
	if cached := s.readCache(ctx, userID); len(cached) > 0 {
		return &recommendation.GenerateResponse{Recommendations: cached}, nil
	}
	return &recommendation.GenerateResponse{Recommendations: recommendation.DefaultSet()}, nil
}

// SelectRole records the role the user picked; role_title is the stable key
// linking back to a recommendation record.
func (s *Service) SelectRole(ctx context.Context, userID kernel.UserID, roleTitle string) error {
	if userID.IsEmpty() {
		return recommendation.ErrMissingUserID()
	}
	if strings.TrimSpace(roleTitle) == "" {
		return recommendation.ErrMissingRoleTitle()
	}
	return s.profileRepo.SaveSelectedRole(ctx, userID, roleTitle)
}

// readCache returns up to cachedBatchSize most recent rows; read failures
// count as a cache miss.
func (s *Service) readCache(ctx context.Context, userID kernel.UserID) []recommendation.Recommendation {
	cached, err := s.recommendationRepo.ListRecentByUser(ctx, userID, cachedBatchSize)
	if err != nil {
		logx.Warnf("recommendation cache read failed for user %s: %v", userID, err)
		return nil
	}
	return cached
}

// fetchSnapshot assembles the run input. Profile fetch failure is non-fatal:
// the run continues with an empty snapshot. The request's resume URL takes
// precedence over the stored link.
func (s *Service) fetchSnapshot(ctx context.Context, req recommendation.GenerateRequest) profile.Snapshot {
	var snapshot profile.Snapshot
	resumeURL := req.ResumeURL

	prof, err := s.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		logx.Warnf("profile fetch failed for user %s, continuing with empty snapshot: %v", req.UserID, err)
	} else {
		if prof.Discovery != nil {
			snapshot = *prof.Discovery
		}
		if resumeURL == "" {
			resumeURL = prof.ResumeLink.String()
		}
	}

	if resumeURL != "" {
		text, err := s.extractor.Extract(ctx, resumeURL)
		if err != nil {
			// Extraction is recoverable: generate from discovery data alone.
			logx.Warnf("resume extraction failed for user %s: %v", req.UserID, err)
		} else if strings.TrimSpace(text) != "" {
			snapshot.ResumeText = text
			if err := s.profileRepo.SaveResumeText(ctx, req.UserID, text); err != nil {
				logx.Warnf("resume text write-back failed for user %s: %v", req.UserID, err)
			}
		}
	}

	return snapshot
}

// generate assembles the prompt, invokes the model and parses the response
func (s *Service) generate(ctx context.Context, snapshot profile.Snapshot) ([]recommendation.Recommendation, error) {
	raw, err := s.completer.Complete(ctx, systemPrompt, buildUserContent(snapshot))
	if err != nil {
		return nil, recommendation.ErrGenerationFailed().WithCause(err)
	}

	return parseRecommendations(raw)
}

// persist appends each record as a new row. Per-record failures are logged
// and never abort the remaining inserts or the run.
func (s *Service) persist(ctx context.Context, userID kernel.UserID, records []recommendation.Recommendation) {
	now := time.Now()
	for i := range records {
		records[i].ID = kernel.NewRecommendationID(uuid.NewString())
		records[i].UserID = userID
		records[i].CreatedAt = now

		if err := s.recommendationRepo.Insert(ctx, &records[i]); err != nil {
			logx.Errorf("failed to persist recommendation %q for user %s: %v", records[i].RoleTitle, userID, err)
		}
	}
}
