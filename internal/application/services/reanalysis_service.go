package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

// ReanalysisBatchSize is how many pending members are fetched per page
const ReanalysisBatchSize = 100

// ReanalysisSummary reports one backfill run
type ReanalysisSummary struct {
	TotalProcessed int
	SuccessCount   int
	SkippedCount   int
	FailureCount   int
}

// MemberAnalyzer analyzes one member's latest submission
type MemberAnalyzer interface {
	AnalyzeAndRecommend(ctx context.Context, memberID string) (*entities.RecommendationResult, error)
}

// ReanalysisService recomputes health records for members whose latest
// submission has never been analyzed
type ReanalysisService struct {
	answers     repositories.AnswerRepository
	analyzer    MemberAnalyzer
	workerCount int
	batchSize   int
}

// NewReanalysisService creates a new reanalysis service
func NewReanalysisService(answers repositories.AnswerRepository, analyzer MemberAnalyzer, workers int) *ReanalysisService {
	if workers <= 0 {
		workers = 1
	}
	return &ReanalysisService{
		answers:     answers,
		analyzer:    analyzer,
		workerCount: workers,
		batchSize:   ReanalysisBatchSize,
	}
}

// BackfillAll walks every pending member once. Members whose submission cannot
// be analyzed for lack of demographics are counted as skipped.
func (s *ReanalysisService) BackfillAll(ctx context.Context) (*ReanalysisSummary, error) {
	var processed, success, skipped, failure int64

	idChan := make(chan string, s.batchSize)
	var g errgroup.Group

	g.Go(func() error {
		defer close(idChan)
		return s.produce(ctx, idChan)
	})

	for i := 0; i < s.workerCount; i++ {
		g.Go(func() error {
			for id := range idChan {
				_, err := s.analyzer.AnalyzeAndRecommend(ctx, id)
				atomic.AddInt64(&processed, 1)
				switch {
				case err == nil:
					atomic.AddInt64(&success, 1)
				case apperrors.TypeOf(err) == apperrors.ErrorTypeUnprocessable:
					atomic.AddInt64(&skipped, 1)
					log.Debug().Str("member_id", id).Msg("Skipping member with incomplete demographics")
				default:
					atomic.AddInt64(&failure, 1)
					log.Error().Err(err).Str("member_id", id).Msg("Failed to reanalyze member")
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ReanalysisSummary{
		TotalProcessed: int(processed),
		SuccessCount:   int(success),
		SkippedCount:   int(skipped),
		FailureCount:   int(failure),
	}, nil
}

func (s *ReanalysisService) produce(ctx context.Context, idChan chan<- string) error {
	after := ""
	for {
		ids, err := s.answers.ListMembersPendingAnalysis(ctx, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("failed to list members pending analysis: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		for _, id := range ids {
			select {
			case idChan <- id:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if len(ids) < s.batchSize {
			return nil
		}
		after = ids[len(ids)-1]
	}
}
