package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/domain/player"
	"github.com/sportorg/competition-api/internal/domain/registration"
)

const defaultAuditWorkerCount = 4

// EligibilityAuditInput selects what the audit walks. An empty
// CompetitionIDs list audits every competition.
type EligibilityAuditInput struct {
	CompetitionIDs []string
	MaxWorkers     int
}

// AuditFinding flags one registered player whose stored registration no
// longer passes the eligibility rules, typically after a cutoff or group
// change on the competition.
type AuditFinding struct {
	CompetitionID string
	ClubID        string
	GroupID       string
	PlayerID      string
	Status        eligibility.Status
	Reason        string
}

// AuditResult aggregates the audit run.
type AuditResult struct {
	CompetitionCount int
	CheckedCount     int
	UnknownCount     int
	Findings         []AuditFinding
	FailedCount      int
}

// workerPool is the slice of ants.Pool the audit needs.
type workerPool interface {
	Submit(task func()) error
	Release()
}

// EligibilityAuditService re-resolves every active registration against
// the current eligibility rules. It runs as an internal job, fanning out
// one task per competition over a bounded worker pool.
type EligibilityAuditService struct {
	competitionRepo  competition.Repository
	playerRepo       player.Repository
	registrationRepo registration.Repository
	rules            eligibility.Rules
	logger           *slog.Logger
	now              func() time.Time
	newPool          func(size int) (workerPool, error)
}

func NewEligibilityAuditService(
	competitionRepo competition.Repository,
	playerRepo player.Repository,
	registrationRepo registration.Repository,
	rules eligibility.Rules,
	logger *slog.Logger,
) *EligibilityAuditService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EligibilityAuditService{
		competitionRepo:  competitionRepo,
		playerRepo:       playerRepo,
		registrationRepo: registrationRepo,
		rules:            rules,
		logger:           logger,
		now:              time.Now,
		newPool: func(size int) (workerPool, error) {
			return ants.NewPool(size)
		},
	}
}

func (s *EligibilityAuditService) Run(ctx context.Context, input EligibilityAuditInput) (AuditResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityAuditService.Run")
	defer span.End()

	targets, err := s.resolveTargets(ctx, input.CompetitionIDs)
	if err != nil {
		return AuditResult{}, err
	}

	result := AuditResult{CompetitionCount: len(targets)}
	if len(targets) == 0 {
		return result, nil
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultAuditWorkerCount
	}
	if workerCount > len(targets) {
		workerCount = len(targets)
	}

	pool, err := s.newPool(workerCount)
	if err != nil {
		return AuditResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	now := s.now().UTC()
	findings := make(chan AuditFinding, 64)

	var checked atomic.Int32
	var unknown atomic.Int32
	var failed atomic.Int32

	var collector sync.WaitGroup
	collector.Add(1)
	go func() {
		defer collector.Done()
		for f := range findings {
			result.Findings = append(result.Findings, f)
		}
	}()

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			c, u, auditErr := s.auditCompetition(ctx, target, now, findings)
			checked.Add(int32(c))
			unknown.Add(int32(u))
			if auditErr != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "competition audit failed",
					"competition_id", target.ID,
					"error", auditErr,
				)
			}
		}); err != nil {
			workers.Done()
			// In-flight tasks still write to findings; the channel may
			// only close once they have drained.
			workers.Wait()
			close(findings)
			collector.Wait()
			return AuditResult{}, fmt.Errorf("submit audit task: %w", err)
		}
	}

	workers.Wait()
	close(findings)
	collector.Wait()

	sort.SliceStable(result.Findings, func(i, j int) bool {
		if result.Findings[i].CompetitionID != result.Findings[j].CompetitionID {
			return result.Findings[i].CompetitionID < result.Findings[j].CompetitionID
		}
		return result.Findings[i].PlayerID < result.Findings[j].PlayerID
	})

	result.CheckedCount = int(checked.Load())
	result.UnknownCount = int(unknown.Load())
	result.FailedCount = int(failed.Load())

	s.logger.InfoContext(ctx, "eligibility audit finished",
		"competitions", result.CompetitionCount,
		"checked", result.CheckedCount,
		"findings", len(result.Findings),
		"failed", result.FailedCount,
	)

	return result, nil
}

func (s *EligibilityAuditService) resolveTargets(ctx context.Context, competitionIDs []string) ([]competition.Competition, error) {
	if len(competitionIDs) == 0 {
		competitions, err := s.competitionRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list competitions: %w", err)
		}
		return competitions, nil
	}

	targets := make([]competition.Competition, 0, len(competitionIDs))
	for _, id := range competitionIDs {
		c, exists, err := s.competitionRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get competition=%s: %w", id, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, id)
		}
		targets = append(targets, c)
	}

	return targets, nil
}

// auditCompetition returns how many registrations were checked and how
// many resolved to an unknown verdict.
func (s *EligibilityAuditService) auditCompetition(
	ctx context.Context,
	c competition.Competition,
	now time.Time,
	findings chan<- AuditFinding,
) (int, int, error) {
	regs, err := s.registrationRepo.ListByScope(ctx, registration.Scope{CompetitionID: c.ID})
	if err != nil {
		return 0, 0, fmt.Errorf("list registrations: %w", err)
	}
	if len(regs) == 0 {
		return 0, 0, nil
	}

	ids := make([]string, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, 0, fmt.Errorf("get players by ids: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	checked := 0
	unknown := 0
	for _, r := range regs {
		if r.Status != registration.StatusActive {
			continue
		}
		p, ok := byID[r.PlayerID]
		if !ok {
			findings <- AuditFinding{
				CompetitionID: c.ID,
				ClubID:        r.ClubID,
				GroupID:       r.GroupID,
				PlayerID:      r.PlayerID,
				Status:        eligibility.StatusUnknown,
				Reason:        "player record not found",
			}
			continue
		}

		checked++
		verdict := eligibility.Resolve(p, c, now, s.rules)
		switch verdict.Status {
		case eligibility.StatusUnknown:
			unknown++
		case eligibility.StatusIneligible:
			findings <- AuditFinding{
				CompetitionID: c.ID,
				ClubID:        r.ClubID,
				GroupID:       r.GroupID,
				PlayerID:      r.PlayerID,
				Status:        verdict.Status,
				Reason:        verdict.Reason,
			}
		}
	}

	return checked, unknown, nil
}
