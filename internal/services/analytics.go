package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
)

type AnalyticsServiceInterface interface {
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
	GetRequestsByCategory(ctx context.Context) ([]dto.CategoryCountDTO, error)
	GetRequestsByTeam(ctx context.Context) ([]dto.TeamNameCountDTO, error)
}

type AnalyticsService struct {
	analyticsRepo repositories.AnalyticsRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	logger        *zap.Logger
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	logger *zap.Logger,
) AnalyticsServiceInterface {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		teamRepo:      teamRepo,
		logger:        logger,
	}
}

// GetDashboard пересчитывает все показатели на каждый вызов — это
// моментальный снимок без кэша. Независимые счётчики выполняются
// параллельно.
func (s *AnalyticsService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	result := &dto.DashboardDTO{
		StageCounts: make(map[string]int64, len(constants.RequestStages)),
		TeamCounts:  make([]dto.TeamCountDTO, 0),
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	// Счётчики по каждому из четырёх этапов — нули заполняются всегда.
	for _, stage := range constants.RequestStages {
		stage := stage
		addTask(func() error {
			count, err := s.analyticsRepo.CountRequestsByStage(ctx, stage)
			if err != nil {
				return err
			}
			mu.Lock()
			result.StageCounts[stage] = count
			mu.Unlock()
			return nil
		})
	}

	// По командам — один count-запрос на команду, O(команд).
	addTask(func() error {
		teams, err := s.teamRepo.GetTeams(ctx, constants.MaxListLimit)
		if err != nil {
			return err
		}
		counts := make([]dto.TeamCountDTO, 0, len(teams))
		for _, team := range teams {
			count, err := s.analyticsRepo.CountRequestsByTeamID(ctx, team.ID)
			if err != nil {
				return err
			}
			counts = append(counts, dto.TeamCountDTO{ID: team.ID, Name: team.Name, Count: count})
		}
		mu.Lock()
		result.TeamCounts = counts
		mu.Unlock()
		return nil
	})

	addTask(func() (err error) {
		today := time.Now().UTC().Format("2006-01-02")
		result.OverdueCount, err = s.analyticsRepo.CountOverdue(ctx, today)
		return
	})
	addTask(func() (err error) {
		result.TotalEquipment, err = s.analyticsRepo.CountEquipments(ctx)
		return
	})
	addTask(func() (err error) {
		result.UnusableEquipment, err = s.analyticsRepo.CountUnusableEquipments(ctx)
		return
	})
	addTask(func() (err error) {
		result.TotalRequests, err = s.analyticsRepo.CountRequests(ctx)
		return
	})
	addTask(func() (err error) {
		result.RequestTypes.Corrective, err = s.analyticsRepo.CountRequestsByType(ctx, constants.RequestTypeCorrective)
		return
	})
	addTask(func() (err error) {
		result.RequestTypes.Preventive, err = s.analyticsRepo.CountRequestsByType(ctx, constants.RequestTypePreventive)
		return
	})

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("ошибка сборки дашборда", zap.Error(errs[0]))
		return nil, errs[0]
	}
	return result, nil
}

func (s *AnalyticsService) GetRequestsByCategory(ctx context.Context) ([]dto.CategoryCountDTO, error) {
	return s.analyticsRepo.GroupRequestsByCategory(ctx)
}

func (s *AnalyticsService) GetRequestsByTeam(ctx context.Context) ([]dto.TeamNameCountDTO, error) {
	return s.analyticsRepo.GroupRequestsByTeamName(ctx)
}
