package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// insertBatchSize максимальный размер пачки для одного INSERT
const insertBatchSize = 500

// UseCase use case генерации временных слотов по расписаниям доков
type UseCase struct {
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	slotRepo     SlotRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		logger:       logger,
	}
}

// Execute выполняет генерацию слотов.
// Генерация идемпотентна: уже существующие слоты пропускаются, их
// занятость не меняется. Повторный запуск на том же периоде безопасен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: docks=%v, object=%v, from=%s, to=%s",
		req.DockIDs, req.ObjectID, req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем список доков
	dockIDs, err := uc.resolveDocks(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Загружаем расписания
	schedules, err := uc.scheduleRepo.ListByDocks(ctx, dockIDs)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to load schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedules: %v", ErrInternal, err)
	}

	scheduleByDockAndDay := make(map[int64]map[int]*domain.WorkSchedule, len(dockIDs))
	for _, s := range schedules {
		if scheduleByDockAndDay[s.DockID] == nil {
			scheduleByDockAndDay[s.DockID] = make(map[int]*domain.WorkSchedule, 7)
		}
		scheduleByDockAndDay[s.DockID][s.DayOfWeek] = s
	}

	// 4. Строим слоты: каждый день периода, каждый док, окна по 30 минут
	var toInsert []*domain.TimeSlot
	for date := domain.DateOnly(req.DateFrom); !date.After(req.DateTo); date = date.AddDate(0, 0, 1) {
		day := domain.DayOfWeek(date)
		for _, dockID := range dockIDs {
			schedule, ok := scheduleByDockAndDay[dockID][day]
			if !ok || !schedule.IsWorkingDay {
				continue
			}
			for _, w := range buildWindows(schedule) {
				toInsert = append(toInsert, &domain.TimeSlot{
					DockID:    dockID,
					SlotDate:  date,
					StartTime: w.start,
					EndTime:   w.end,
					Capacity:  schedule.EffectiveCapacity(),
				})
			}
		}
	}

	// 5. Вставляем пачками, существующие пропускаются
	var created int64
	for start := 0; start < len(toInsert); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(toInsert) {
			end = len(toInsert)
		}
		inserted, err := uc.slotRepo.InsertMissing(ctx, toInsert[start:end])
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to insert slots: %v", err)
			return nil, fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
		}
		created += inserted
	}

	skipped := int64(len(toInsert)) - created
	uc.logger.Info("GenerateSlots: docks=%d, created=%d, skipped=%d", len(dockIDs), created, skipped)

	return &Response{
		DocksProcessed: len(dockIDs),
		Created:        created,
		Skipped:        skipped,
	}, nil
}

// resolveDocks возвращает ID доков для генерации: явный список из
// запроса или все активные доки объекта.
func (uc *UseCase) resolveDocks(ctx context.Context, req *Request) ([]int64, error) {
	if len(req.DockIDs) > 0 {
		for _, id := range req.DockIDs {
			if _, err := uc.catalogRepo.GetDock(ctx, id); err != nil {
				if errors.Is(err, catalogRepo.ErrDockNotFound) {
					uc.logger.Warn("GenerateSlots: dock id=%d not found", id)
					return nil, fmt.Errorf("%w: id=%d", ErrDockNotFound, id)
				}
				uc.logger.Error("GenerateSlots: failed to get dock id=%d: %v", id, err)
				return nil, fmt.Errorf("%w: failed to get dock: %v", ErrInternal, err)
			}
		}
		return req.DockIDs, nil
	}

	docks, err := uc.catalogRepo.ListDocks(ctx, domain.DockFilter{ObjectID: req.ObjectID})
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list docks for object=%d: %v", *req.ObjectID, err)
		return nil, fmt.Errorf("%w: failed to list docks: %v", ErrInternal, err)
	}
	if len(docks) == 0 {
		uc.logger.Warn("GenerateSlots: object=%d has no active docks", *req.ObjectID)
		return nil, ErrNoDocks
	}

	dockIDs := make([]int64, 0, len(docks))
	for _, d := range docks {
		dockIDs = append(dockIDs, d.ID)
	}
	return dockIDs, nil
}

type window struct {
	start, end types.TimeString
}

// buildWindows нарезает рабочий день на 30-минутные окна.
// Окно, пересекающее перерыв, не создаётся; генерация продолжается
// с конца перерыва. Последнее окно обязано целиком помещаться в
// рабочие часы.
func buildWindows(s *domain.WorkSchedule) []window {
	var windows []window

	cur := *s.WorkStart
	for {
		end, err := cur.AddMinutes(domain.SlotStepMinutes)
		// AddMinutes заворачивает через полночь: завернувшееся окно
		// в рабочий день уже не помещается
		if err != nil || !cur.IsBefore(end) || s.WorkEnd.IsBefore(end) {
			break
		}
		if s.InBreak(cur, domain.SlotStepMinutes) {
			cur = *s.BreakEnd
			continue
		}
		windows = append(windows, window{start: cur, end: end})
		cur = end
	}

	return windows
}
