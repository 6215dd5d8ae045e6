package models

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// Request модели

// JournalRequest запрос журнала слотов
type JournalRequest struct {
	Actor    domain.Actor
	DockID   *int64
	Date     *time.Time
	DateFrom time.Time
	DateTo   time.Time
}

// CreateSlotRequest запрос на ручное создание слота
type CreateSlotRequest struct {
	Actor     domain.Actor
	DockID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
}

// SetAvailabilityRequest запрос на включение/выключение слота
type SetAvailabilityRequest struct {
	Actor     domain.Actor
	Available bool
}

// DeleteRangeRequest запрос на удаление слотов дока за период
type DeleteRangeRequest struct {
	Actor    domain.Actor
	DockID   int64
	DateFrom time.Time
	DateTo   time.Time
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          int64  `json:"id"`
	DockID      int64  `json:"dock_id"`
	SlotDate    string `json:"slot_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Capacity    int    `json:"capacity"`
	Occupancy   int    `json:"occupancy"`
	Status      string `json:"status"`
	IsAvailable bool   `json:"is_available"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// DeleteRangeResponse результат удаления слотов за период
type DeleteRangeResponse struct {
	Deleted int64 `json:"deleted"`
}

// FromDomainSlot конвертирует domain модель в response
func FromDomainSlot(s *domain.TimeSlot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		DockID:      s.DockID,
		SlotDate:    s.SlotDate.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Capacity:    s.Capacity,
		Occupancy:   s.Occupancy,
		Status:      string(s.Status()),
		IsAvailable: s.IsAvailable,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainSlotList конвертирует список domain моделей в response
func FromDomainSlotList(slots []*domain.TimeSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
		Total: len(slots),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
