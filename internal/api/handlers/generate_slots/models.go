package generate_slots

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	generateSlots "github.com/avdmitr/YMS-SlotService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	DockIDs  []int64 `json:"dock_ids,omitempty"`
	ObjectID *int64  `json:"object_id,omitempty"`
	DateFrom string  `json:"date_from"` // "2025-06-02"
	DateTo   string  `json:"date_to"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	DocksProcessed int   `json:"docks_processed"`
	Created        int64 `json:"created"`
	Skipped        int64 `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest() (*generateSlots.Request, error) {
	dateFrom, err := time.Parse(domain.DateFormat, r.DateFrom)
	if err != nil {
		return nil, err
	}

	dateTo, err := time.Parse(domain.DateFormat, r.DateTo)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		DockIDs:  r.DockIDs,
		ObjectID: r.ObjectID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		DocksProcessed: resp.DocksProcessed,
		Created:        resp.Created,
		Skipped:        resp.Skipped,
	}
}
