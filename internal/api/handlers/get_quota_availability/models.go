package get_quota_availability

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	quotaAvailability "github.com/avdmitr/YMS-SlotService/internal/usecase/quota_availability"
)

// QuotaAvailabilityResponse HTTP response model: остатки квот по датам
type QuotaAvailabilityResponse struct {
	Days []DayAvailability `json:"days"`
}

// DayAvailability остатки квот одной даты.
// UsedVolume заполняется и для даты без квот: клиент показывает
// израсходованный объём независимо от ограничения.
type DayAvailability struct {
	Date        string          `json:"date"`
	Constrained bool            `json:"constrained"`
	UsedVolume  float64         `json:"used_volume"`
	Quotas      []QuotaResponse `json:"quotas"`
}

// QuotaResponse остаток по одной квоте
type QuotaResponse struct {
	QuotaID          int64    `json:"quota_id"`
	TotalVolume      *float64 `json:"total_volume"`
	UsedVolume       float64  `json:"used_volume"`
	RemainingVolume  *float64 `json:"remaining_volume"`
	AllowOverbooking bool     `json:"allow_overbooking"`
	TransportTypeIDs []int64  `json:"transport_type_ids"`
}

// FromUseCaseResponse конвертирует ответ use case за одну дату
func FromUseCaseResponse(date time.Time, resp *quotaAvailability.Response) DayAvailability {
	day := DayAvailability{
		Date:        date.Format(domain.DateFormat),
		Constrained: resp.Constrained,
		UsedVolume:  resp.Used,
		Quotas:      make([]QuotaResponse, 0, len(resp.Quotas)),
	}

	for _, q := range resp.Quotas {
		day.Quotas = append(day.Quotas, QuotaResponse{
			QuotaID:          q.QuotaID,
			TotalVolume:      q.Volume,
			UsedVolume:       q.Used,
			RemainingVolume:  q.Remaining,
			AllowOverbooking: q.AllowOverbooking,
			TransportTypeIDs: q.TransportTypeIDs,
		})
	}

	return day
}
