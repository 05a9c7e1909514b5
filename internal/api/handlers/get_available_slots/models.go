package get_available_slots

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string          `json:"date"`
	FieldID             int64           `json:"fieldId"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	Slots               []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	StartAt   string          `json:"startAt"`
	EndAt     string          `json:"endAt"`
	Available bool            `json:"available"`
	Price     decimal.Decimal `json:"price"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			StartAt:   slot.StartAt.UTC().Format(time.RFC3339),
			EndAt:     slot.EndAt.UTC().Format(time.RFC3339),
			Available: slot.Available,
			Price:     slot.Price,
		}
	}

	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		FieldID:             resp.FieldID,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(fieldID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		FieldID: fieldID,
		Date:    date,
	}, nil
}
