package block_slot

import (
	"time"

	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	StartAt time.Time `json:"startAt" validate:"required"`
	EndAt   time.Time `json:"endAt" validate:"required"`
}

// BlockResponse HTTP response model. Данные заявителя не отдаются.
type BlockResponse struct {
	ID      int64  `json:"id"`
	FieldID int64  `json:"fieldId"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Status  string `json:"status"`
}

func FromUseCaseResponse(resp *createBooking.Response) *BlockResponse {
	return &BlockResponse{
		ID:      resp.ID,
		FieldID: resp.FieldID,
		StartAt: resp.StartAt.UTC().Format(time.RFC3339),
		EndAt:   resp.EndAt.UTC().Format(time.RFC3339),
		Status:  resp.Status,
	}
}
