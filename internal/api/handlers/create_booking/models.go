package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FieldID          int64     `json:"fieldId" validate:"required,gt=0"`
	StartAt          time.Time `json:"startAt" validate:"required"` // RFC3339
	EndAt            time.Time `json:"endAt" validate:"required"`   // RFC3339
	ManualClientName *string   `json:"manualClientName,omitempty" validate:"omitempty,max=100"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64           `json:"id"`
	FieldID          int64           `json:"fieldId"`
	UserID           *int64          `json:"userId,omitempty"`
	StartAt          string          `json:"startAt"`
	EndAt            string          `json:"endAt"`
	Status           string          `json:"status"`
	Price            decimal.Decimal `json:"price"`
	ManualClientName *string         `json:"manualClientName,omitempty"`
	CreatedAt        string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:       userID,
		FieldID:      r.FieldID,
		StartAt:      r.StartAt.UTC(),
		EndAt:        r.EndAt.UTC(),
		ManualClient: r.ManualClientName,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		FieldID:          resp.FieldID,
		UserID:           resp.RequesterID,
		StartAt:          resp.StartAt.UTC().Format(time.RFC3339),
		EndAt:            resp.EndAt.UTC().Format(time.RFC3339),
		Status:           resp.Status,
		Price:            resp.Price,
		ManualClientName: resp.ManualClient,
		CreatedAt:        resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
