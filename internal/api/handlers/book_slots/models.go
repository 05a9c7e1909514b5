package book_slots

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/book_slots"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Статусы интервала в ответе
const (
	RangeStatusCreated  = "created"
	RangeStatusConflict = "conflict"
	RangeStatusRejected = "rejected"
	RangeStatusError    = "error"
)

// BookSlotsRequest HTTP request model
type BookSlotsRequest struct {
	Date             string             `json:"date" validate:"required"` // YYYY-MM-DD
	Slots            []types.TimeString `json:"slots" validate:"required,min=1"`
	ManualClientName *string            `json:"manualClientName,omitempty" validate:"omitempty,max=100"`
}

// RangeResult исход одного непрерывного интервала
type RangeResult struct {
	StartAt   string           `json:"startAt"`
	EndAt     string           `json:"endAt"`
	Status    string           `json:"status"`
	BookingID *int64           `json:"bookingId,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Reason    string           `json:"reason,omitempty"`
}

// BookSlotsResponse HTTP response model
type BookSlotsResponse struct {
	Results     []RangeResult   `json:"results"`
	QuotedTotal decimal.Decimal `json:"quotedTotal"`
	Created     int             `json:"created"`
	Failed      int             `json:"failed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotsRequest) ToUseCaseRequest(userID, fieldID int64) (*bookSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &bookSlots.Request{
		UserID:       userID,
		FieldID:      fieldID,
		Date:         date,
		SlotStarts:   r.Slots,
		ManualClient: r.ManualClientName,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlots.Response) *BookSlotsResponse {
	results := make([]RangeResult, len(resp.Results))
	for i, res := range resp.Results {
		item := RangeResult{
			StartAt: res.StartAt.UTC().Format(time.RFC3339),
			EndAt:   res.EndAt.UTC().Format(time.RFC3339),
		}
		if res.Booking != nil {
			id := res.Booking.ID
			price := res.Booking.Price
			item.Status = RangeStatusCreated
			item.BookingID = &id
			item.Price = &price
		} else {
			item.Status, item.Reason = failureStatus(res.Err)
		}
		results[i] = item
	}

	return &BookSlotsResponse{
		Results:     results,
		QuotedTotal: resp.QuotedTotal,
		Created:     resp.Created,
		Failed:      resp.Failed,
	}
}

func failureStatus(err error) (string, string) {
	switch {
	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		return RangeStatusConflict, msgSlotNotAvailable
	case errors.Is(err, createBooking.ErrPastBooking):
		return RangeStatusRejected, msgPastBooking
	case errors.Is(err, createBooking.ErrFieldInactive):
		return RangeStatusRejected, msgFieldInactive
	case errors.Is(err, createBooking.ErrFieldClosed):
		return RangeStatusRejected, msgFieldClosed
	case errors.Is(err, createBooking.ErrOutsideOpeningHours):
		return RangeStatusRejected, msgOutsideHours
	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		return RangeStatusRejected, msgDateTooFar
	case errors.Is(err, createBooking.ErrAccessDenied):
		return RangeStatusRejected, msgManualClientDenied
	case errors.Is(err, createBooking.ErrInvalidInput), errors.Is(err, createBooking.ErrInvalidRange):
		return RangeStatusRejected, msgInvalidRequestBody
	default:
		return RangeStatusError, msgInternalRange
	}
}
