package cancel_booking

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgUnauthorized     = "пользователь не аутентифицирован"
	msgBookingNotFound  = "бронирование не найдено или не может быть отменено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, "PATCH /bookings/{id}/cancel", h.service.CancelAsRequester)
}

// HandleAsOwner PATCH /api/v1/owner/bookings/{bookingId}/cancel
func (h *Handler) HandleAsOwner(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, "PATCH /owner/bookings/{id}/cancel", h.service.CancelAsOwner)
}

// cancel не различает "не найдено" и "чужое": в обоих случаях 404
func (h *Handler) cancel(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	cancelFn func(ctx context.Context, actorID, bookingID int64) (bool, error),
) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	cancelled, err := cancelFn(r.Context(), userID, bookingID)
	if err != nil {
		h.logger.Error("%s - Failed to cancel booking: booking_id=%d, user_id=%d, error=%v", route, bookingID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	if !cancelled {
		h.logger.Warn("%s - Booking not cancelled: booking_id=%d, user_id=%d", route, bookingID, userID)
		handlers.RespondNotFound(w, msgBookingNotFound)
		return
	}

	h.logger.Info("%s - Booking cancelled successfully: booking_id=%d, user_id=%d", route, bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, &CancelBookingResponse{ID: bookingID, Cancelled: true})
}
