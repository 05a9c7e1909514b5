package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями пользователя: доступность, отмена, просмотр
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CheckAvailability true, если ни одно неотменённое бронирование поля не пересекает [start, end)
func (s *Service) CheckAvailability(ctx context.Context, fieldID int64, start, end time.Time) (bool, error) {
	if fieldID <= 0 {
		return false, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	if !end.After(start) {
		return false, ErrInvalidRange
	}

	overlap, err := s.bookingRepo.HasOverlap(ctx, fieldID, start.UTC(), end.UTC())
	if err != nil {
		s.logger.Error("CheckAvailability: repository error for field=%d: %v", fieldID, err)
		return false, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrInternal, err)
	}

	return !overlap, nil
}

// CancelAsRequester отменяет бронирование, если его создал requesterID.
// false означает "не найдено или не ваше": причины намеренно не различаются.
// Повторная отмена своего бронирования возвращает true и ничего не меняет.
func (s *Service) CancelAsRequester(ctx context.Context, requesterID, bookingID int64) (bool, error) {
	s.logger.Info("CancelAsRequester: cancelling booking id=%d by user=%d", bookingID, requesterID)

	if requesterID <= 0 || bookingID <= 0 {
		return false, nil
	}

	cancelled, err := s.bookingRepo.CancelByRequester(ctx, bookingID, requesterID)
	if err != nil {
		s.logger.Error("CancelAsRequester: repository error for booking id=%d: %v", bookingID, err)
		return false, fmt.Errorf("%w: CancelAsRequester - repository error: %v", ErrInternal, err)
	}

	if !cancelled {
		s.logger.Warn("CancelAsRequester: booking id=%d not cancelled for user=%d", bookingID, requesterID)
		return false, nil
	}

	s.logger.Info("CancelAsRequester: successfully cancelled booking id=%d", bookingID)
	return true, nil
}

// CancelAsOwner отменяет бронирование, если его поле принадлежит объекту ownerID
func (s *Service) CancelAsOwner(ctx context.Context, ownerID, bookingID int64) (bool, error) {
	s.logger.Info("CancelAsOwner: cancelling booking id=%d by owner=%d", bookingID, ownerID)

	if ownerID <= 0 || bookingID <= 0 {
		return false, nil
	}

	cancelled, err := s.bookingRepo.CancelByOwner(ctx, bookingID, ownerID)
	if err != nil {
		s.logger.Error("CancelAsOwner: repository error for booking id=%d: %v", bookingID, err)
		return false, fmt.Errorf("%w: CancelAsOwner - repository error: %v", ErrInternal, err)
	}

	if !cancelled {
		s.logger.Warn("CancelAsOwner: booking id=%d not cancelled for owner=%d", bookingID, ownerID)
		return false, nil
	}

	s.logger.Info("CancelAsOwner: successfully cancelled booking id=%d", bookingID)
	return true, nil
}

// GetByID бронирование, видимое только его заявителю.
// Чужое бронирование отдаётся как ErrBookingNotFound, так же как отмена не раскрывает чужие ID.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	if id <= 0 || userID <= 0 {
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.RequesterID == nil || *booking.RequesterID != userID {
		s.logger.Warn("GetByID: booking id=%d is not visible to user=%d", id, userID)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя (новые сначала).
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	if status != nil {
		filtered := make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == *status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}
