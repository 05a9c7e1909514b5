package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidRange возвращается, когда конец интервала не позже начала
	ErrInvalidRange = errors.New("create_booking: end must be after start")

	// ErrPastBooking возвращается, когда начало интервала в прошлом
	ErrPastBooking = errors.New("create_booking: booking start is in the past")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующим бронированием.
	// Одинаково для конфликта, найденного проверкой, и для проигранной гонки.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = errors.New("create_booking: field not found")

	// ErrFieldInactive возвращается, когда поле не принимает бронирования
	ErrFieldInactive = errors.New("create_booking: field is not active")

	// ErrFieldClosed возвращается, когда поле закрыто в этот день
	ErrFieldClosed = errors.New("create_booking: field is closed on this date")

	// ErrOutsideOpeningHours возвращается, когда интервал выходит за часы работы
	ErrOutsideOpeningHours = errors.New("create_booking: outside of opening hours")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxDaysInAdvance
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrAccessDenied возвращается, когда операция доступна только владельцу поля
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
