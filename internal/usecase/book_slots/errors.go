package book_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slots: invalid input data")

	// ErrTooManySlots возвращается, когда выбрано больше слотов, чем разрешено за один запрос
	ErrTooManySlots = errors.New("book_slots: too many slots selected")

	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = errors.New("book_slots: field not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slots: internal error")
)
