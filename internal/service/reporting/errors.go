package reporting

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reporting: invalid input data")

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("reporting: facility not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет объектом
	ErrAccessDenied = errors.New("reporting: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reporting: internal error")
)
