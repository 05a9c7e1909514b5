package domain

// Значения по умолчанию
const (
	DefaultRecentActivityLimit = 5
	MaxRecentActivityLimit     = 50
	DefaultMaxSlotsPerBatch    = 48
)

// Ограничения входных данных
const (
	MaxManualClientLength = 100
)

// Форматы времени
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Виды бронирований для метрик и логов
const (
	KindClient    = "client"
	KindTechnical = "technical"
)
