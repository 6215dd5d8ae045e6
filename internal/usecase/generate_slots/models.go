package generate_slots

import "time"

// Request модель запроса на генерацию слотов.
// Указывается либо список доков, либо объект целиком.
type Request struct {
	DockIDs  []int64   // ID доков (опционально)
	ObjectID *int64    // ID объекта, все его активные доки (опционально)
	DateFrom time.Time // Начало периода (включительно)
	DateTo   time.Time // Конец периода (включительно)
}

// Response модель ответа генерации
type Response struct {
	DocksProcessed int   // Количество обработанных доков
	Created        int64 // Количество созданных слотов
	Skipped        int64 // Количество пропущенных (уже существовали)
}
