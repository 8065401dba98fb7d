package get_available_dates

import "time"

// Request модель запроса на получение доступных дат
// Нулевые From/To означают окно по умолчанию: с начала текущего месяца
// до конца месяца +AvailableDatesWindowMonths
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	ServiceID int64     // ID услуги
	From      time.Time // Начало окна (опционально)
	To        time.Time // Конец окна (опционально)
}

// Response модель ответа со списком доступных дат
type Response struct {
	ServiceID int64
	MasterID  int64
	From      time.Time
	To        time.Time

	// Dates даты, на которые по оценке емкости есть хотя бы один свободный слот,
	// по возрастанию
	Dates []time.Time
}
