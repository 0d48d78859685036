package initialize_payment

// Request модель запроса на инициализацию оплаты
type Request struct {
	UserID    int64
	BookingID int64
}

// Response ссылка на страницу оплаты
type Response struct {
	AuthorizationURL string
	Reference        string
	AccessCode       string
	Amount           int64
	Currency         string
}

// Config параметры платежей
type Config struct {
	CallbackURL string
}
