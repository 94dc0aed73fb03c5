package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateRangeQuery intervalo de fechas YYYY-MM-DD, ambos extremos inclusivos.
type DateRangeQuery struct {
	From string `query:"from" json:"from"`
	To   string `query:"to" json:"to"`
}
