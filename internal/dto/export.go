package dto

import "time"

// ExportRequest asks for a rendered copy of the current timetable view.
type ExportRequest struct {
	Format   string `json:"format" validate:"required,oneof=csv pdf"`
	Axis     string `json:"axis" validate:"omitempty,oneof=all room section teacher course"`
	Key      string `json:"key"`
	Building string `json:"building"`
	Title    string `json:"title"`
}

// ExportResponse returns the signed download link for a generated file.
type ExportResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expiresAt"`
}
