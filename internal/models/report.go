package models

import (
	"encoding/json"
	"time"
)

// Report представляет загруженный пользователем аналитический отчёт.
// Поля CodData и AllData — непрозрачные JSON‑структуры, сервер их не разбирает.
type Report struct {
	ID         int64           `json:"id"`
	UserEmail  string          `json:"-"`
	Timestamp  time.Time       `json:"timestamp"`
	CodData    json.RawMessage `json:"cod_data"`
	AllData    json.RawMessage `json:"all_data"`
	HubName    string          `json:"hub_name"`
	UploadedAt time.Time       `json:"uploaded_at"`
}
