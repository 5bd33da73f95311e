package models

// Stats — агрегированная статистика по пользователям и подпискам,
// доступная только привилегированным учётным записям.
type Stats struct {
	TotalUsers    int            `json:"total_users"`
	Subscriptions map[string]int `json:"subscriptions"`
}
