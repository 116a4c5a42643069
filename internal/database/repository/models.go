package repository

import "time"

// Turn is one archived question/answer exchange.
type Turn struct {
	ID        string
	ChatID    string
	Question  string
	Answer    string
	Mode      string
	CreatedAt time.Time
}
