package datastructure

import "time"

// Session is one navigated route together with its traffic override state.
type Session struct {
	ID        string    `json:"id"`
	Route     Route     `json:"route"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
