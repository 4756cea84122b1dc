package models

type EventType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
