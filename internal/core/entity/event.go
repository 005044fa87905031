package entity

import "time"

// Event событие календаря, принадлежащее пользователю
type Event struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Meeting"`
	Description string    `json:"description" db:"description" example:"Meeting with Projector"`
	DateStart   time.Time `json:"date_start" db:"date_start" example:"2016-07-22T14:05:29Z"`
	DateFinish  time.Time `json:"date_finish" db:"date_finish" example:"2016-07-22T15:05:29Z"`
	UserID      int64     `json:"user_id" db:"user_id" example:"1"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// EventRequest тело запроса на создание или обновление события.
// Даты передаются строками, чтобы отличать пустое значение от некорректного.
type EventRequest struct {
	Name        *string `json:"name,omitempty" example:"Meeting"`
	Description *string `json:"description,omitempty" example:"Meeting with Projector"`
	DateStart   *string `json:"date_start,omitempty" example:"2016-07-22 14:05:29"`
	DateFinish  *string `json:"date_finish,omitempty" example:"2016-07-22 15:05:29"`
}
