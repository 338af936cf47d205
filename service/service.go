package service

import (
	"gorm.io/gorm"
)

var MyService Repository

type Repository interface {
	Event() EventService
}

func NewService(db *gorm.DB) Repository {
	return &store{
		event: NewEventService(db),
	}
}

type store struct {
	event EventService
}

func (c *store) Event() EventService {
	return c.event
}
