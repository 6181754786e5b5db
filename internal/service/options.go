package service

import (
	"log"
	"time"
)

const DefaultMaxCapacity = 50

type StatusPolicy string

const (
	// PolicyPermissive lets any status be overwritten with any other. Default.
	PolicyPermissive StatusPolicy = "permissive"
	// PolicyStrict enforces the status transition table.
	PolicyStrict StatusPolicy = "strict"
)

// EventPublisher emits domain events. A nil publisher disables events.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Options struct {
	MaxCapacity int
	Policy      StatusPolicy
	Location    *time.Location
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxCapacity <= 0 {
		o.MaxCapacity = DefaultMaxCapacity
	}
	if o.Policy == "" {
		o.Policy = PolicyPermissive
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Publishing failures never fail the operation that produced the event.
func emit(p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		log.Printf("[Events] failed to publish %s: %v", routingKey, err)
	}
}

// StatusChange is the result of a status update.
type StatusChange struct {
	ID       string `json:"id"`
	Previous string `json:"previous_status,omitempty"`
	Status   string `json:"status"`
}
