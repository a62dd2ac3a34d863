package models

import "time"

// EventRecord is one row of the hot tub event log.
type EventRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"` // server-assigned at write time
	Pump      string    `json:"pump"`
	Heater    string    `json:"heater"`
	Tub       string    `json:"tub"`   // °F as reported by the controller
	Solar     string    `json:"solar"` // °F as reported by the controller
	Delta     string    `json:"delta,omitempty"`
	Action    string    `json:"action"`
	Note      string    `json:"note"`
	Duration  string    `json:"duration,omitempty"` // e.g. "2 hours 15 minutes"
}

// EventFields are the caller-supplied values of an event. Missing ones are empty.
type EventFields struct {
	Pump     string
	Heater   string
	Tub      string
	Solar    string
	Delta    string
	Action   string
	Note     string
	Duration string
}
