package game

import "time"

// ActionKind labels what a combat log entry records.
type ActionKind string

const (
	ActionAttack  ActionKind = "attack"
	ActionHeal    ActionKind = "heal"
	ActionSpecial ActionKind = "special"
	ActionStart   ActionKind = "start"
	ActionEnd     ActionKind = "end"
	ActionDeath   ActionKind = "death"
)

// LogEntry is an immutable record of one combat state change. The engine
// emits one entry per attack, heal, mark, mutation, shield event, spore hit
// and death, in resolution order.
type LogEntry struct {
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	ActorID   uint       `json:"actor_id,omitempty"`
	TargetID  uint       `json:"target_id,omitempty"`
	Damage    int        `json:"damage,omitempty"`
	Healing   int        `json:"healing,omitempty"`
	IsSpecial bool       `json:"is_special,omitempty"`
	Kind      ActionKind `json:"kind"`
}
