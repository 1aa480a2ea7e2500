package models

import (
	"fmt"
	"time"
)

// VariantStatus is the lifecycle state of one variant slot.
// Transitions are one-directional: idle → generating → {ready|error}.
type VariantStatus string

const (
	VariantIdle       VariantStatus = "idle"
	VariantGenerating VariantStatus = "generating"
	VariantReady      VariantStatus = "ready"
	VariantError      VariantStatus = "error"
)

// Terminal reports whether no further automatic transition occurs.
func (s VariantStatus) Terminal() bool {
	return s == VariantReady || s == VariantError
}

// CanTransitionTo enforces the monotonic state machine.
func (s VariantStatus) CanTransitionTo(next VariantStatus) bool {
	switch s {
	case VariantIdle:
		return next == VariantGenerating
	case VariantGenerating:
		return next == VariantReady || next == VariantError
	default:
		// ready and error are terminal
		return false
	}
}

// Variant slot numbering. Exactly three slots per session.
const (
	FirstVariantSlot = 1
	VariantCount     = 3
)

// Variant is one of the three independently generated candidate menus
// for a session. A ready variant always carries a restaurant name, a
// non-empty item list and an image URL; an error variant carries an
// error message and no image URL.
type Variant struct {
	Slot           int           `json:"slot"`
	Status         VariantStatus `json:"status"`
	RestaurantName string        `json:"restaurantName,omitempty"`
	Items          []MenuItem    `json:"items,omitempty"`
	ImageURL       string        `json:"imageUrl,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// Clone returns a deep copy so store snapshots never alias the items
// slice a task runner may still hold.
func (v *Variant) Clone() Variant {
	out := *v
	if v.Items != nil {
		out.Items = make([]MenuItem, len(v.Items))
		copy(out.Items, v.Items)
	}
	return out
}

// Session groups the three variants produced from one generate-variants
// request. Owned by the session store; evicted by TTL.
type Session struct {
	ID        string           `json:"sessionId"`
	CreatedAt time.Time        `json:"created_at"`
	Variants  map[int]*Variant `json:"-"`
}

// NewSession builds a session with all slots already in the generating
// state, so the first poll after creation never observes idle slots.
func NewSession(id string) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Variants:  make(map[int]*Variant, VariantCount),
	}
	for slot := FirstVariantSlot; slot < FirstVariantSlot+VariantCount; slot++ {
		s.Variants[slot] = &Variant{Slot: slot, Status: VariantGenerating}
	}
	return s
}

// AllReady is true iff every slot is terminal (ready OR error). A
// session with two errors and one ready variant still reports true:
// clients stop polling on "all finished", not "all succeeded".
func (s *Session) AllReady() bool {
	for _, v := range s.Variants {
		if !v.Status.Terminal() {
			return false
		}
	}
	return true
}

// SessionSnapshot is the poll read model: one immutable view of the
// three slots plus the aggregate readiness signal.
type SessionSnapshot struct {
	SessionID string  `json:"sessionId"`
	Variant1  Variant `json:"variant1"`
	Variant2  Variant `json:"variant2"`
	Variant3  Variant `json:"variant3"`
	AllReady  bool    `json:"allReady"`
}

// Snapshot deep-copies the session into the poll view.
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		SessionID: s.ID,
		Variant1:  s.Variants[1].Clone(),
		Variant2:  s.Variants[2].Clone(),
		Variant3:  s.Variants[3].Clone(),
		AllReady:  s.AllReady(),
	}
}

// ValidateVariant checks the invariants a terminal variant must hold
// before it is written to the store.
func ValidateVariant(v *Variant) error {
	switch v.Status {
	case VariantReady:
		if v.RestaurantName == "" || len(v.Items) == 0 || v.ImageURL == "" {
			return fmt.Errorf("ready variant %d missing name, items or image", v.Slot)
		}
	case VariantError:
		if v.Error == "" {
			return fmt.Errorf("error variant %d missing error detail", v.Slot)
		}
		if v.ImageURL != "" {
			return fmt.Errorf("error variant %d must not carry an image", v.Slot)
		}
	}
	return nil
}
