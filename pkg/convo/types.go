// Package convo implements conversation state inference and dialogue control
// for the front-desk agent. State is never stored: every decision is re-derived
// from the caller-supplied transcript plus the new message, so identical input
// always produces an identical decision.
package convo

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered conversation history, oldest turn first.
// It is owned by the caller and passed whole on every request.
type Transcript []Turn

// LastAssistant returns the most recent assistant turn, or false if none exists.
func (t Transcript) LastAssistant() (Turn, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role == RoleAssistant {
			return t[i], true
		}
	}
	return Turn{}, false
}

// UserTurns returns the user turns in chronological order.
func (t Transcript) UserTurns() []Turn {
	turns := make([]Turn, 0, len(t))
	for _, turn := range t {
		if turn.Role == RoleUser {
			turns = append(turns, turn)
		}
	}
	return turns
}

// Platform is the delivery target collected during gathering.
type Platform string

const (
	PlatformNone  Platform = ""
	PlatformPhone Platform = "phone"
	PlatformWeb   Platform = "website"
)

// SlotSet holds the three pieces of information the dialogue collects before
// offering handoff. Derived fresh from a transcript on every call; once a slot
// is assigned within a derivation pass it is never overwritten by a
// lower-priority source in that same pass.
type SlotSet struct {
	AppType  string
	Features string
	Platform Platform
}

// Complete reports whether enough has been gathered to offer handoff.
func (s SlotSet) Complete() bool {
	return s.Features != "" && s.Platform != PlatformNone
}
