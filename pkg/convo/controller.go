package convo

import (
	"fmt"

	"frontdesk/pkg/logx"
)

// Fixed response texts. These are forced (never generated) so handoff timing
// stays deterministic and client-side tests can match them verbatim.
const (
	handoffAckText     = "Great, I'll let the team know!"
	handoffConfirmText = "Want me to pass this to the team?"

	fallbackPlatform = "phone"
	fallbackFeatures = "custom app"
)

// DecisionKind says how the response text is produced.
type DecisionKind int

const (
	// DecisionForced responses carry fixed text from the controller and
	// bypass the generation capability entirely.
	DecisionForced DecisionKind = iota
	// DecisionInstructed responses delegate to the generation capability with
	// a one-task instruction prepended to the user's message.
	DecisionInstructed
)

func (k DecisionKind) String() string {
	if k == DecisionForced {
		return "forced"
	}
	return "instructed"
}

// Decision is the controller's verdict for one chat turn.
type Decision struct {
	Kind DecisionKind

	// Response is the full forced text, marker included when a summary is
	// attached. Empty for instructed decisions.
	Response string

	// Instruction is prepended to the user message before generation.
	// Empty for forced decisions.
	Instruction string

	HandoffReady bool
	Summary      string

	// Slots carries the derived slot set for logging and diagnostics.
	Slots SlotSet
}

// Controller re-derives conversation state from the transcript on every call
// and picks the next action. It holds no mutable state, so a single instance
// is safe for concurrent use.
type Controller struct {
	logger *logx.Logger
}

// NewController creates a dialogue controller.
func NewController() *Controller {
	return &Controller{logger: logx.NewLogger("controller")}
}

// BuildSummary renders the handoff summary from the current slots, with
// literal fallbacks for anything still empty.
func BuildSummary(slots SlotSet) string {
	platform := string(slots.Platform)
	if platform == "" {
		platform = fallbackPlatform
	}
	features := slots.Features
	if features == "" {
		features = fallbackFeatures
	}
	return fmt.Sprintf("App for %s - %s", platform, features)
}

// Decide evaluates the decision table top to bottom; the first matching rule
// fires. Calling it twice with the same transcript and message yields the
// same decision, which keeps client retries safe.
func (c *Controller) Decide(transcript Transcript, message string) Decision {
	isNewRequest := IsNewBuildRequest(message)
	slots := Extract(transcript, message, isNewRequest)
	pending := HandoffPending(transcript)

	d := c.decide(transcript, message, isNewRequest, slots, pending)
	c.logger.Debug("decision=%s handoff_ready=%v slots={app_type=%q features=%q platform=%q} pending=%v",
		d.Kind, d.HandoffReady, slots.AppType, slots.Features, slots.Platform, pending)
	return d
}

func (c *Controller) decide(_ Transcript, message string, isNewRequest bool, slots SlotSet, pending bool) Decision {
	// Rule 1: user confirmed a pending handoff. An affirmative without a
	// pending confirmation falls through and is treated as ordinary content.
	if IsAffirmative(message) && pending {
		summary := BuildSummary(slots)
		return Decision{
			Kind:         DecisionForced,
			Response:     handoffAckText + "\n\n" + ComposeMarker(summary),
			HandoffReady: true,
			Summary:      summary,
			Slots:        slots,
		}
	}

	// Rule 2: a fresh build request restarts gathering from the app type.
	if isNewRequest {
		subject := "the app"
		if slots.AppType != "" {
			subject = "the " + slots.AppType + " app"
		}
		return Decision{
			Kind:        DecisionInstructed,
			Instruction: fmt.Sprintf("[INSTRUCTION: You are a receptionist. ONE short sentence. Ask what %s should do.]", subject),
			Slots:       slots,
		}
	}

	// Rules 3 and 4: enough is known to offer handoff. Rule 4 rechecks the
	// raw message for a platform keyword as a safety net for the turn that
	// answers the platform question itself.
	if slots.Complete() || slots.Platform != PlatformNone || mentionsPlatform(message) {
		summary := BuildSummary(slots)
		return Decision{
			Kind:         DecisionForced,
			Response:     handoffConfirmText,
			HandoffReady: true,
			Summary:      summary,
			Slots:        slots,
		}
	}

	// Rule 5: features known, platform missing. Exactly one fixed question.
	if slots.Features != "" {
		return Decision{
			Kind:        DecisionInstructed,
			Instruction: `[INSTRUCTION: Say ONLY this: "Phone app or website?" - nothing else]`,
			Slots:       slots,
		}
	}

	// Rule 6: nothing gathered yet.
	return Decision{
		Kind:        DecisionInstructed,
		Instruction: "[INSTRUCTION: You are a receptionist. ONE short sentence. Ask what the app should do.]",
		Slots:       slots,
	}
}
