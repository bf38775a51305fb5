package telemetry

// Kind names a discrete domain notification emitted to the presentation
// collaborator.
type Kind string

const (
	KindEventTriggered Kind = "event_triggered"
	KindEventOutcome   Kind = "event_outcome"
	KindArrival        Kind = "arrival"
	KindShipDestroyed  Kind = "ship_destroyed"
	KindGameOver       Kind = "game_over"
	KindMilestone      Kind = "milestone"
	KindAgeEvent       Kind = "age_event"
	KindBirthday       Kind = "birthday"
	KindGarnishment    Kind = "garnishment"
	KindDebtPaid       Kind = "debt_paid"
	KindIntelExpired   Kind = "intel_expired"
	KindHullAlert      Kind = "hull_alert"
)

// Notice is one emitted notification: what happened, on which in-game day,
// and a message ready for display. Metadata carries structured extras as
// JSON.
type Notice struct {
	ID       int    `json:"id"`
	Kind     Kind   `json:"kind"`
	Day      int    `json:"day"`
	Message  string `json:"message"`
	Metadata string `json:"metadata,omitempty"`
}
