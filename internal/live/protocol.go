package live

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// ElementRef identifies a chart element the same way the engine keys
// selection: series (or slice) ordinal plus point index.
type ElementRef struct {
	Series int `json:"series"`
	Index  int `json:"index"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PresencePayload carries what a peer is doing on the shared chart: where
// their cursor is, which element they hover, and what they have selected.
type PresencePayload struct {
	Cursor      *CursorPos   `json:"cursor,omitempty"`
	Hover       *ElementRef  `json:"hover,omitempty"`
	Selection   []ElementRef `json:"selection,omitempty"`
	DisplayName string       `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Chart sync
	TypeChartState = "chart.state"

	// Chart update message types
	TypeChartSubmit    = "chart.submit"
	TypeChartAck       = "chart.ack"
	TypeChartNack      = "chart.nack"
	TypeChartBroadcast = "chart.broadcast"
)

// --- Chart update types ---

// Update is a mutation of a board's chart options. Replace carries a whole
// options document; the narrower types patch one field and leave the rest.
type Update struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`

	// For chart.replace
	Options json.RawMessage `json:"options,omitempty"`

	// For chart.setData
	Data json.RawMessage `json:"data,omitempty"`

	// For chart.setKind
	Kind string `json:"kind,omitempty"`

	// For chart.setLabels / chart.setColors
	Labels []string `json:"labels,omitempty"`
	Colors []string `json:"colors,omitempty"`

	// For chart.setFlag
	Flag  string `json:"flag,omitempty"`
	Value *bool  `json:"value,omitempty"`
}

// UpdateSubmitPayload is the payload for chart.submit messages
type UpdateSubmitPayload struct {
	Update Update `json:"update"`
}

// UpdateAckPayload is the payload for chart.ack messages
type UpdateAckPayload struct {
	UpdateID        string `json:"updateId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// UpdateNackPayload is the payload for chart.nack messages
type UpdateNackPayload struct {
	UpdateID string `json:"updateId"`
	Reason   string `json:"reason"`
}

// UpdateBroadcastPayload is the payload for chart.broadcast messages
type UpdateBroadcastPayload struct {
	Update    Update `json:"update"`
	UserID    string `json:"userId"`
	ServerSeq int64  `json:"serverSeq"`
}

// WelcomePayload is sent to a client right after it joins a room.
type WelcomePayload struct {
	BoardID   string          `json:"boardId"`
	ClientID  string          `json:"clientId"`
	Options   json.RawMessage `json:"options"`
	ServerSeq int64           `json:"serverSeq"`
}
