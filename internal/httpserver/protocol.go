// internal/httpserver/protocol.go
//
// Websocket frames exchanged with the browser.
//
// Client → server (field "type"):
//   start   {difficulty, daily?, seconds?}  start a round; restarts a running one
//   drag    {value, side, index}            a drag began on a card
//   drop    {value, side, index}            the drag ended on a card
//   cancel                                  the drag ended off any card
//   giveUp                                  end the round now
//   back                                    discard the round, back to selection
//   state                                   just send the current state
//
// Server → client:
//   state   {state, outcome?}   after every handled frame, tick and signal expiry
//   error   {error}             malformed frame, rate limit or rejected start

package httpserver

import "github.com/robalobadob/catch-the-antonym/internal/game"

const (
	msgStart  = "start"
	msgDrag   = "drag"
	msgDrop   = "drop"
	msgCancel = "cancel"
	msgGiveUp = "giveUp"
	msgBack   = "back"
	msgState  = "state"
	msgError  = "error"
)

// inbound is any client frame; unused fields stay zero.
type inbound struct {
	Type       string `json:"type"`
	Difficulty string `json:"difficulty,omitempty"`
	Daily      bool   `json:"daily,omitempty"`
	Seconds    int    `json:"seconds,omitempty"`
	Value      string `json:"value,omitempty"`
	Side       string `json:"side,omitempty"`
	Index      int    `json:"index"`
}

type outbound struct {
	Type    string           `json:"type"`
	State   *game.View       `json:"state,omitempty"`
	Outcome game.DropOutcome `json:"outcome,omitempty"`
	Error   string           `json:"error,omitempty"`
}
