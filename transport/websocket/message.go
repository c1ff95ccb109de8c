package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

const (
	actionJoin   = "game:join"
	actionPlace  = "game:place"
	actionState  = "game:state"
	actionUpdate = "game:update"
	actionError  = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Request struct {
	GameID string  `json:"game_id"`
	Amount *uint64 `json:"amount,omitempty"`
	Cell   *uint8  `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game    *entity.Game    `json:"game,omitempty"`
	Held    entity.Amount   `json:"held"`
	Outcome *entity.Outcome `json:"outcome,omitempty"`
	Status  string          `json:"status,omitempty"`
	Payouts []entity.Payout `json:"payouts,omitempty"`
	Error   string          `json:"error,omitempty"`
	Kind    string          `json:"kind,omitempty"`
}
