package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/usecase"
)

func decodeRequest(msg *Message) (*Request, error) {
	var req Request
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrDecode, err)
	}

	if req.GameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", apperror.ErrDecode)
	}

	return &req, nil
}

func (that *Server) handleJoin(ctx context.Context, c *client, msg *Message) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return err
	}
	if req.Amount == nil {
		return fmt.Errorf("%w: amount is required", apperror.ErrDecode)
	}

	view, err := that.games.Join(ctx, req.GameID, c.accountID, entity.Amount(*req.Amount))
	if err != nil {
		return err
	}

	payload := viewPayload(view)
	that.hub.notifySeats(view.Game, c, payload)

	return c.send(msg.Action, payload)
}

func (that *Server) handlePlace(ctx context.Context, c *client, msg *Message) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return err
	}
	if req.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrDecode)
	}

	result, err := that.games.Place(ctx, req.GameID, c.accountID, int(*req.Cell))
	if err != nil {
		return err
	}

	payload := viewPayload(&result.GameView)
	payload.Payouts = result.Payouts
	that.hub.notifySeats(result.Game, c, payload)

	return c.send(msg.Action, payload)
}

func (that *Server) handleState(ctx context.Context, c *client, msg *Message) error {
	req, err := decodeRequest(msg)
	if err != nil {
		return err
	}

	view, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return err
	}

	return c.send(msg.Action, viewPayload(view))
}

func viewPayload(view *usecase.GameView) ResponsePayload {
	outcome := view.Outcome

	return ResponsePayload{
		Game:    view.Game,
		Held:    view.Held,
		Outcome: &outcome,
		Status:  view.Status,
	}
}
