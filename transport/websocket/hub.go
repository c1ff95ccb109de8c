package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// hub tracks live connections per account so game updates reach both seats.
type hub struct {
	logger *slog.Logger

	mutex   sync.RWMutex
	clients map[string]map[*client]struct{}
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]map[*client]struct{}),
	}
}

func (that *hub) register(c *client) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	if that.clients[c.accountID] == nil {
		that.clients[c.accountID] = make(map[*client]struct{})
	}
	that.clients[c.accountID][c] = struct{}{}
}

func (that *hub) unregister(c *client) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	delete(that.clients[c.accountID], c)
	if len(that.clients[c.accountID]) == 0 {
		delete(that.clients, c.accountID)
	}
}

// notifySeats pushes payload to every connection of both seats except skip.
func (that *hub) notifySeats(game *entity.Game, skip *client, payload ResponsePayload) {
	that.mutex.RLock()
	var targets []*client
	for _, accountID := range []string{game.SeatX, game.SeatO} {
		for c := range that.clients[accountID] {
			if c != skip {
				targets = append(targets, c)
			}
		}
	}
	that.mutex.RUnlock()

	for _, c := range targets {
		if err := c.send(actionUpdate, payload); err != nil {
			that.logger.Warn("failed to push game update", "account_id", c.accountID, "error", err)
		}
	}
}
