package repository

const (
	gamePrefix    = "game:"
	escrowPrefix  = "escrow:"
	accountPrefix = "account:"
	walletPrefix  = "wallet:"
)

func gameKey(id string) string {
	return gamePrefix + id
}

// escrowKey holds the funds held for a game, in minor units.
func escrowKey(gameID string) string {
	return escrowPrefix + gameID
}

func accountKey(id string) string {
	return accountPrefix + id
}

// walletKey holds the spendable funds of an account, in minor units.
func walletKey(accountID string) string {
	return walletPrefix + accountID
}
