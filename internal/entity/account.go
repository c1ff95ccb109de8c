package entity

import "time"

const (
	KindIndividual = "individual"
	KindContract   = "contract"
)

// Account is a funds holder that can take a seat when it is an individual.
type Account struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func (that *Account) IsIndividual() bool {
	return that.Kind == KindIndividual
}

// Caller is the verified identity behind a single join or placement call.
type Caller struct {
	ID   string
	Kind string
}

func (that *Account) AsCaller() Caller {
	return Caller{ID: that.ID, Kind: that.Kind}
}

func (that Caller) IsIndividual() bool {
	return that.Kind == KindIndividual
}

// Payout is one transfer of held funds issued at settlement.
type Payout struct {
	To     string `json:"to"`
	Amount Amount `json:"amount"`
}
