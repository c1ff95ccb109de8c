package entity

const (
	OutcomeRunning = "running"
	OutcomeDraw    = "draw"
	OutcomeWin     = "win"
)

// Outcome classifies a board. It is derived from the board and never stored.
type Outcome struct {
	Kind   string `json:"kind"`
	Winner Mark   `json:"winner,omitempty"`
}

func Running() Outcome {
	return Outcome{Kind: OutcomeRunning}
}

func Draw() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func Win(mark Mark) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: mark}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

func (that Outcome) String() string {
	if that.Kind == OutcomeWin {
		return "win(" + string(that.Winner) + ")"
	}
	return that.Kind
}
