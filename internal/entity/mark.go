package entity

// Mark is the symbol a seat places on the board.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	// NoMark is what an empty cell holds. It is not a Mark value players can own.
	NoMark Mark = ""
)

// Other returns the opposing mark.
func (that Mark) Other() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}
