package apperror

import "errors"

// validation errors: detected before any mutation, state is left untouched.
var (
	ErrWrongStake         = errors.New("deposit does not match the stake")
	ErrGameFull           = errors.New("both seats are already taken")
	ErrGameAlreadyActive  = errors.New("game is already active")
	ErrGameNotActive      = errors.New("game is not active")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrIndexOutOfRange    = errors.New("cell index out of range")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrInvalidParticipant = errors.New("participant must be an individual account")
	ErrAlreadySeated      = errors.New("account already holds a seat in this game")
	ErrInvalidStake       = errors.New("stake is outside the accepted range")
)

var ErrDecode = errors.New("malformed call payload")

var ErrTransferFailed = errors.New("transfer failed")

// ErrInsufficientFunds is raised before the deposit is staged and counts as validation.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvariantViolation marks an internal fault. It is never expected while the
// protocol contracts hold and must abort the call instead of guessing a result.
var ErrInvariantViolation = errors.New("invariant violation")

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrConcurrentUpdate   = errors.New("game was modified concurrently")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnknownAccountKind = errors.New("unknown account kind")
	ErrJournalDisabled    = errors.New("settlement journal is disabled")
)

var validation = []error{
	ErrWrongStake,
	ErrGameFull,
	ErrGameAlreadyActive,
	ErrGameNotActive,
	ErrNotYourTurn,
	ErrIndexOutOfRange,
	ErrCellOccupied,
	ErrInvalidParticipant,
	ErrAlreadySeated,
	ErrInvalidStake,
	ErrInsufficientFunds,
	ErrUnknownAccountKind,
}

// IsValidation reports whether err is a caller mistake that left state unchanged.
func IsValidation(err error) bool {
	for _, target := range validation {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// Error kinds reported to clients.
const (
	KindValidation   = "validation"
	KindDecode       = "decode"
	KindNotFound     = "not_found"
	KindUnauthorized = "unauthorized"
	KindConflict     = "conflict"
	KindSettlement   = "settlement"
	KindUnavailable  = "unavailable"
	KindInternal     = "internal"
)

// Kind classifies err for transports.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrDecode):
		return KindDecode
	case IsValidation(err):
		return KindValidation
	case errors.Is(err, ErrGameNotFound), errors.Is(err, ErrAccountNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrConcurrentUpdate):
		return KindConflict
	case errors.Is(err, ErrTransferFailed):
		return KindSettlement
	case errors.Is(err, ErrJournalDisabled):
		return KindUnavailable
	default:
		return KindInternal
	}
}
