package shared

import "errors"

var (
	ErrInvalidSuit        = errors.New("invalid suit")
	ErrInvalidFace        = errors.New("invalid face")
	ErrInvalidSeat        = errors.New("invalid seat")
	ErrInvalidSeating     = errors.New("seating must be two pairs")
	ErrNilTrick           = errors.New("nil trick")
	ErrTrickComplete      = errors.New("trick already complete")
	ErrSeatAlreadyPlayed  = errors.New("seat already played in this trick")
	ErrDuplicateCard      = errors.New("card already played in this trick")
	ErrUnresolvedTrick    = errors.New("trick has no winner yet")
	ErrTrumpMismatch      = errors.New("trick trump does not match hand trump")
	ErrHandCapacity       = errors.New("hand already holds all tricks")
	ErrTrickCountMismatch = errors.New("wrong number of tricks in hand")
	ErrUnscoredTrick      = errors.New("hand contains an unscored trick")
	ErrHandAlreadyScored  = errors.New("hand already scored")
	ErrHandNotScored      = errors.New("hand not scored yet")
)
