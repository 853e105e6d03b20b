package rewards

import "errors"

var (
	ErrInvalidAmount       = errors.New("rewards: invalid amount")
	ErrInsufficientBalance = errors.New("rewards: insufficient balance")
	ErrMaxSupplyReached    = errors.New("rewards: max supply reached")
	ErrCooldownActive      = errors.New("rewards: cooldown active")
	ErrInvalidAction       = errors.New("rewards: invalid action type")
)
