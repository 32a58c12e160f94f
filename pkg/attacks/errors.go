package attacks

import (
	"errors"
	"log/slog"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
)

var (
	// ErrInvalidKeySpace is returned for an empty key or a non positive key length.
	ErrInvalidKeySpace = errors.New("invalid key space")

	// ErrInvalidScore is returned when a score or a minimum score is outside [0, 1].
	ErrInvalidScore = errors.New("invalid score")

	// ErrInsufficientData is returned when the input is too short for the attack.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrCloneMismatch is returned when a cloned generator does not reproduce
	// the outputs it was cloned from.
	ErrCloneMismatch = errors.New("cloned generator does not match its outputs")
)

// SetLogger routes the progress messages of the attacks to l.
func SetLogger(l *slog.Logger) { logx.Set(l) }
