package monitoring

import (
	"github.com/rs/zerolog/log"
)

// Alert surfaces an operational problem (logs for now). Used for storage
// write failures, which are recoverable: the in-memory state stays
// authoritative and the next successful persist catches up.
func Alert(message string, labels map[string]string) {
	log.Error().
		Str("alert", message).
		Fields(labels).
		Msg("ALERT: storage issue detected")
}
