package courtboard

import (
	"time"
)

// debugStats holds per-frame timing. Only populated when Surface.debug is
// true.
type debugStats struct {
	phase   string // "update" or "draw"
	elapsed time.Duration
	pieces  int
	strokes int
	tweens  int
}

// debugLog writes frame timing at debug level.
func (s *Surface) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"phase", stats.phase,
		"elapsed", stats.elapsed,
		"pieces", stats.pieces,
		"strokes", stats.strokes,
		"tweens", stats.tweens,
	)
}

// debugCheckDisposed reports use of a disposed node. Only called in debug
// mode.
func (s *Surface) debugCheckDisposed(n *Node, op string) bool {
	if !n.disposed {
		return false
	}
	s.logger.Error("disposed node used", "op", op, "node", n.Name)
	return true
}
