package raypick

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-cycle counts and timing.
// Only populated when Config.Debug is true.
type debugStats struct {
	event         EventType
	poolSize      int
	intersections int
	filtered      int
	entered       int
	left          int
	blocked       bool
	handlerCalls  int
	total         time.Duration
}

// debugLog writes cycle stats at debug level.
func (m *EventManager) debugLog(stats debugStats) {
	if !m.cfg.Debug {
		return
	}
	m.log.Debug("dispatch cycle",
		zap.Stringer("event", stats.event),
		zap.Int("pool", stats.poolSize),
		zap.Int("intersections", stats.intersections),
		zap.Int("filtered", stats.filtered),
		zap.Int("entered", stats.entered),
		zap.Int("left", stats.left),
		zap.Bool("blocked", stats.blocked),
		zap.Int("handlerCalls", stats.handlerCalls),
		zap.Duration("total", stats.total))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// handed to the manager. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("raypick debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func (m *EventManager) debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		m.log.Warn("tree depth exceeds threshold",
			zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth), zap.String("node", n.Name))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (m *EventManager) debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		m.log.Warn("child count exceeds threshold",
			zap.Int("children", len(n.children)), zap.Int("threshold", debugMaxChildCount), zap.String("node", n.Name))
	}
}
