package board

import (
	"ShapeBoard/internal/shape"

	"go.uber.org/zap"
)

// StartLoop arms the continuous teapot rotation. It returns the loop
// generation to pass to Tick and whether a new loop was started; starting
// an armed loop returns the running generation and false.
func (b *Board) StartLoop() (int, bool) {
	if b.looping {
		return b.loopGen, false
	}
	b.looping = true
	b.loopGen++
	b.log.Info("rotation loop started", zap.Int("gen", b.loopGen))
	if b.OnLoopStart != nil {
		b.OnLoopStart(b.loopGen)
	}
	return b.loopGen, true
}

// StopLoop disarms the loop. A tick already scheduled still calls Tick,
// which then reports false and rotates nothing.
func (b *Board) StopLoop() {
	if !b.looping {
		return
	}
	b.looping = false
	b.log.Info("rotation loop stopped", zap.Int("gen", b.loopGen))
}

func (b *Board) Looping() bool { return b.looping }

// Tick is one timer step of loop generation gen: every teapot turns by the
// configured loop step about X. It returns whether the timer should be
// re-armed.
func (b *Board) Tick(gen int) bool {
	if !b.looping || gen != b.loopGen {
		return false
	}
	b.RotateTeapots(shape.AxisX, b.cfg.Animation.LoopStep)
	return true
}
