package linop

import (
	"context"
	"fmt"

	"github.com/born-ml/linop/internal/parallel"
	"github.com/born-ml/linop/internal/tensor"
	"github.com/pkg/errors"
)

// Mode selects the transform ApplyBatch runs.
type Mode int

// Transforms available to ApplyBatch.
const (
	ModeForward Mode = iota
	ModeAdjoint
	ModeNormal
)

func (m Mode) String() string {
	switch m {
	case ModeForward:
		return "forward"
	case ModeAdjoint:
		return "adjoint"
	case ModeNormal:
		return "normal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ApplyBatch applies the transform selected by mode to every (dsts[i],
// srcs[i]) pair, with at most limit pairs in flight (limit <= 0 means one
// per CPU). Each pair runs on its own clone of op. The first error cancels
// pairs not yet started.
func ApplyBatch(ctx context.Context, op *LinOp, mode Mode, dsts, srcs []*tensor.Array, limit int) error {
	if len(dsts) != len(srcs) {
		return errors.Wrapf(ErrContract, "linop: batch: %d destinations for %d sources", len(dsts), len(srcs))
	}
	if mode == ModeNormal && !op.HasNormal() {
		return errors.Wrap(ErrContract, "linop: batch: operator has no normal transform")
	}

	return parallel.Group(ctx, len(srcs), limit, func(_ context.Context, i int) error {
		h := op.Clone()
		defer h.Free()

		var err error
		switch mode {
		case ModeForward:
			err = h.Forward(dsts[i], srcs[i])
		case ModeAdjoint:
			err = h.Adjoint(dsts[i], srcs[i])
		case ModeNormal:
			err = h.Normal(dsts[i], srcs[i])
		default:
			return errors.Wrapf(ErrContract, "linop: batch: unknown mode %v", mode)
		}
		return errors.WithMessagef(err, "batch item %d", i)
	})
}
