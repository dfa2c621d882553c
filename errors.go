package broadphase

import (
	"errors"
	"fmt"

	"github.com/hupe1980/broadphase/internal/voxel"
)

var (
	// ErrIndexOutOfRange is returned when a vertex, edge or face index does not
	// address an existing primitive.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrSizeMismatch is returned when the two position arrays of a continuous
	// build or query have different lengths.
	ErrSizeMismatch = errors.New("position arrays differ in length")

	// ErrMeshMismatch is returned when a mesh passed to a query does not have
	// the primitive counts the hash was built with.
	ErrMeshMismatch = errors.New("mesh does not match built hash")

	// ErrNotContinuous is returned when a swept mesh query runs against a
	// hash built from a single time step.
	ErrNotContinuous = errors.New("hash not built with BuildContinuous")

	// ErrNonFinite is returned when a position contains NaN or Inf.
	ErrNonFinite = errors.New("non-finite position")

	// ErrTooManyPrimitives is returned when the primitive count does not fit
	// the combined id space.
	ErrTooManyPrimitives = errors.New("too many primitives")
)

// IndexError describes an out-of-range reference.
//
// It unwraps to ErrIndexOutOfRange.
type IndexError struct {
	// Kind is the primitive family the index addresses.
	Kind voxel.Kind
	// Index is the offending value.
	Index int
	// Bound is the exclusive upper bound Index had to respect.
	Bound int
	// Referenced is set when the index was read from the topology of
	// another primitive (OwnerKind, Owner).
	Referenced bool
	OwnerKind  voxel.Kind
	Owner      int
}

func (e *IndexError) Error() string {
	if e.Referenced {
		return fmt.Sprintf("%s: %s index %d referenced by %s %d not in [0, %d)",
			ErrIndexOutOfRange, e.Kind, e.Index, e.OwnerKind, e.Owner, e.Bound)
	}
	return fmt.Sprintf("%s: %s index %d not in [0, %d)", ErrIndexOutOfRange, e.Kind, e.Index, e.Bound)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func checkIndex(kind voxel.Kind, idx, bound int) error {
	if idx < 0 || idx >= bound {
		return &IndexError{Kind: kind, Index: idx, Bound: bound}
	}
	return nil
}

// checkEdge checks that edge ei references existing vertices.
func checkEdge(numVertices int, e [][2]int, ei int) error {
	for _, vi := range e[ei] {
		if vi < 0 || vi >= numVertices {
			return &IndexError{
				Kind: voxel.KindVertex, Index: vi, Bound: numVertices,
				Referenced: true, OwnerKind: voxel.KindEdge, Owner: ei,
			}
		}
	}
	return nil
}

// validateTopology checks that every edge and face references existing vertices.
func validateTopology(numVertices int, e [][2]int, f [][3]int) error {
	for ei := range e {
		if err := checkEdge(numVertices, e, ei); err != nil {
			return err
		}
	}
	for fi, fc := range f {
		for _, vi := range fc {
			if vi < 0 || vi >= numVertices {
				return &IndexError{
					Kind: voxel.KindVertex, Index: vi, Bound: numVertices,
					Referenced: true, OwnerKind: voxel.KindFace, Owner: fi,
				}
			}
		}
	}
	return nil
}
