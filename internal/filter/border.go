package filter

import (
	"fmt"

	"github.com/ironsheep/imagine-mcp/internal/matrix"
)

// BorderVariant selects one of the predefined border detection kernels.
type BorderVariant int

const (
	// VariantOne is the 4-neighbor Laplacian:
	//
	//	 0  1  0
	//	 1 -4  1
	//	 0  1  0
	VariantOne BorderVariant = iota + 1

	// VariantTwo is the 8-neighbor Laplacian:
	//
	//	 1  1  1
	//	 1 -8  1
	//	 1  1  1
	VariantTwo

	// VariantThree weighs edge neighbors against corners:
	//
	//	-1  2 -1
	//	 2 -4  2
	//	-1  2 -1
	VariantThree
)

var borderKernels = map[BorderVariant][9]float64{
	VariantOne: {
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	},
	VariantTwo: {
		1, 1, 1,
		1, -8, 1,
		1, 1, 1,
	},
	VariantThree: {
		-1, 2, -1,
		2, -4, 2,
		-1, 2, -1,
	},
}

func (v BorderVariant) String() string {
	switch v {
	case VariantOne:
		return "variant-one"
	case VariantTwo:
		return "variant-two"
	case VariantThree:
		return "variant-three"
	default:
		return fmt.Sprintf("BorderVariant(%d)", int(v))
	}
}

// BorderKernel returns a fresh 3x3 kernel for v.
func BorderKernel(v BorderVariant) (*matrix.Matrix[float64], error) {
	weights, ok := borderKernels[v]
	if !ok {
		return nil, fmt.Errorf("%w: unknown border variant %d", ErrInvalidArgument, int(v))
	}
	return matrix.New(3, 3, weights[:]...)
}

// NewBorderDetection returns a neighborhood filter using the kernel for v.
func NewBorderDetection(v BorderVariant) (*Neighborhood, error) {
	k, err := BorderKernel(v)
	if err != nil {
		return nil, err
	}
	return NewNeighborhood(k)
}
