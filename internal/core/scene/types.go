package scene

// Attribute type tags reported by the backend.
const (
	TypeDouble   = "double"
	TypeLong     = "long"
	TypeBool     = "bool"
	TypeString   = "string"
	TypeEnum     = "enum"
	TypeMatrix   = "matrix"
	TypeMessage  = "message"
	TypeCompound = "compound"
	TypeArray    = "array"
)

// AttrSpec describes an attribute being added to a node.
type AttrSpec struct {
	Name     string     `json:"name" yaml:"name"`
	Type     string     `json:"type" yaml:"type"`
	Default  any        `json:"default,omitempty" yaml:"default,omitempty"`
	Min      *float64   `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64   `json:"max,omitempty" yaml:"max,omitempty"`
	Items    []string   `json:"items,omitempty" yaml:"items,omitempty"`
	Keyable  bool       `json:"keyable,omitempty" yaml:"keyable,omitempty"`
	Children []AttrSpec `json:"children,omitempty" yaml:"children,omitempty"`
}

// Key is a single animation key on an attribute.
type Key struct {
	Frame      float64 `json:"frame" yaml:"frame"`
	Value      float64 `json:"value" yaml:"value"`
	InTangent  string  `json:"inTangent,omitempty" yaml:"inTangent,omitempty"`
	OutTangent string  `json:"outTangent,omitempty" yaml:"outTangent,omitempty"`
}

// Matrix is a row-major 4x4 transform matrix value.
type Matrix [16]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * other.
func (m Matrix) Mul(other Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Translation returns the translation column of the matrix.
func (m Matrix) Translation() (x, y, z float64) {
	return m[12], m[13], m[14]
}
