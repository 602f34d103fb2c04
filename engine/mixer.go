package engine

// MixOp is the boolean operator a derived output applies to its two sources.
type MixOp string

const (
	MixNone MixOp = "none"
	MixOr   MixOp = "or"
	MixXor  MixOp = "xor"
	MixAnd  MixOp = "and"
)

// Combine applies the operator to two live levels. None is always low.
func Combine(a, b bool, op MixOp) bool {
	switch op {
	case MixOr:
		return a || b
	case MixXor:
		return a != b
	case MixAnd:
		return a && b
	}
	return false
}

// MixSource selects what one side of a derived output reads: a channel's
// generated output, or the raw input level feeding it.
type MixSource string

const (
	SourceOutputA MixSource = "outA"
	SourceOutputB MixSource = "outB"
	SourceInputA  MixSource = "inA"
	SourceInputB  MixSource = "inB"
)

// MixerConfig wires one derived output. The mixer has no timing memory: the
// derived level is recomputed from the sources on every tick.
type MixerConfig struct {
	Op MixOp     `json:"op"`
	A  MixSource `json:"a"`
	B  MixSource `json:"b"`
}

const NumMixes = 4

// DefaultMixes mirrors the classic panel wiring: each channel OR-ed with its
// own raw gate, both outputs OR-ed, and both outputs XOR-ed.
func DefaultMixes() [NumMixes]MixerConfig {
	return [NumMixes]MixerConfig{
		{Op: MixOr, A: SourceOutputA, B: SourceInputA},
		{Op: MixOr, A: SourceOutputA, B: SourceOutputB},
		{Op: MixOr, A: SourceOutputB, B: SourceInputB},
		{Op: MixXor, A: SourceOutputA, B: SourceOutputB},
	}
}
