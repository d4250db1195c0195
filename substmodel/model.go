// Package substmodel enumerates nucleotide substitution models of
// the reversible jump model set: every model is a grouping of the six
// reversible rate classes into rate groups sharing a single rate.
package substmodel

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("substmodel")

// Reversible rate classes, in the order used by model layouts.
const (
	AC = iota
	AG
	AT
	CG
	CT
	GT
	// NClasses is the number of reversible rate classes.
	NClasses
)

// TransitionPositions are the layout positions of the transition
// rate classes (A<->G and C<->T), all others are transversions.
var TransitionPositions = [2]int{AG, CT}

var (
	// ErrInvalidModelID is returned when an integer is not a
	// packed model layout.
	ErrInvalidModelID = errors.New("invalid model id")
	// ErrUnknownModel is returned when a model is not a part of a
	// model set.
	ErrUnknownModel = errors.New("unknown model")
)

// ModelID is a model layout packed in base 10, one digit (1-6) per
// rate class, most significant digit first. E.g. HKY is 121121.
type ModelID int

// names are well known models.
var names = map[ModelID]string{
	111111: "JC69/F81",
	121121: "K80/HKY",
	121131: "TN93",
	123321: "K81",
	123341: "TIM",
	123421: "TVM",
	123456: "SYM/GTR",
}

// Name returns the name of a well known model or an empty string.
func (id ModelID) Name() string {
	return names[id]
}

func (id ModelID) String() string {
	return strconv.Itoa(int(id))
}

// Layout maps every rate class to a rate group. Groups are numbered
// in the order of first appearance, so the first class is always in
// the group 0.
type Layout [NClasses]int

// Pack converts layout to a model id.
func Pack(l Layout) ModelID {
	id := 0
	for _, g := range l {
		id = id*10 + g + 1
	}
	return ModelID(id)
}

// Unpack converts a model id into a layout. It fails if digits are
// outside of 1-6 range or groups are not numbered in the order of the
// first appearance.
func Unpack(id ModelID) (l Layout, err error) {
	if id < 111111 || id > 666666 {
		return l, fmt.Errorf("%w: %d", ErrInvalidModelID, int(id))
	}
	x := int(id)
	for j := NClasses - 1; j >= 0; j-- {
		d := x % 10
		x /= 10
		if d < 1 || d > NClasses {
			return l, fmt.Errorf("%w: %d", ErrInvalidModelID, int(id))
		}
		l[j] = d - 1
	}
	if !l.canonical() {
		return l, fmt.Errorf("%w: %d (groups are not in order of appearance)", ErrInvalidModelID, int(id))
	}
	return l, nil
}

// canonical checks that groups are numbered in order of appearance.
func (l Layout) canonical() bool {
	max := -1
	for _, g := range l {
		if g > max+1 {
			return false
		}
		if g > max {
			max = g
		}
	}
	return true
}

// groupCount returns the number of distinct groups.
func (l Layout) groupCount() (k int) {
	for _, g := range l {
		if g+1 > k {
			k = g + 1
		}
	}
	return
}

// Model is a substitution model, i.e. a grouping of the rate classes.
type Model struct {
	id     ModelID
	layout Layout
	mult   []int
}

// NewModel creates a model from a layout.
func NewModel(l Layout) (*Model, error) {
	if !l.canonical() {
		return nil, fmt.Errorf("%w: layout %v", ErrInvalidModelID, l)
	}
	m := &Model{
		id:     Pack(l),
		layout: l,
		mult:   make([]int, l.groupCount()),
	}
	for _, g := range l {
		m.mult[g]++
	}
	return m, nil
}

// ID returns packed model id.
func (m *Model) ID() ModelID {
	return m.id
}

// Layout returns the model layout.
func (m *Model) Layout() Layout {
	return m.layout
}

// GroupCount returns the number of independent rate groups.
func (m *Model) GroupCount() int {
	return len(m.mult)
}

// Multiplicities returns the number of rate classes in every group.
func (m *Model) Multiplicities() []int {
	r := make([]int, len(m.mult))
	copy(r, m.mult)
	return r
}

// Multiplicity returns the number of rate classes in group g.
func (m *Model) Multiplicity(g int) int {
	return m.mult[g]
}

// Transition returns true if the group g contains a transition rate
// class.
func (m *Model) Transition(g int) bool {
	for _, p := range TransitionPositions {
		if m.layout[p] == g {
			return true
		}
	}
	return false
}

// Name returns the model name if it is well known.
func (m *Model) Name() string {
	return m.id.Name()
}

func (m *Model) String() string {
	if name := m.Name(); name != "" {
		return m.id.String() + " (" + name + ")"
	}
	return m.id.String()
}
