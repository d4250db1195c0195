package substmodel

import (
	"fmt"
	"sort"
	"strings"
)

// ModelSet selects which models are considered.
type ModelSet int

const (
	// TransitionTransversionSplit contains models never grouping
	// transitions with transversions, plus JC69 (31 models).
	TransitionTransversionSplit ModelSet = iota
	// AllReversible contains all the reversible models (203 models).
	AllReversible
	// NamedSimple contains JC69, HKY, TN93 and GTR.
	NamedSimple
	// NamedExtended contains JC69, HKY, TN93, K81, TIM, TVM and GTR.
	NamedExtended
)

// modelSetNames are used to convert model sets to and from strings.
var modelSetNames = map[ModelSet]string{
	TransitionTransversionSplit: "transitionTransversionSplit",
	AllReversible:               "allreversible",
	NamedSimple:                 "namedSimple",
	NamedExtended:               "namedExtended",
}

// ModelSetNames returns the names of all model sets.
func ModelSetNames() []string {
	return []string{
		modelSetNames[TransitionTransversionSplit],
		modelSetNames[AllReversible],
		modelSetNames[NamedSimple],
		modelSetNames[NamedExtended],
	}
}

func (s ModelSet) String() string {
	if name, ok := modelSetNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ModelSet(%d)", int(s))
}

// ParseModelSet returns a model set given its' name (case
// insensitive).
func ParseModelSet(name string) (ModelSet, error) {
	for s, n := range modelSetNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown model set: %s", name)
}

// contains checks if the layout belongs to the model set.
func (s ModelSet) contains(l Layout) bool {
	switch s {
	case AllReversible:
		return true
	case TransitionTransversionSplit:
		if l.groupCount() == 1 {
			return true
		}
		for _, p := range TransitionPositions {
			for j, g := range l {
				if j != TransitionPositions[0] && j != TransitionPositions[1] && g == l[p] {
					return false
				}
			}
		}
		return true
	case NamedSimple:
		switch Pack(l) {
		case 111111, 121121, 121131, 123456:
			return true
		}
	case NamedExtended:
		_, ok := names[Pack(l)]
		return ok
	}
	return false
}

// Models is a collection of the models from a model set. It can be
// shared between goroutines, since it is never modified after
// creation.
type Models struct {
	set    ModelSet
	models []*Model
	index  map[ModelID]int
}

// NewModels enumerates all the models of a model set. Models are
// ordered by the number of groups first and then by layout.
func NewModels(set ModelSet) (*Models, error) {
	if _, ok := modelSetNames[set]; !ok {
		return nil, fmt.Errorf("unknown model set: %v", set)
	}
	ms := &Models{
		set:   set,
		index: make(map[ModelID]int),
	}
	for _, l := range layouts() {
		if !set.contains(l) {
			continue
		}
		m, err := NewModel(l)
		if err != nil {
			return nil, err
		}
		ms.models = append(ms.models, m)
	}
	sort.SliceStable(ms.models, func(i, j int) bool {
		return ms.models[i].GroupCount() < ms.models[j].GroupCount()
	})
	for i, m := range ms.models {
		ms.index[m.ID()] = i
	}
	log.Debugf("model set %v: %d models", set, len(ms.models))
	return ms, nil
}

// layouts generates all canonical layouts in lexicographic order.
func layouts() (res []Layout) {
	var l Layout
	var rec func(pos, max int)
	rec = func(pos, max int) {
		if pos == NClasses {
			res = append(res, l)
			return
		}
		for g := 0; g <= max+1; g++ {
			l[pos] = g
			m := max
			if g > m {
				m = g
			}
			rec(pos+1, m)
		}
	}
	rec(0, -1)
	return
}

// Set returns the model set.
func (ms *Models) Set() ModelSet {
	return ms.set
}

// Count returns the number of models.
func (ms *Models) Count() int {
	return len(ms.models)
}

// at returns i-th model.
func (ms *Models) at(i int) *Model {
	return ms.models[i]
}

// Index returns position of the model in the set.
func (ms *Models) Index(id ModelID) (int, error) {
	i, ok := ms.index[id]
	if !ok {
		return -1, fmt.Errorf("%w: %v is not in %v", ErrUnknownModel, id, ms.set)
	}
	return i, nil
}

// Model returns a model given its' id.
func (ms *Models) Model(id ModelID) (*Model, error) {
	i, err := ms.Index(id)
	if err != nil {
		return nil, err
	}
	return ms.at(i), nil
}

// IDs returns ids of all the models.
func (ms *Models) IDs() []ModelID {
	ids := make([]ModelID, len(ms.models))
	for i := range ids {
		ids[i] = ms.at(i).ID()
	}
	return ids
}
