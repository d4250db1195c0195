// Package trace summarizes posterior traces of model indicators. The
// samples are rounded to model ids, tabulated, and the models are
// ranked to obtain the credible set (95% HPD by default).
package trace

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/bmodel/substmodel"
)

// log is the global logging variable.
var log = logging.MustGetLogger("trace")

// ErrInvalidInput is returned for an empty trace, a non-finite sample
// or a threshold outside of (0, 100].
var ErrInvalidInput = errors.New("invalid input")

const (
	// DefaultThreshold is the default credible set threshold (%).
	DefaultThreshold = 95
	// DefaultTailCutoff is the minimal support (%) for a model
	// outside of the credible set to be listed.
	DefaultTailCutoff = 0.1
	// smallNode is the relative node size below which a model is
	// drawn as a small node in the model graph.
	smallNode = 0.1
)

// Round rounds x to the nearest integer, halves are rounded up.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Frequencies counts model ids. It is never modified after creation.
type Frequencies struct {
	counts map[int]int
	n      int
}

// NewFrequencies rounds every sample and counts the model ids.
func NewFrequencies(trace []float64) *Frequencies {
	f := &Frequencies{counts: make(map[int]int)}
	for _, x := range trace {
		f.counts[Round(x)]++
	}
	f.n = len(trace)
	return f
}

// N returns the number of samples.
func (f *Frequencies) N() int {
	return f.n
}

// Count returns the number of samples of a model.
func (f *Frequencies) Count(id int) int {
	return f.counts[id]
}

// Support returns the support of a model in percents.
func (f *Frequencies) Support(id int) float64 {
	return 100 * float64(f.counts[id]) / float64(f.n)
}

// Len returns the number of distinct models.
func (f *Frequencies) Len() int {
	return len(f.counts)
}

// Ranked returns model ids ordered by decreasing count. Models with
// the same count are ordered by id.
func (f *Frequencies) Ranked() []int {
	ids := make([]int, 0, len(f.counts))
	for id := range f.counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := f.counts[ids[i]], f.counts[ids[j]]
		if ci != cj {
			return ci > cj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Summarizer creates credible set reports.
type Summarizer struct {
	// Threshold is the credible set threshold in percents.
	Threshold float64
	// TailCutoff is the minimal support (%) for models outside of
	// the credible set to be reported.
	TailCutoff float64
	// Universe are ids of all models of the model set. It is used
	// to compute maximum support of the small nodes. If empty, only
	// the observed models are used.
	Universe []int
}

// NewSummarizer creates a summarizer with a threshold.
func NewSummarizer(threshold float64) *Summarizer {
	return &Summarizer{
		Threshold:  threshold,
		TailCutoff: DefaultTailCutoff,
	}
}

// Summarize creates a report with the default tail cutoff and no
// model universe.
func Summarize(trace []float64, label string, threshold float64) (*Report, error) {
	return NewSummarizer(threshold).Summarize(trace, label)
}

// Summarize computes the credible set of a trace.
func (s *Summarizer) Summarize(trace []float64, label string) (*Report, error) {
	if len(trace) == 0 {
		return nil, fmt.Errorf("%w: empty trace %q", ErrInvalidInput, label)
	}
	if math.IsNaN(s.Threshold) || s.Threshold <= 0 || s.Threshold > 100 {
		return nil, fmt.Errorf("%w: threshold %v is not in (0, 100]", ErrInvalidInput, s.Threshold)
	}
	for i, x := range trace {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: sample %d of %q is %v", ErrInvalidInput, i, label, x)
		}
	}

	f := NewFrequencies(trace)
	n := float64(f.N())
	r := &Report{
		Label:     label,
		N:         f.N(),
		Threshold: s.Threshold,
		Models:    f.Len(),
	}

	sum := 0
	inSet := true
	for _, id := range f.Ranked() {
		count := f.Count(id)
		sum += count
		e := Entry{
			Model:         id,
			Name:          substmodel.ModelID(id).Name(),
			Count:         count,
			Support:       100 * float64(count) / n,
			Cumulative:    100 * float64(sum) / n,
			InCredibleSet: inSet,
		}
		if inSet {
			r.Entries = append(r.Entries, e)
			r.CredibleSetSize++
			if 100*float64(sum) >= s.Threshold*n {
				inSet = false
			}
		} else if e.Support > s.TailCutoff {
			r.Entries = append(r.Entries, e)
		}
	}

	r.MaxTailSupport = s.maxTailSupport(f)
	log.Infof("%s: %d samples, %d models, %d in %v%% credible set",
		label, r.N, r.Models, r.CredibleSetSize, s.Threshold)
	return r, nil
}

// maxTailSupport returns the maximum support among the models drawn
// as small nodes. Node size is proportional to the square root of
// the support and is scaled so that an average observed model has the
// size of 1.5.
func (s *Summarizer) maxTailSupport(f *Frequencies) (max float64) {
	n := float64(f.N())
	observed := f.Ranked()
	scale := 0.0
	for _, id := range observed {
		scale += math.Sqrt(float64(f.Count(id)) / n)
	}
	scale = 1.5 * scale / float64(len(observed))

	universe := s.Universe
	if len(universe) == 0 {
		universe = observed
	}
	for _, id := range universe {
		size := math.Sqrt(float64(f.Count(id))/n) / scale
		if size <= smallNode {
			max = math.Max(max, f.Support(id))
		}
	}
	return
}
