package trace

import (
	"bufio"
	"fmt"
	"io"
)

// Entry is a single model in a report.
type Entry struct {
	// Model is the model id.
	Model int `json:"model"`
	// Name is the name of a well known model.
	Name string `json:"name,omitempty"`
	// Count is the number of samples.
	Count int `json:"count"`
	// Support is the posterior support in percents.
	Support float64 `json:"support"`
	// Cumulative is the cumulative support in percents.
	Cumulative float64 `json:"cumulative"`
	// InCredibleSet is true for the credible set models.
	InCredibleSet bool `json:"inCredibleSet"`
}

// Report is a credible set report for a single trace.
type Report struct {
	// Label is the trace label.
	Label string `json:"label"`
	// N is the number of samples.
	N int `json:"n"`
	// Threshold is the credible set threshold in percents.
	Threshold float64 `json:"threshold"`
	// Models is the number of distinct models in the trace.
	Models int `json:"models"`
	// Entries are the credible set models ordered by decreasing
	// support followed by the other models with support above the
	// tail cutoff.
	Entries []Entry `json:"entries"`
	// CredibleSetSize is the number of models in the credible set.
	CredibleSetSize int `json:"credibleSetSize"`
	// MaxTailSupport is the maximum support among models drawn as
	// small nodes in the model graph.
	MaxTailSupport float64 `json:"maxTailSupport"`
}

// CredibleSet returns ids of the credible set models.
func (r *Report) CredibleSet() []int {
	ids := make([]int, 0, r.CredibleSetSize)
	for _, e := range r.Entries[:r.CredibleSetSize] {
		ids = append(ids, e.Model)
	}
	return ids
}

// Tail returns the listed models outside of the credible set.
func (r *Report) Tail() []Entry {
	return r.Entries[r.CredibleSetSize:]
}

// WriteTable writes the report as a text table: support, cumulative
// support, model and its' name. Credible set and the other models
// are separated by a rule.
func (r *Report) WriteTable(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, r.Label)
	fmt.Fprintln(bw, "support\tcumulative\tmodel")
	for i, e := range r.Entries {
		if i == r.CredibleSetSize {
			fmt.Fprintln(bw, "--------------------------------")
		}
		fmt.Fprintf(bw, "%6.2f%%\t%6.2f%%\t%d", e.Support, e.Cumulative, e.Model)
		if e.Name != "" {
			fmt.Fprintf(bw, "\t%s", e.Name)
		}
		fmt.Fprintln(bw)
	}
	if r.MaxTailSupport > 0 {
		fmt.Fprintf(bw, "Models drawn as small nodes have at most %.2f%% support.\n", r.MaxTailSupport)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}
