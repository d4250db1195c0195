package main

import "bitbucket.org/Davydov/bmodel/trace"

// CallSummary is storing bmodel run summary information.
type CallSummary struct {
	// Version stores bmodel version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Reports are credible set reports, one per trace.
	Reports []*trace.Report `json:"reports,omitempty"`
	// Prior is the rate prior evaluation.
	Prior *PriorSummary `json:"prior,omitempty"`
	// Time is the computations time in seconds.
	TotalTime float64 `json:"time"`
}

// PriorSummary stores the result of a rate prior evaluation.
type PriorSummary struct {
	// Model is the packed model id.
	Model int `json:"model"`
	// Name is the model name, if any.
	Name string `json:"name,omitempty"`
	// Type is the prior type.
	Type string `json:"type"`
	// Dist is the rate (or transversion rate) distribution.
	Dist string `json:"dist,omitempty"`
	// TransDist is the transition rate distribution.
	TransDist string `json:"transDist,omitempty"`
	// Rates are the group rates.
	Rates []float64 `json:"rates"`
	// LogDensity is the log prior density.
	LogDensity float64 `json:"logDensity"`
	// Scale is the rate matrix scale before normalization.
	Scale float64 `json:"scale,omitempty"`
}

// cachedReport is a report stored in the database together with the
// settings used to compute it.
type cachedReport struct {
	// ModTime is the log file modification time (unix nanoseconds).
	ModTime int64 `json:"modTime"`
	// Burnin is the burn-in percentage.
	Burnin int `json:"burnin"`
	// ModelSet is the model set name.
	ModelSet string `json:"modelSet"`
	// Threshold is the credible set threshold.
	Threshold float64 `json:"threshold"`
	// Report is the credible set report.
	Report *trace.Report `json:"report"`
}
