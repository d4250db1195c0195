package main

import (
	"fmt"
	"io"
	"os"

	"bitbucket.org/Davydov/bmodel/store"
	"bitbucket.org/Davydov/bmodel/substmodel"
	"bitbucket.org/Davydov/bmodel/trace"
	"bitbucket.org/Davydov/bmodel/tracelog"
)

// summarySettings are the settings of the summarize command.
type summarySettings struct {
	prefix    string
	burnin    int
	threshold float64
	set       substmodel.ModelSet
}

// universe returns ids of all the models of a model set.
func universe(set substmodel.ModelSet) ([]int, error) {
	models, err := substmodel.NewModels(set)
	if err != nil {
		return nil, err
	}
	ids := models.IDs()
	res := make([]int, len(ids))
	for i, id := range ids {
		res[i] = int(id)
	}
	return res, nil
}

// summarizeLog computes credible sets for all the traces in the log
// with the label prefix and writes the tables to w. If db is not nil,
// reports are reused from and saved to it.
func summarizeLog(fn string, s summarySettings, db *store.Store, w io.Writer) ([]*trace.Report, error) {
	info, err := os.Stat(fn)
	if err != nil {
		return nil, err
	}

	summarizer := trace.NewSummarizer(s.threshold)
	summarizer.Universe, err = universe(s.set)
	if err != nil {
		return nil, err
	}

	l, err := tracelog.ReadFile(fn, s.burnin)
	if err != nil {
		return nil, err
	}
	labels := l.WithPrefix(s.prefix)
	if len(labels) == 0 {
		return nil, fmt.Errorf("no traces with prefix %q in %s", s.prefix, fn)
	}

	var reports []*trace.Report

	for _, label := range labels {
		key := store.Key(fn, label)
		var r *trace.Report
		if db != nil {
			var c cachedReport
			found, err := db.Load(key, &c)
			if err != nil {
				log.Warning("Error reading database:", err)
			}
			if found && c.ModTime == info.ModTime().UnixNano() &&
				c.Burnin == s.burnin && c.Threshold == s.threshold &&
				c.ModelSet == s.set.String() && c.Report != nil {
				log.Infof("%s: using stored report", label)
				r = c.Report
			}
		}
		if r == nil {
			tr, err := l.Trace(label)
			if err != nil {
				return nil, err
			}
			r, err = summarizer.Summarize(tr, label)
			if err != nil {
				return nil, err
			}
			if db != nil {
				err = db.Save(key, cachedReport{
					ModTime:   info.ModTime().UnixNano(),
					Burnin:    s.burnin,
					ModelSet:  s.set.String(),
					Threshold: s.threshold,
					Report:    r,
				})
				if err != nil {
					log.Warning("Error saving report:", err)
				}
			}
		}
		if err := r.WriteTable(w); err != nil {
			return nil, err
		}
		if r.MaxTailSupport > 0 {
			log.Noticef("%s: models drawn as small nodes have at most %.2f%% support", label, r.MaxTailSupport)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
