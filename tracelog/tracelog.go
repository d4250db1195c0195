// Package tracelog reads tab-delimited MCMC trace logs: lines starting
// with '#' are comments, the first line is the header with labels,
// every other line is a sample.
package tracelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("tracelog")

// ErrNoData is returned if the log has no samples after the burn-in.
var ErrNoData = errors.New("no samples in the trace log")

// maxLine is the maximum line length.
const maxLine = 16 * 1024 * 1024

// Log stores traces of all the logged quantities.
type Log struct {
	labels []string
	traces [][]float64
	// Burnin is the number of discarded samples.
	Burnin int
}

// ReadFile reads a trace log from a file discarding burnin percents
// of samples.
func ReadFile(fn string, burnin int) (*Log, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, burnin)
}

// Read reads a trace log discarding burnin percents of samples.
// Negative burnin is treated as zero.
func Read(rd io.Reader, burnin int) (*Log, error) {
	if burnin >= 100 {
		return nil, errors.New("burnin is a percentage and should be smaller than 100")
	}
	if burnin < 0 {
		burnin = 0
	}

	l := &Log{}
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if l.labels == nil {
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			l.labels = fields
			l.traces = make([][]float64, len(fields))
			continue
		}
		if len(fields) != len(l.labels) {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", lineNo, len(l.labels), len(fields))
		}
		for i, s := range fields {
			x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %v", lineNo, l.labels[i], err)
			}
			l.traces[i] = append(l.traces[i], x)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if l.labels == nil || len(l.traces[0]) == 0 {
		return nil, ErrNoData
	}

	n := len(l.traces[0])
	l.Burnin = n * burnin / 100
	if l.Burnin == n {
		return nil, ErrNoData
	}
	for i := range l.traces {
		l.traces[i] = l.traces[i][l.Burnin:]
	}
	log.Infof("Read %d samples, %d discarded as burn-in, %d columns", n, l.Burnin, len(l.labels))
	return l, nil
}

// Labels returns all the labels.
func (l *Log) Labels() []string {
	return l.labels
}

// WithPrefix returns labels starting with prefix, in order of
// appearance.
func (l *Log) WithPrefix(prefix string) (labels []string) {
	for _, label := range l.labels {
		if strings.HasPrefix(label, prefix) {
			labels = append(labels, label)
		}
	}
	return
}

// N returns the number of samples after burn-in.
func (l *Log) N() int {
	return len(l.traces[0])
}

// Trace returns samples of a quantity. The slice should not be
// modified.
func (l *Log) Trace(label string) ([]float64, error) {
	for i, lb := range l.labels {
		if lb == label {
			return l.traces[i], nil
		}
	}
	return nil, fmt.Errorf("unknown label: %s", label)
}
