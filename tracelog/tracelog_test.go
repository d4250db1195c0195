package tracelog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const log1 = `# BEAST v2.4.0
# Generated Tue Jan 12 10:00:00 CET 2016
Sample	posterior	substmodel	substmodel.2	hasGammaRates
0	-1001.5	111111	111111	0
1000	-990.1	121121	121121	1
2000	-985.3	121121	121131	1
3000	-984.9	121131	121121	1
4000	-985.0	121121	121121	0

`

func TestRead(tst *testing.T) {
	l, err := Read(strings.NewReader(log1), 20)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if len(l.Labels()) != 5 {
		tst.Error("Incorrect labels:", l.Labels())
	}
	if l.Burnin != 1 || l.N() != 4 {
		tst.Error("Incorrect burn-in:", l.Burnin, l.N())
	}
	labels := l.WithPrefix("substmodel")
	if len(labels) != 2 || labels[0] != "substmodel" || labels[1] != "substmodel.2" {
		tst.Error("Incorrect prefixed labels:", labels)
	}
	tr, err := l.Trace("substmodel")
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	exp := []float64{121121, 121121, 121131, 121121}
	for i := range exp {
		if tr[i] != exp[i] {
			tst.Fatalf("Incorrect trace: %v", tr)
		}
	}
	if _, err := l.Trace("kappa"); err == nil {
		tst.Error("Expected error for unknown label")
	}
}

func TestBurnin(tst *testing.T) {
	l, err := Read(strings.NewReader(log1), -10)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if l.Burnin != 0 || l.N() != 5 {
		tst.Error("Negative burn-in should be zero:", l.Burnin, l.N())
	}
	if _, err := Read(strings.NewReader(log1), 100); err == nil {
		tst.Error("Expected error for 100% burn-in")
	}
}

func TestReadErrors(tst *testing.T) {
	settings := []string{
		"",
		"# comment only\n",
		"Sample\tposterior\n",
		"Sample\tposterior\n0\t-1\t5\n",
		"Sample\tposterior\n0\tabc\n",
	}
	for _, s := range settings {
		if _, err := Read(strings.NewReader(s), 0); err == nil {
			tst.Errorf("Expected error for %q", s)
		}
	}
	if _, err := Read(strings.NewReader("Sample\n"), 0); !errors.Is(err, ErrNoData) {
		tst.Error("Expected ErrNoData, got", err)
	}
}

func TestReadFile(tst *testing.T) {
	fn := filepath.Join(tst.TempDir(), "run.log")
	if err := os.WriteFile(fn, []byte(log1), 0644); err != nil {
		tst.Fatal("Error: ", err)
	}
	l, err := ReadFile(fn, 0)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if l.N() != 5 {
		tst.Error("Incorrect number of samples:", l.N())
	}
	if _, err := ReadFile(filepath.Join(tst.TempDir(), "missing.log"), 0); err == nil {
		tst.Error("Expected error for a missing file")
	}
}
