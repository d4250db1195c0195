/*

Bmodel summarizes nucleotide substitution model traces of a reversible
jump MCMC and evaluates the prior on substitution rates.

To get the 95% credible set of models from a trace log run:

	bmodel summarize run.log

The prior density of rates for a model is computed with:

	bmodel prior --model 121121 --rates 1.2,0.6

To see all the options run:

	bmodel --help

*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/bmodel/prior"
	"bitbucket.org/Davydov/bmodel/store"
	"bitbucket.org/Davydov/bmodel/substmodel"
	"bitbucket.org/Davydov/bmodel/trace"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("bmodel")
var formatter = logging.MustStringFormatter(`%{message}`)

// loggers are all the package loggers.
var loggers = []string{"bmodel", "trace", "tracelog", "prior", "dist", "substmodel", "store"}

// command-line options
var (
	// application
	app = kingpin.New("bmodel", "nucleotide substitution model averaging tools").Version(version)

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()

	// summarize
	summarizeCmd = app.Command("summarize", "summarize model traces of a trace log")
	logFileName  = summarizeCmd.Arg("log", "trace log").Required().ExistingFile()
	prefix       = summarizeCmd.Flag("prefix", "prefix of model trace labels").Default("substmodel").String()
	burnin       = summarizeCmd.Flag("burnin", "percentage of samples to discard as burn-in").Default("10").Int()
	threshold    = summarizeCmd.Flag("threshold", "credible set threshold (%)").Default(fmt.Sprint(trace.DefaultThreshold)).Float64()
	modelSet     = summarizeCmd.Flag("modelset", "model set of the analysis").
			Default(substmodel.TransitionTransversionSplit.String()).
			Enum(substmodel.ModelSetNames()...)
	dbFileName = summarizeCmd.Flag("db", "database to store and reuse reports").String()

	// prior
	priorCmd   = app.Command("prior", "evaluate the prior on substitution rates")
	modelID    = priorCmd.Flag("model", "model id, e.g. 121121 for HKY").Required().Int()
	rates      = priorCmd.Flag("rates", "comma separated group rates").Required().String()
	priorType  = priorCmd.Flag("type", "prior type").Default(prior.OnTransitionsAndTransversions.String()).Enum(prior.TypeNames()...)
	rateDist   = priorCmd.Flag("dist", "rate (or transversion rate) distribution, e.g. exp:1 or gamma:2,0.5@0.1").String()
	transDist  = priorCmd.Flag("transdist", "transition rate distribution, e.g. lognormal:1,1.25").String()
	noCheck    = priorCmd.Flag("nocheck", "don't check that weighted rates sum to 6").Bool()
	freqs      = priorCmd.Flag("freqs", "nucleotide frequencies (A, C, G, T)").Default("0.25,0.25,0.25,0.25").String()
	branchTime = priorCmd.Flag("time", "print rate matrix and transition probabilities for the branch length").Default("-1").Float64()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range loggers {
		logging.SetLevel(level, l)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	startTime := time.Now()
	summary := &CallSummary{
		Version:     version,
		CommandLine: os.Args,
	}

	switch cmd {
	case summarizeCmd.FullCommand():
		set, err := substmodel.ParseModelSet(*modelSet)
		if err != nil {
			log.Fatal(err)
		}
		if *burnin < 0 {
			log.Warning("Negative burn-in, using 0")
			*burnin = 0
		}
		var db *store.Store
		if *dbFileName != "" {
			db, err = store.Open(*dbFileName)
			if err != nil {
				log.Fatal("Error opening database:", err)
			}
			defer db.Close()
		}
		log.Infof("Model set: %v, burn-in: %d%%, threshold: %v%%", set, *burnin, *threshold)
		summary.Reports, err = summarizeLog(*logFileName, summarySettings{
			prefix:    *prefix,
			burnin:    *burnin,
			threshold: *threshold,
			set:       set,
		}, db, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	case priorCmd.FullCommand():
		summary.Prior, err = evalPrior(priorSettings{
			model:     *modelID,
			rates:     *rates,
			priorType: *priorType,
			dist:      *rateDist,
			transDist: *transDist,
			noCheck:   *noCheck,
			freqs:     *freqs,
			time:      *branchTime,
		}, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	deltaT := time.Since(startTime)
	log.Infof("Running time: %v", deltaT)
	summary.TotalTime = deltaT.Seconds()

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
