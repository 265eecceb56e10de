/*
Minnow starts an interactive session against the engine's built-in demo
grammar.

It reads utterances from stdin, one at a time, parses and ranks them, and
prints the resulting denotation. The interpreter runs until end of input or
the "quit" command is entered.

Usage:

	minnow [flags]

The flags are:

	-v, --version
		Give the current version of minnow and then exit.

	-g, --config FILE
		Use the provided TOML engine config file to select a ranker and,
		optionally, load training data. If omitted, a ConstantRanker is used
		untrained.

	-d, --direct
		Force reading directly from stdin as opposed to using GNU readline
		based routines for reading input, even when launched in a tty.

	-u, --utterance TEXT
		Immediately parse the given utterance and print its result, then
		exit, without starting an interactive session.

Once a session has started, each line of input is parsed against the
built-in arithmetic demo grammar and its top-ranked denotation is printed.
To exit, type "quit".
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/minnow"
	"github.com/dekarrin/minnow/internal/config"
	"github.com/dekarrin/minnow/internal/demo"
	"github.com/dekarrin/minnow/internal/merrs"
	"github.com/dekarrin/minnow/internal/rank"
	"github.com/dekarrin/minnow/internal/repl"
	"github.com/dekarrin/minnow/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates an unsuccessful program execution due to a
	// problem reading or parsing input.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode   int     = ExitSuccess
	flagVersion  *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile   *string = pflag.StringP("config", "g", "", "TOML engine config file selecting a ranker and, optionally, training data")
	forceDirect  *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	oneUtterance *string = pflag.StringP("utterance", "u", "", "Parse the given utterance immediately and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	eng, err := buildEngine(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *oneUtterance != "" {
		printResult(eng, *oneUtterance)
		return
	}

	if err := runSession(eng, *forceDirect); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
		return
	}
}

func buildEngine(configPath string) (*minnow.Engine, error) {
	var opts []minnow.Option

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		var r rank.Ranker
		switch cfg.Ranker {
		case "linear":
			r = rank.NewLinearRanker()
		case "softmax":
			r = rank.NewSoftmaxRanker()
		case "", "constant":
			r = rank.NewConstantRanker()
		default:
			return nil, fmt.Errorf("unknown ranker %q in config", cfg.Ranker)
		}
		opts = append(opts, minnow.WithRanker(r))

		eng, err := minnow.New(demo.ArithGrammar(), opts...)
		if err != nil {
			return nil, fmt.Errorf("build engine: %w", err)
		}

		if cfg.Training != "" {
			set, err := config.LoadTraining(cfg.Training)
			if err != nil {
				return nil, fmt.Errorf("load training data: %w", err)
			}
			utterances := make([]string, len(set.Example))
			denotations := make([]minnow.Denotation, len(set.Example))
			for i, ex := range set.Example {
				utterances[i] = ex.Utterance
				denotations[i] = ex.Denotation
			}
			if err := eng.Train(utterances, denotations); err != nil {
				return nil, fmt.Errorf("train engine: %w", err)
			}
		}

		return eng, nil
	}

	return minnow.New(demo.ArithGrammar(), opts...)
}

func runSession(eng *minnow.Engine, forceDirect bool) error {
	var reader repl.UtteranceReader
	var err error

	if forceDirect || !isTTY() {
		reader = repl.NewDirectReader(os.Stdin)
	} else {
		reader, err = repl.NewInteractiveReader()
		if err != nil {
			return fmt.Errorf("create input reader: %w", err)
		}
	}
	defer reader.Close()

	for {
		line, err := reader.ReadUtterance()
		if err != nil {
			return err
		}
		if line == "quit" {
			return nil
		}
		printResult(eng, line)
	}
}

func printResult(eng *minnow.Engine, utterance string) {
	den, err := eng.TopDenotation(utterance)
	if err != nil {
		fmt.Println(rosed.Edit(merrs.Friendly(err)).Wrap(72).String())
		return
	}
	fmt.Printf("%v\n", den)
}

func isTTY() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
