// Command graphbin-inspect decodes GraphBin-encoded hex dumps and prints
// the contained value tree. It is meant for debugging wire captures and
// for smoke-testing other protocol implementations.
//
// Usage:
//
//	graphbin-inspect [flags] [command [args]]
//
// Commands:
//
//	decode <hex>     Decode a hex dump and print the value tree
//	date <y> <m> <d> Encode a calendar date and print the hex
//	string <text>    Encode a string and print the hex
//	codes            List the built-in type-code catalogue
//
// With no command, graphbin-inspect starts an interactive shell.
//
// Examples:
//
//	# Decode a captured value
//	graphbin-inspect decode "0700000007e7030f"
//
//	# Produce reference bytes for a peer implementation
//	graphbin-inspect date 2023 3 15
//
//	# Record every decode to a CBOR event log
//	graphbin-inspect -event-log session.glog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/graphbin-protocol/graphbin-go/pkg/inspect"
	"github.com/graphbin-protocol/graphbin-go/pkg/log"
	"github.com/graphbin-protocol/graphbin-go/pkg/wire"
)

func main() {
	eventLog := flag.String("event-log", "", "append codec events to this CBOR log file")
	bare := flag.Bool("bare", false, "omit type names from decoded output")
	flag.Parse()

	var logger log.Logger = log.NoopLogger{}
	if *eventLog != "" {
		fl, err := log.NewFileLogger(*eventLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening event log: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		logger = fl
	}

	registry := wire.NewRegistry()
	formatter := inspect.NewFormatter()
	formatter.ShowTypes = !*bare

	tl := &tool{
		writer:    wire.NewWriter(registry, wire.WithWriterLogger(logger)),
		reader:    wire.NewReader(registry, wire.WithReaderLogger(logger)),
		formatter: formatter,
	}

	args := flag.Args()
	if len(args) == 0 {
		if err := tl.runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	out, err := tl.run(args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
