package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mysterioushouse/server/test"
)

func main() {
	opts := test.Options{}
	flag.StringVar(&opts.Addr, "addr", "localhost:8080", "Server address (host:port)")
	flag.StringVar(&opts.Path, "path", "/play", "WebSocket play path")
	flag.StringVar(&opts.UserPrefix, "user-prefix", "testrunner", "Prefix for generated player ids")
	flag.StringVar(&opts.Run, "run", "", "Only run scenarios whose name contains this")
	flag.DurationVar(&opts.ReplyTimeout, "timeout", test.DefaultReplyTimeout, "How long to wait for each reply")
	list := flag.Bool("list", false, "List the selected scenarios and exit")
	verbose := flag.Bool("v", false, "Verbose output - show every line said and expected")
	flag.Parse()

	names := test.ScenarioNames(opts.Run)
	if *list {
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "no scenario matches %q\n", opts.Run)
		os.Exit(2)
	}

	test.Verbose = *verbose

	fmt.Printf("Playing %d scenarios against %s%s as %s-*\n", len(names), opts.Addr, opts.Path, opts.UserPrefix)
	fmt.Println()

	results := test.RunAllTests(opts)
	test.PrintResults(results)

	for _, result := range results {
		if !result.Passed {
			os.Exit(1)
		}
	}
}
