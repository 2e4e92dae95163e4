package main

import (
	"fmt"
	"os"

	nihao "github.com/nihao-tui/nihao/src"
	"github.com/nihao-tui/nihao/src/protector"
	"github.com/nihao-tui/nihao/src/util"
)

var version = "0.1"
var revision = "devel"

func printVersion() {
	if len(revision) > 0 {
		fmt.Printf("%s (%s)\n", version, revision)
	} else {
		fmt.Println(version)
	}
}

func exit(code int, err error) {
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
	}
	util.Exit(code)
}

func main() {
	protector.Protect()
	options, err := nihao.ParseOptions(true, os.Args[1:])
	if err != nil {
		exit(nihao.ExitError, err)
		return
	}
	if options.Help {
		fmt.Print(nihao.Usage)
		return
	}
	if options.Version {
		printVersion()
		return
	}

	code, err := nihao.Run(options)
	exit(code, err)
}
