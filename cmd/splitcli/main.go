package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/splitter"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is an independent runable that is taking input and output
// being stdin and stdout. Given args are the command line arguments, without
// the program name and the command name, that should be parsed using the
// flag package.
//
// Keep each command simple. Commands are combined using a unix pipe:
//
//   $ splitcli change-admin -admin split1... \
//       | splitcli sign \
//       | splitcli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"change-admin":        cmdChangeAdmin,
	"change-distribution": cmdChangeDistribution,
	"keyaddr":             cmdKeyaddr,
	"keygen":              cmdKeygen,
	"query":               cmdQuery,
	"receive":             cmdReceive,
	"register-token":      cmdRegisterToken,
	"sign":                cmdSignTransaction,
	"submit":              cmdSubmitTransaction,
	"version":             cmdVersion,
	"view":                cmdTransactionView,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the splitter application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, splitter.Version())
	return nil
}
