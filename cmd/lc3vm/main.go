// Command lc3vm is the external collaborator around pkg/vm: it parses
// the CLI surface, owns the terminal's raw-mode lifecycle, loads image
// files, and turns the VM's halt/error outcome into an exit code. It
// never touches vm.VM's internals beyond the calls that surface also
// own — vm.LoadImage, vm.Run — the same division
// bassosimone/risc32/cmd/vm/main.go keeps between "machine" and
// "driver".
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/cwoolum/lc3vm/internal/selftest"
	"github.com/cwoolum/lc3vm/internal/term"
	"github.com/cwoolum/lc3vm/pkg/vm"
	"github.com/spf13/cobra"
)

const (
	exitOK          = 0
	exitLoadFailure = 1
	exitUsage       = 2
)

func main() {
	log.SetFlags(0)

	var runSelfTest bool

	root := &cobra.Command{
		Use:   "lc3vm [image...]",
		Short: "Run LC-3 object images",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runSelfTest {
				if err := selftest.Run(); err != nil {
					log.Printf("selftest: %v", err)
					os.Exit(exitLoadFailure)
				}
				return nil
			}
			if len(args) == 0 {
				cmd.SilenceUsage = false
				return fmt.Errorf("expected at least one image argument, or --test")
			}
			cmd.SilenceUsage = true
			os.Exit(runImages(args))
			return nil
		},
	}
	root.Flags().BoolVar(&runSelfTest, "test", false, "run the built-in test suite and exit")

	if err := root.Execute(); err != nil {
		log.Print(err)
		os.Exit(exitUsage)
	}
}

// runImages loads each image in argument order onto one VM and runs
// it to completion, returning the exit code spec.md §6 assigns to the
// outcome. All cleanup (terminal restoration, stdout flush) happens
// via defer before this function returns, so every return path leaves
// the terminal sane — os.Exit itself is called only by the caller,
// after those defers have already run.
func runImages(images []string) int {
	session, err := term.Start(os.Stdin)
	if err != nil {
		log.Printf("terminal: %v", err)
		return exitLoadFailure
	}
	defer session.Restore()

	stdin := bufio.NewReader(os.Stdin)
	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	m := vm.New(stdin, stdout)
	m.Keyboard = vm.NewKeyboard(os.Stdin)

	for _, path := range images {
		f, err := os.Open(path)
		if err != nil {
			log.Printf("open %s: %v", path, err)
			return exitLoadFailure
		}
		_, err = m.LoadImage(f)
		f.Close()
		if err != nil {
			log.Printf("load %s: %v", path, err)
			return exitLoadFailure
		}
	}

	if err := m.Run(); err != nil {
		log.Printf("run: %v", err)
		return exitLoadFailure
	}
	return exitOK
}
