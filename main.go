package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"
)

type cobraBuilder interface {
	ToCobraE() (*cobra.Command, error)
}

// cobraCmds builds subcommands with RunE so their errors reach the root command
// instead of panicking inside boa
func cobraCmds(builders ...cobraBuilder) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(builders))
	for _, b := range builders {
		cmd, err := b.ToCobraE()
		if err != nil {
			panic(fmt.Sprintf("building command: %v", err))
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func rootCmd() (*cobra.Command, error) {
	cmd, err := boa.NewCmdT[boa.NoParams]("subtrack").
		WithShort("Track recurring subscriptions").
		WithLong("Keeps a list of your subscriptions, warns about probable duplicates, imports from JSON, CSV and XLSX files and reports spending per category in one display currency. Anonymous use stores data locally; after 'subtrack login' data is stored in PostgreSQL.").
		WithCobraSubCmds(cobraCmds(
			addCmd(),
			listCmd(),
			updateCmd(),
			deleteCmd(),
			useCmd(),
			importCmd(),
			reportCmd(),
			duplicatesCmd(),
			loginCmd(),
			logoutCmd(),
			whoamiCmd(),
			goalCmd(),
			categoryCmd(),
			currencyCmd(),
			migrateCmd(),
			configCmd(),
		)...).
		ToCobraE()
	if err != nil {
		return nil, err
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd, nil
}

// run executes the CLI with args (without the program name)
func run(args []string) error {
	cmd, err := rootCmd()
	if err != nil {
		return err
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
