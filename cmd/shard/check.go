package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/shard-lang/shard/pkgs/compiler"
)

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Check that files compile, reporting every failing file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runCheck,
	}
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	var (
		sources []compiler.Source
		readErr *multierror.Error
	)
	for _, path := range args {
		src, err := readFile(path)
		if err != nil {
			readErr = multierror.Append(readErr, err)
			continue
		}
		sources = append(sources, compiler.Source{Name: src.name, Text: src.text})
	}

	err := compiler.CheckAll(sources, compiler.WithLogger(a.logger))
	if err != nil || readErr != nil {
		if err != nil {
			readErr = multierror.Append(readErr, err)
		}
		return readErr.ErrorOrNil()
	}

	_, _ = fmt.Fprintf(a.stdout, "%d file(s) OK\n", len(sources))
	return nil
}
