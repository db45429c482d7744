package main

import (
	"github.com/spf13/cobra"

	"github.com/shard-lang/shard/pkgs/astfmt"
	"github.com/shard-lang/shard/pkgs/compiler"
)

func (a *app) astCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree of a Shard script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runAST,
	}
	cmd.Flags().StringP("format", "f", string(astfmt.FormatTree), "output format: json, cbor or tree")
	return cmd
}

func (a *app) runAST(cmd *cobra.Command, args []string) error {
	format, err := astfmt.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	src, err := a.readSource(path)
	if err != nil {
		return err
	}

	prog, err := compiler.Parse(src.text, compiler.WithFilename(src.name), compiler.WithLogger(a.logger))
	if err != nil {
		return err
	}
	return astfmt.Write(a.stdout, prog, format, shouldUseColor(a.v.GetBool("no-color"), a.stdout))
}
