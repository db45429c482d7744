package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shard-lang/shard/pkgs/compiler"
)

// runBuild is the root command: compile one input to a script
func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	input := a.v.GetString("input")
	if input == "" && len(args) > 0 {
		input = args[0]
	}

	if err := a.build(input); err != nil {
		return err
	}
	if !a.v.GetBool("watch") {
		return nil
	}

	if input == "" || input == "-" {
		return fmt.Errorf("--watch needs an input file")
	}
	w, err := newFileWatcher(input, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	a.logger.Info().Str("file", input).Msg("watching for changes")
	return w.run(cmd.Context(), func() {
		if err := a.build(input); err != nil {
			a.report(err)
		}
	})
}

// build compiles input and writes or prints the script
func (a *app) build(input string) error {
	src, err := a.readSource(input)
	if err != nil {
		return err
	}

	script, err := compiler.Compile(src.text, a.compilerOpts(src.name)...)
	if err != nil {
		return err
	}

	output := a.v.GetString("output")
	if output != "" {
		if err := writeScript(output, script, a.v.GetBool("executable")); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.stdout, "Written to %s\n", output)
	}
	if output == "" || a.v.GetBool("check") {
		_, _ = fmt.Fprint(a.stdout, script)
	}
	return nil
}

func (a *app) compilerOpts(name string) []compiler.CompilerOpt {
	opts := []compiler.CompilerOpt{
		compiler.WithFilename(name),
		compiler.WithLogger(a.logger),
	}
	if indent := a.v.GetString("indent"); indent != "" {
		opts = append(opts, compiler.WithIndent(indent))
	}
	return opts
}
