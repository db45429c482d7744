package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the streams and settings shared by every command
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
	color  bool
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.Nop(),
	}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		return a.report(err)
	}
	return ExitSuccess
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "shard [file]",
		Short: "Compile Shard scripts to POSIX shell",
		Long: `shard compiles a Shard script into a /bin/sh script.

The input is --input, a positional file, or piped stdin. The script is
printed to stdout unless --output is given.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.runBuild,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .shard.yaml in the working or home directory)")
	pf.Bool("no-color", false, "disable colored output")
	pf.Bool("debug", false, "log compiler stages to stderr")

	f := root.Flags()
	f.StringP("input", "i", "", "input file (- for stdin)")
	f.StringP("output", "o", "", "write the script to this file")
	f.Bool("check", false, "print the script to stdout even when --output is set")
	f.Bool("executable", true, "mark the output file executable")
	f.String("indent", "  ", "indentation unit of the generated script")
	f.BoolP("watch", "w", false, "rebuild whenever the input file changes")

	root.AddCommand(a.checkCommand(), a.astCommand(), a.versionCommand())
	return root
}

// setup binds flags, loads configuration and builds the logger. It runs
// before every command.
func (a *app) setup(cmd *cobra.Command) error {
	if err := bindFlags(a.v, cmd); err != nil {
		return err
	}
	if err := loadConfig(a.v, a.v.GetString("config")); err != nil {
		return err
	}

	a.color = shouldUseColor(a.v.GetBool("no-color"), a.stderr)
	a.logger = newLogger(a.stderr, a.v.GetBool("debug"), a.color)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("path", used).Msg("loaded config")
	}
	return nil
}
