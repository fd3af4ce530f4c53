// Copyright (c) 2014 Square, Inc

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/square/gsel/batch"
	"github.com/square/gsel/config"
	"github.com/square/gsel/nodeset"
	"github.com/square/gsel/query"
	"go.uber.org/zap"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)

	errNoQueries     = errors.New("no query given")
	errQueriesFailed = errors.New("some queries failed")
)

type options struct {
	configFile string
	file       string
	tree       bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gsel [flags] QUERY...",
		Short: "Select hosts with the direct query language",
		Long: `gsel resolves host selection queries such as

  host10[10-42].dc and not (host10[20-29].dc or host1033.dc)

into the list of matching hosts. Queries come from the arguments and from
--file, one per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file, default - ./gsel.yaml or ~/.config/gsel/gsel.yaml")
	flags.StringVarP(&opts.file, "file", "f", "", "file to read queries from, one per line, - for stdin")
	flags.BoolVar(&opts.tree, "tree", false, "print the parsed query instead of the hosts")
	flags.IntP("maxflight", "m", 50, "maximum number of queries resolved in parallel")
	flags.Int("max-depth", query.DefaultLimits.MaxDepth, "maximum nesting of groups and bracket groups")
	flags.Int("max-hosts", nodeset.DefaultLimits.MaxHosts, "maximum number of hosts a pattern may expand to")
	flags.String("format", config.FormatList, "output format: list, folded, range or yaml")
	flags.Bool("debug", false, "log every token at debug level")

	for key, flag := range map[string]string{
		"maxflight": "maxflight",
		"max_depth": "max-depth",
		"max_hosts": "max-hosts",
		"format":    "format",
		"debug":     "debug",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(cmd *cobra.Command, v *viper.Viper, opts *options, args []string) error {
	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	queries := args
	if opts.file != "" {
		fromFile, err := readQueries(cmd.InOrStdin(), opts.file)
		if err != nil {
			return err
		}
		queries = append(queries, fromFile...)
	}
	if len(queries) == 0 {
		return errNoQueries
	}

	parser := query.NewParser(query.WithLimits(cfg.Limits()), query.WithLogger(logger))
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if opts.tree {
		return printTrees(out, errOut, parser, queries)
	}

	b := batch.New(parser, queries...)
	b.Maxflight = cfg.Maxflight
	b.ResultHandler = func(q string, hosts nodeset.NodeSet) {
		logger.Debug("resolved query", zap.String("query", q), zap.Int("hosts", hosts.Len()))
	}
	b.ErrorHandler = func(q string, err error) {
		logger.Debug("query failed", zap.String("query", q), zap.Error(err))
	}
	b.Run()

	failures := b.Errors()
	for _, q := range queries {
		if err, ok := failures[q]; ok {
			errorColor.Fprintf(errOut, "%s: %v\n", q, err)
		}
	}

	if err := render(out, cfg.Format, queries, b.Results()); err != nil {
		return err
	}
	if len(failures) > 0 {
		return errQueriesFailed
	}
	return nil
}

func printTrees(out, errOut io.Writer, parser *query.Parser, queries []string) error {
	failed := false
	for _, q := range queries {
		tree, err := parser.Tree(q)
		if err != nil {
			errorColor.Fprintf(errOut, "%s: %v\n", q, err)
			failed = true
			continue
		}
		fmt.Fprintln(out, tree)
	}
	if failed {
		return errQueriesFailed
	}
	return nil
}

// readQueries reads one query per line, skipping blank lines and lines
// starting with #.
func readQueries(stdin io.Reader, file string) ([]string, error) {
	in := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		in = f
	}

	var queries []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return queries, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errQueriesFailed) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
