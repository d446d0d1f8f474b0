package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/klauer/vita/internal/demo"
)

func addSymbolsCommand() *cli.Command {
	return &cli.Command{
		Name:  "symbols",
		Usage: "List the demo symbolic-regression symbol set",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "target", Value: "quadratic", Usage: "Demo target function, to build the same symbol set a run would use"},
			&cli.StringFlag{Name: "csv", Usage: "Write the table as CSV to this path instead of printing it"},
		},
		Action: symbolsCommand,
	}
}

func symbolsCommand(ctx context.Context, cmd *cli.Command) error {
	target, ok := demo.Targets[cmd.String("target")]
	if !ok {
		return fmt.Errorf("unknown target %q", cmd.String("target"))
	}
	problem := demo.NewProblem(target, -3, 3, 1)

	if path := cmd.String("csv"); path != "" {
		return writeSymbolsCSV(path, problem)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fprintln(w, "NAME\tOPCODE\tARITY\tWEIGHT\tTERMINAL")
	for _, s := range problem.SymbolSet.Symbols() {
		fprintf(w, "%s\t%d\t%d\t%.2f\t%v\n", s.Name, s.Opcode, s.Arity(), s.Weight, s.IsTerminal())
	}
	flushWriter(w)
	return nil
}

func writeSymbolsCSV(path string, problem *demo.Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("symbols: failed to create %q: %w", path, err)
	}
	defer closeFile(f)

	rows := make([][]string, 0, problem.SymbolSet.Len())
	for _, s := range problem.SymbolSet.Symbols() {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", s.Opcode),
			fmt.Sprintf("%d", s.Arity()),
			fmt.Sprintf("%.2f", s.Weight),
			fmt.Sprintf("%v", s.IsTerminal()),
		})
	}
	return writeCSVDocument(f, []string{"name", "opcode", "arity", "weight", "terminal"}, rows)
}
