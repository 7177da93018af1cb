package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/service"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/spreadsheet"
	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

var errPurgeNotConfirmed = errors.New("refusing to delete all products without --yes")

// command is a single shopctl subcommand
type command struct {
	flags *flag.FlagSet
	usage string
	short string
	exec  func(ctx context.Context, products *service.ProductService, out io.Writer, args []string) error
}

func (c *command) name() string {
	name, _, _ := strings.Cut(c.usage, " ")
	return name
}

// run parses flags and executes the command
func (c *command) run(ctx context.Context, products *service.ProductService, out io.Writer, args []string) error {
	c.flags.SetOutput(io.Discard)
	if err := c.flags.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", c.name(), err)
	}
	return c.exec(ctx, products, out, c.flags.Args())
}

func commands() []*command {
	return []*command{importCmd(), reportCmd(), purgeCmd()}
}

func importCmd() *command {
	return &command{
		flags: flag.NewFlagSet("import", flag.ContinueOnError),
		usage: "import <file>...",
		short: "Insert products from .xlsx or .csv sheets",
		exec: func(ctx context.Context, products *service.ProductService, out io.Writer, args []string) error {
			files, err := spreadsheet.LoadFiles(ctx, args)
			if err != nil {
				return err
			}

			for _, f := range files {
				summary, err := products.Import(ctx, filepath.Base(f.Path), f.Data)
				if err != nil {
					return fmt.Errorf("%s: %w", f.Path, err)
				}
				fmt.Fprintf(out, "%s: inserted %d, skipped %d (batch %s)\n",
					f.Path, summary.Inserted, summary.Skipped, summary.BatchID)
				for _, re := range summary.Errors {
					fmt.Fprintf(out, "  row %d: %s\n", re.Row, re.Message)
				}
			}
			return nil
		},
	}
}

func reportCmd() *command {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	output := fs.StringP("output", "o", "products-report.xlsx", "path of the xlsx file to write")

	return &command{
		flags: fs,
		usage: "report [-o file]",
		short: "Write the stock value report as an xlsx workbook",
		exec: func(ctx context.Context, products *service.ProductService, out io.Writer, _ []string) error {
			docs, err := products.Report(ctx)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := spreadsheet.WriteReport(&buf, docs); err != nil {
				return err
			}
			if err := atomic.WriteFile(*output, &buf); err != nil {
				return fmt.Errorf("failed to write %s: %w", *output, err)
			}

			fmt.Fprintf(out, "wrote %d products to %s\n", len(docs), *output)
			return nil
		},
	}
}

func purgeCmd() *command {
	fs := flag.NewFlagSet("purge", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm deleting every product")

	return &command{
		flags: fs,
		usage: "purge --yes",
		short: "Delete all products",
		exec: func(ctx context.Context, products *service.ProductService, out io.Writer, _ []string) error {
			if !*yes {
				return errPurgeNotConfirmed
			}

			res, err := products.DeleteAll(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "deleted %d products\n", res.DeletedCount)
			return nil
		},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: shopctl [--config dir] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-22s %s\n", c.usage, c.short)
	}
}
