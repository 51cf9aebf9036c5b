package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/paintbox/internal/app"
	"github.com/five82/paintbox/internal/catalog"
	"github.com/five82/paintbox/internal/inventory"
	"github.com/five82/paintbox/internal/logging"
	"github.com/five82/paintbox/internal/logtail"
	"github.com/five82/paintbox/internal/search"
	"github.com/five82/paintbox/internal/transfer"
)

func newListCmd(opts *app.Options) *cobra.Command {
	var filter, query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog colors with their quantities",
		Long: `Lists the catalog in order, narrowed by an optional search and stock filter.

Example:
  paintbox list --filter low_stock
  paintbox list -q blue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(env *app.Env) error {
				snap := env.Session.Snapshot()
				colors, st := search.Apply(env.Catalog.Colors(), snap, query, search.ParseFilter(filter))
				out := cmd.OutOrStdout()
				if len(colors) == 0 {
					fmt.Fprintln(out, "No colors match.")
					return nil
				}

				rows := make([][]string, 0, len(colors))
				for _, c := range colors {
					rows = append(rows, []string{c.Code, c.Name, strings.ToLower(c.Value), strconv.Itoa(snap.Get(c.Code))})
				}
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("CODE", "NAME", "VALUE", "QTY").
					Rows(rows...)
				fmt.Fprintln(out, t.String())
				fmt.Fprintf(out, "%d colors (%s)\n", st.FilteredCount, st.ActiveFilter.Label())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "stock filter: all, in_stock, out_of_stock or low_stock")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search by code or name")
	return cmd
}

func newSetCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "set CODE QUANTITY",
		Short: "Set the on-hand quantity of one color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil || qty < 0 || qty > inventory.MaxQuantity {
				return fmt.Errorf("invalid quantity %q: want a whole number from 0 to %d", args[1], inventory.MaxQuantity)
			}
			return withEnv(cmd, opts, func(env *app.Env) error {
				c, ok := env.Catalog.Lookup(strings.ToUpper(strings.TrimSpace(args[0])))
				if !ok {
					return fmt.Errorf("unknown color code %q", args[0])
				}
				got, err := env.Session.Set(cmd.Context(), c.Code, qty)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %d\n", c.Code, c.Name, got)
				return nil
			})
		},
	}
}

func newStatsCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show stock totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(env *app.Env) error {
				st := inventory.StatsFor(env.Catalog.Codes(), env.Session.Snapshot())
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-14s%5d\n", "Colors", st.TotalColors)
				fmt.Fprintf(out, "%-14s%5d\n", "In stock", st.InStock)
				fmt.Fprintf(out, "%-14s%5d\n", "Low stock", st.LowStock)
				fmt.Fprintf(out, "%-14s%5d\n", "Out of stock", st.OutOfStock)
				fmt.Fprintf(out, "%-14s%5d\n", "Total paints", st.TotalQuantity)
				return nil
			})
		},
	}
}

func newExportCmd(opts *app.Options) *cobra.Command {
	var dir string
	var toStdout, share bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory as JSON",
		Long: `Writes mtn-inventory-YYYY-MM-DD-HH-MM-SS.json into the export directory.

--stdout prints the payload instead, and --share prints a compact share code
that "paintbox import --share-code" accepts on another machine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if toStdout && share {
				return errors.New("--stdout and --share are mutually exclusive")
			}
			return withEnv(cmd, opts, func(env *app.Env) error {
				out := cmd.OutOrStdout()
				switch {
				case share:
					code, err := transfer.EncodeShareCode(env.Reconciler.Export())
					if err != nil {
						return err
					}
					fmt.Fprintln(out, code)
				case toStdout:
					data, err := env.Reconciler.Export().Marshal()
					if err != nil {
						return err
					}
					_, err = out.Write(data)
					return err
				default:
					target := env.Config.ExportDir
					if dir != "" {
						target = dir
					}
					path, err := env.Reconciler.ExportFile(target)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Exported to %s\n", path)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "export directory (default from config)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the payload to stdout")
	cmd.Flags().BoolVar(&share, "share", false, "print a share code")
	return cmd
}

func newImportCmd(opts *app.Options) *cobra.Command {
	var strategyName, shareCode string
	var dryRun, yes bool
	cmd := &cobra.Command{
		Use:   "import [PATH|-]",
		Short: "Import an exported inventory",
		Long: `Reads an export file (or stdin with -, or a share code), shows what would
change and applies it after confirmation.

Strategies:
  - replace: imported quantities overwrite current ones
  - merge: imported quantities are added to current ones
  - skip_existing: only colors you have none of are filled in

Colors missing from the file are never touched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(env *app.Env) error {
				strategy := env.Strategy
				if cmd.Flags().Changed("strategy") {
					s, err := transfer.ParseStrategy(strategyName)
					if err != nil {
						return err
					}
					strategy = s
				}

				var src transfer.Source
				fromStdin := false
				switch {
				case shareCode != "":
					src = transfer.ShareCodeSource{Code: shareCode}
				case len(args) == 1 && args[0] == "-":
					src = transfer.ReaderSource{R: cmd.InOrStdin(), Label: "stdin"}
					fromStdin = true
				case len(args) == 1:
					src = transfer.FileSource{Path: args[0]}
				default:
					src = transfer.FileSource{}
				}

				out := cmd.OutOrStdout()
				c, err := env.Reconciler.Load(cmd.Context(), src)
				if err != nil {
					return err
				}
				if c == nil {
					fmt.Fprintln(out, "Import cancelled.")
					return nil
				}

				p := env.Reconciler.Preview(c, strategy)
				printPreview(out, env.Catalog, c, p)
				if dryRun {
					return nil
				}
				if p.TotalChanges == 0 {
					fmt.Fprintln(out, "Nothing to import.")
					return nil
				}
				if !yes {
					if fromStdin {
						return errors.New("payload read from stdin: pass --yes to apply")
					}
					ok, err := confirm(cmd, "Apply these changes?")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Import discarded.")
						return nil
					}
				}

				if _, err := env.Reconciler.Commit(cmd.Context(), c, strategy); err != nil {
					return err
				}
				fmt.Fprintln(out, "Imported. "+p.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "merge strategy: replace, merge or skip_existing (default from config)")
	cmd.Flags().StringVar(&shareCode, "share-code", "", "import from a share code instead of a file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the preview without applying it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply without asking")
	return cmd
}

// printPreview writes the preview header and every new or updated catalog
// color. Codes outside the catalog are imported but only counted.
func printPreview(out io.Writer, cat *catalog.Catalog, c *transfer.Candidate, p transfer.Preview) {
	fmt.Fprintf(out, "Source:   %s (exported %s, %d colors)\n", c.Source, c.ExportedAt, len(c.Codes))
	fmt.Fprintf(out, "Strategy: %s\n", p.Strategy.Label())
	fmt.Fprintln(out, p.Summary())
	unlisted := 0
	for _, n := range p.NewColors {
		if !cat.Has(n.Code) {
			unlisted++
			continue
		}
		fmt.Fprintf(out, "  + %-10s %4d -> %d\n", n.Code, 0, n.Quantity)
	}
	for _, u := range p.UpdatedColors {
		if !cat.Has(u.Code) {
			unlisted++
			continue
		}
		fmt.Fprintf(out, "  ~ %-10s %4d -> %d\n", u.Code, u.CurrentQuantity, u.FinalQuantity)
	}
	if unlisted > 0 {
		fmt.Fprintf(out, "  (%d not in the catalog: kept, not listed)\n", unlisted)
	}
}

func newClearCmd(opts *app.Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset every quantity to zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(env *app.Env) error {
				out := cmd.OutOrStdout()
				if !yes {
					st := inventory.StatsFor(env.Catalog.Codes(), env.Session.Snapshot())
					fmt.Fprintf(out, "%d colors in stock, %d paints in total.\n", st.InStock, st.TotalQuantity)
					ok, err := confirm(cmd, "Clear the whole inventory?")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Clear cancelled.")
						return nil
					}
				}
				if err := env.Session.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Inventory cleared.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "clear without asking")
	return cmd
}

func newLogCmd(opts *app.Options) *cobra.Command {
	var lines int
	var level string
	var noColor bool
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(*opts)
			if err != nil {
				return err
			}
			minLevel, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}
			raw, err := logtail.Read(cfg.LogPath(), lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			formatted := logtail.FormatLines(raw, minLevel, !noColor)
			if len(formatted) == 0 {
				fmt.Fprintf(out, "No log entries in %s\n", cfg.LogPath())
				return nil
			}
			for _, line := range formatted {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to read (0 for all)")
	cmd.Flags().StringVarP(&level, "level", "l", "debug", "minimum level to show")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}

// confirm asks a yes/no question on the command's input. Anything but y or
// yes is a no.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
