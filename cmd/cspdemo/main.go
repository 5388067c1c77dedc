// Command cspdemo runs a handful of canonical constraint satisfaction
// scenarios against the csp package's solvers: an unsatisfiable instance, a
// tree-shaped instance, the classic Australia map-coloring problem, and a
// randomly generated planar map. It replaces Example.py/main.py's
// benchmark-and-plot driver with a small, scriptable CLI - the
// benchmarking/plotting harness itself (numpy, matplotlib, winsound) stays
// out of scope.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kevinmaggi/gocutset/internal/mapgen"
	"github.com/kevinmaggi/gocutset/pkg/csp"
)

var (
	algorithm  string
	useMAC     bool
	heuristic  bool
	randomSeed int64
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "cspdemo",
		Short: "Run example finite-domain constraint satisfaction problems",
	}
	root.PersistentFlags().StringVar(&algorithm, "algorithm", "backtrack", "solving algorithm: backtrack or cutset")
	root.PersistentFlags().BoolVar(&useMAC, "mac", true, "use MAC-guided forward checking during search")
	root.PersistentFlags().BoolVar(&heuristic, "heuristic", true, "use MRV+Degree variable ordering for cutset")
	root.PersistentFlags().Int64Var(&randomSeed, "seed", 0, "random seed for cutset's random variable choice and map generation")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")

	root.AddCommand(unsatCommand())
	root.AddCommand(treeCommand())
	root.AddCommand(australiaCommand())
	root.AddCommand(mapCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(runID string) *logrus.Entry {
	log := logrus.New()
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log.WithField("run_id", runID)
}

func solverConfig(log logrus.FieldLogger) csp.SolverConfig {
	cfg := csp.DefaultSolverConfig()
	cfg.Logger = log
	cfg.UseMAC = useMAC
	cfg.Heuristic = heuristic
	cfg.RandomSeed = randomSeed
	return cfg
}

func solve(ctx context.Context, c *csp.CSP, log *logrus.Entry) {
	cfg := solverConfig(log)
	start := time.Now()

	switch algorithm {
	case "cutset":
		result, err := csp.Cutset(ctx, c, cfg)
		if err != nil {
			log.WithError(err).Error("cutset failed")
			return
		}
		report(log, c, result.Assignment, time.Since(start))
		log.WithField("tree_dimension", result.TreeDimension).Info("cutset residual size")
	default:
		a, err := csp.Backtrack(ctx, c, cfg)
		if err != nil {
			log.WithError(err).Error("backtrack failed")
			return
		}
		report(log, c, a, time.Since(start))
	}
}

// report logs a's binding for every variable in c, in name order for
// stable output. A non-null Assignment is expected to bind every variable
// in c, so MustValue's error is surfaced rather than silently skipped - a
// solver returning an incomplete non-null solution would be a bug.
func report(log *logrus.Entry, c *csp.CSP, a *csp.Assignment, elapsed time.Duration) {
	if a.IsNull() {
		log.WithField("elapsed", elapsed).Warn("no solution found")
		return
	}
	vars := c.Variables()
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name() < vars[j].Name() })
	for _, v := range vars {
		val, err := a.MustValue(v)
		if err != nil {
			log.WithError(err).WithField("variable", v.Name()).Error("solution missing expected binding")
			continue
		}
		log.WithFields(logrus.Fields{"variable": v.Name(), "value": val}).Info("bound")
	}
	log.WithField("elapsed", elapsed).Info("solution found")
}

func unsatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unsat",
		Short: "Solve a deliberately unsatisfiable 3-variable chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(uuid.NewString())
			c := csp.New()
			a := csp.NewVariable("a", "red", "orange")
			b := csp.NewVariable("b", "red", "black")
			d := csp.NewVariable("d", "red", "black")
			c.AddVariable(a)
			c.AddVariable(b)
			c.AddVariable(d)
			if err := c.AddUnaryConstraint(a, csp.Equals, "orange", false); err != nil {
				return err
			}
			if err := c.AddBinaryConstraint(b, csp.Equals, a, false); err != nil {
				return err
			}
			if err := c.AddBinaryConstraint(d, csp.Equals, b, false); err != nil {
				return err
			}
			solve(cmd.Context(), c, log)
			return nil
		},
	}
}

func treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Solve a tree-shaped chain a<b<c using the dedicated tree solver",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(uuid.NewString())
			c := csp.New()
			values := []any{1, 2, 3, 4}
			a := csp.NewVariable("a", values...)
			b := csp.NewVariable("b", values...)
			d := csp.NewVariable("d", values...)
			c.AddVariable(a)
			c.AddVariable(b)
			c.AddVariable(d)
			if err := c.AddBinaryConstraint(a, csp.Lesser, b, false); err != nil {
				return err
			}
			if err := c.AddBinaryConstraint(b, csp.Lesser, d, false); err != nil {
				return err
			}

			start := time.Now()
			sol, err := csp.TreeSolver(c)
			if err != nil {
				return err
			}
			report(log, c, sol, time.Since(start))
			return nil
		},
	}
}

func australiaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "australia",
		Short: "Solve the classic 3-coloring of mainland Australia's states",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(uuid.NewString())
			c := csp.New()
			values := []any{"red", "green", "blue"}
			names := []string{"wa", "nt", "sa", "q", "nsw", "v", "t"}
			vars := make(map[string]*csp.Variable, len(names))
			for _, n := range names {
				v := csp.NewVariable(n, values...)
				c.AddVariable(v)
				vars[n] = v
			}
			adjacency := [][2]string{
				{"wa", "nt"}, {"wa", "sa"}, {"nt", "q"}, {"nt", "sa"},
				{"sa", "q"}, {"sa", "nsw"}, {"sa", "v"}, {"q", "nsw"}, {"nsw", "v"},
			}
			for _, pair := range adjacency {
				if err := c.AddBinaryConstraint(vars[pair[0]], csp.Different, vars[pair[1]], false); err != nil {
					return err
				}
			}
			solve(cmd.Context(), c, log)
			return nil
		},
	}
}

func mapCommand() *cobra.Command {
	var regions int
	var colors int
	var cutsetSize int

	cmd := &cobra.Command{
		Use:   "mapgen",
		Short: "Generate a random planar map and solve its coloring",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(uuid.NewString())
			seed := randomSeed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			m, err := mapgen.GenerateMap(rng, regions, mapgen.Options{NumColor: colors, MinimalCutsetSize: cutsetSize})
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"regions": len(m.Regions), "borders": len(m.Borders)}).Info("map generated")

			c, err := m.ToCSP()
			if err != nil {
				return err
			}
			solve(cmd.Context(), c, log)
			return nil
		},
	}
	cmd.Flags().IntVar(&regions, "regions", 12, "number of regions to generate")
	cmd.Flags().IntVar(&colors, "colors", 4, "number of colors available")
	cmd.Flags().IntVar(&cutsetSize, "cutset-size", 2, "number of regions to link to every reachable region beyond the spanning tree")
	return cmd
}
