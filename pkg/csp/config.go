package csp

import "github.com/sirupsen/logrus"

// SolverConfig tunes Backtrack and Cutset. It is modeled on
// pkg/minikanren's SolverConfig/DefaultSolverConfig pattern: a single
// options struct with a package-level constructor for sane defaults, passed
// explicitly rather than threaded through as positional arguments.
type SolverConfig struct {
	// Logger receives one Debug-level entry per variable assignment
	// attempt in Backtrack/AllSolutions/CountSolutions, and one per tree
	// residual handed to TreeSolver in Cutset. Defaults to
	// logrus.StandardLogger() if nil.
	Logger logrus.FieldLogger

	// MaxRecursionDepth bounds the search recursion of Backtrack,
	// AllSolutions, CountSolutions and Cutset, guarding
	// against runaway search on a pathological or malformed CSP. Zero
	// means unbounded. Not present in the original source; added because
	// a Go search routine run from a long-lived server process needs a
	// hard stop that a Python script run from a terminal does not (see
	// DESIGN.md).
	MaxRecursionDepth int

	// UseMAC selects MAC-guided backtracking (true) over plain
	// backtracking with only a one-time AC3 preprocessing pass (false).
	UseMAC bool

	// Heuristic selects, for Cutset, MRV+Degree variable ordering (true)
	// over uniform random selection among the remaining unassigned
	// variables (false), matching cutset(csp, heuristic) in the original
	// source.
	Heuristic bool

	// RandomSeed seeds Cutset's random variable choice when Heuristic is
	// false. Zero yields a fixed, reproducible sequence - callers wanting
	// non-reproducible randomness should set it explicitly (e.g. from
	// time.Now().UnixNano()).
	RandomSeed int64
}

// DefaultSolverConfig returns the configuration Backtrack and Cutset use
// when called without an explicit SolverConfig: a standard logrus logger,
// no recursion limit, MAC enabled, and heuristic (MRV+Degree) cutset
// variable selection.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Logger:            logrus.StandardLogger(),
		MaxRecursionDepth: 0,
		UseMAC:            true,
		Heuristic:         true,
	}
}

func (cfg SolverConfig) logger() logrus.FieldLogger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return logrus.StandardLogger()
}
