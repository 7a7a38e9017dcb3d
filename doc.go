// This module computes geometric means of byte sequences in parallel, and
// compares six ways of distributing and merging the work.
//
// It provides the following packages:
//
// geomean-lab/geomean provides the geometric mean and its work distribution
// strategies, together with a Strategy type to select one of them.
//
// geomean-lab/parallel provides parallel loops and reductions over ranges:
// fork/join ranges, worker teams, static blocks, and guided scheduling.
//
// geomean-lab/gsync provides the shared cells that workers coordinate through:
// an atomic float64 accumulator and an atomic work cursor.
//
// geomean-lab/cmd/geomean is a command that loads files or strings and prints
// their geometric mean together with the time it took.
package geomeanlab
