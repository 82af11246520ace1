// Command funcsys evaluates and exports the series-based function system
// from the command line.
//
//	funcsys eval system -- -1 0.5 2
//	funcsys export system --start 0.1 --end 10 --step 0.1 --out positive.csv
//	funcsys demo --dir ./results
//
// Series parameters come from SERIES_EPSILON and SERIES_MAX_ITERATIONS and
// can be overridden with --epsilon and --iterations. eval and export accept
// --remote to run against a funcsys server instead.
package main
