package cli

import "flag"

// CleanFlags holds the CLI flags for the clean command.
type CleanFlags struct {
	InputPath  string
	OutputPath string
	Workers    int
	DBPath     string
	Verbose    bool
}

// ParseCleanFlags parses command line flags for the clean command.
func ParseCleanFlags() *CleanFlags {
	flags := &CleanFlags{}
	flag.StringVar(&flags.InputPath, "in", "", "Path to the raw transaction export CSV (required)")
	flag.StringVar(&flags.OutputPath, "out", "cleaned_transactions.csv", "Path to write the cleaned CSV")
	flag.IntVar(&flags.Workers, "workers", 0, "Per-order worker pool size (0 = config default)")
	flag.StringVar(&flags.DBPath, "db", "", "SQLite path for run history (empty = config default, \"-\" = disabled)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int
	Verbose bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (0 = config default)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
