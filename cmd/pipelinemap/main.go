package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	alchemical "github.com/Aesonus/alchemical-storage"
	"github.com/Aesonus/alchemical-storage/config"
)

var (
	configFlag  = flag.String("config", "", "Path to a pipeline config document")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := alchemical.GetVersionInfo()
		fmt.Printf("alchemical-storage pipelinemap version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if *configFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: pipelinemap -config <file>")
		os.Exit(2)
	}

	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "pipelinemap: %v\n", err)
		os.Exit(1)
	}
}

// run loads the config document and resolves the declared pipeline against
// its own model namespace, reporting what a service using this document
// would get at startup.
func run(path string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	ns, err := cfg.Namespace()
	if err != nil {
		return err
	}
	pipeline, err := cfg.BuildPipeline(ns)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(ns))
	for name := range ns {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%s: ok\n", path)
	for _, name := range names {
		model := ns[name]
		fmt.Printf("  model %s -> table %s (%d columns, %d relationships)\n",
			name, model.Table, len(model.Columns), len(model.Relationships))
	}
	fmt.Printf("  pipeline: %d visitor(s)\n", len(pipeline))
	return nil
}
