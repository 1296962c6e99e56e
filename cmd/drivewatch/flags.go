package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	ConfigFile string
	Mode       string
	ForceRun   bool
	UserID     string
}

func ParseFlags() AppFlags {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Mode to run the agent: once or daemon")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	forceRun := flag.Bool("force-run", false, "Bypass the active-window gate for this cycle (once mode only)")
	userID := flag.String("user", "", "Identity of whoever requested a forced run, for audit logging")

	flag.Parse()

	flags := AppFlags{
		ForceRun: *forceRun,
		UserID:   *userID,
	}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	if flags.Mode != "once" && flags.Mode != "daemon" {
		fmt.Fprintln(os.Stderr, "[FATAL] --mode argument is required (once or daemon)")
		os.Exit(1)
	}

	return flags
}
