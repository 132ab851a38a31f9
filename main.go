package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"gbmbc/emu"
)

func main() {
	cli := parseArgs(os.Args[1:])

	cfg := emu.LoadConfigOrDefault(cli.Config)
	if cli.Model != "" {
		cfg.General.Model = cli.Model
	}

	switch cli.mode {
	case romInfosMode:
		romInfosMain(cli.RomInfos)
	case replayMode:
		replayMain(cli.Replay, cfg)
	case scanMode:
		scanMain(cli.Scan, os.Stdout)
	case versionMode:
		fmt.Println("gbmbc", version())
	}
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}
	return info.Main.Version
}
