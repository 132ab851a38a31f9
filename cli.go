package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"gbmbc/emu"
	"gbmbc/emu/log"
)

type mode byte

const (
	romInfosMode mode = iota // Show ROM infos
	replayMode               // Replay a bus trace
	scanMode                 // Scan a directory of ROMs
	versionMode              // Show gbmbc version
)

type (
	CLI struct {
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Replay   Replay   `cmd:"" help:"Replay a bus trace against a cartridge."`
		Scan     Scan     `cmd:"" help:"List the cartridges found in a directory."`
		Version  Version  `cmd:"" help:"Show gbmbc version."`

		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Config string     `help:"Configuration file." type:"path" placeholder:"FILE"`
		Model  emu.Model  `help:"${model_help}" placeholder:"auto|dmg|cgb"`

		mode mode
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		JSON    bool   `name:"json" help:"Output JSON."`
	}

	Replay struct {
		RomPath   string   `arg:"" name:"/path/to/rom" type:"existingfile"`
		TracePath string   `arg:"" name:"/path/to/trace" help:"${trace_help}" type:"existingfile"`
		Out       *outfile `name:"out" help:"Write every read value." placeholder:"FILE|stdout|stderr"`
		Snapshot  string   `name:"snapshot" help:"Write the controller state once replay is done." type:"path" placeholder:"FILE"`
		NoSave    bool     `name:"no-save" help:"Neither load nor write the battery save."`
	}

	Scan struct {
		Dir  string `arg:"" name:"/path/to/dir" type:"existingdir"`
		Jobs int    `name:"jobs" short:"j" help:"Number of files to open concurrently (0 means one per CPU)." default:"0"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":   "Enable logging for specified modules.",
	"model_help": "Console model, overrides the configuration file.",
	"trace_help": "Bus trace, one 'W AAAA VV' or 'R AAAA [VV]' per line.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("gbmbc"),
		kong.Description("Game Boy cartridge controller emulation."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "rom-infos </path/to/rom>":
		cfg.mode = romInfosMode
	case "replay </path/to/rom> </path/to/trace>":
		cfg.mode = replayMode
	case "scan </path/to/dir>":
		cfg.mode = scanMode
	case "version":
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "replay") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
