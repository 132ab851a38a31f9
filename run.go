package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/go-faster/jx"
	"golang.org/x/sync/errgroup"

	"gbmbc/emu"
	"gbmbc/gbrom"
	"gbmbc/hw/mappers"
)

func romInfosMain(args RomInfos) {
	rom, err := gbrom.Open(args.RomPath)
	checkf(err, "failed to open rom")

	if !args.JSON {
		rom.PrintInfos(os.Stdout)
		return
	}

	var e jx.Encoder
	e.SetIdent(2)
	rom.EncodeJSON(&e)
	_, err = os.Stdout.Write(append(e.Bytes(), '\n'))
	checkf(err, "failed to write rom infos")
}

// replayMain replays a bus trace against the cartridge, between loading and
// writing its battery save.
func replayMain(args Replay, cfg emu.Config) {
	rom, err := gbrom.Open(args.RomPath)
	checkf(err, "failed to open rom")

	f, err := os.Open(args.TracePath)
	checkf(err, "failed to open trace")
	ops, err := emu.ParseTrace(f)
	f.Close()
	checkf(err, "invalid trace %s", args.TracePath)

	session, err := emu.PowerUp(rom, cfg.General.Model)
	checkf(err, "error during power up")

	dosave := !args.NoSave && cfg.Saves.Autosave
	if dosave {
		checkf(session.LoadSave(cfg.SavesDir()), "failed to load battery save")
	}

	var onRead func(emu.TraceOp, uint8)
	if args.Out != nil {
		defer args.Out.Close()
		onRead = func(op emu.TraceOp, val uint8) {
			fmt.Fprintf(args.Out, "%d: R %04X %02X\n", op.Line, op.Addr, val)
		}
	}

	replayErr := session.Replay(ops, onRead)

	if dosave {
		checkf(session.WriteSave(cfg.SavesDir()), "failed to write battery save")
	}
	if args.Snapshot != "" {
		checkf(os.WriteFile(args.Snapshot, session.SaveSnapshot(), 0644), "failed to write snapshot")
	}
	checkf(replayErr, "replay failed")
}

type scanResult struct {
	path   string
	title  string
	typ    gbrom.Type
	mapper string
	err    error
}

func (r scanResult) supported() bool {
	_, ok := mappers.All[r.typ]
	return r.err == nil && ok
}

// scanRoms opens every file under dir and reports what cartridge it holds.
// Results are sorted by path.
func scanRoms(ctx context.Context, dir string, jobs int) ([]scanResult, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]scanResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := scanResult{path: path}
			rom, err := gbrom.Open(path)
			if err != nil {
				res.err = err
			} else {
				res.title = rom.Title()
				res.typ = rom.Type()
				if desc, ok := mappers.All[res.typ]; ok {
					res.mapper = desc.Name
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b scanResult) int { return strings.Compare(a.path, b.path) })
	return results, nil
}

func scanMain(args Scan, w io.Writer) {
	results, err := scanRoms(context.Background(), args.Dir, args.Jobs)
	checkf(err, "failed to scan %s", args.Dir)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "path\ttitle\ttype\tmapper")
	nsupported := 0
	for _, r := range results {
		rel, err := filepath.Rel(args.Dir, r.path)
		if err != nil {
			rel = r.path
		}
		switch {
		case r.err != nil:
			fmt.Fprintf(tw, "%s\t-\t-\t%v\n", rel, r.err)
		case r.supported():
			nsupported++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rel, r.title, r.typ, r.mapper)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s\tunsupported\n", rel, r.title, r.typ)
		}
	}
	tw.Flush()
	fmt.Fprintf(w, "%d/%d supported cartridges\n", nsupported, len(results))
}
