package gbrom

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-faster/jx"
)

// PrintInfos writes a human readable summary of the rom header.
func (rom *Rom) PrintInfos(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", rom.Title())
	fmt.Fprintf(tw, "Type:\t%s (0x%02X)\n", rom.Type(), uint8(rom.Type()))
	fmt.Fprintf(tw, "CGB:\t%s\n", rom.CGB())
	fmt.Fprintf(tw, "ROM size:\t%d KiB (%d banks)\n", rom.ROMSize()/1024, rom.NumBanks())
	fmt.Fprintf(tw, "RAM size:\t%d KiB\n", rom.RAMSize()/1024)
	fmt.Fprintf(tw, "Checksum:\t%v\n", rom.ChecksumOK())
	fmt.Fprintf(tw, "xxhash:\t%016x\n", rom.Hash())
	tw.Flush()
}

// EncodeJSON writes the rom header summary as a JSON object.
func (rom *Rom) EncodeJSON(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("title", func(e *jx.Encoder) { e.Str(rom.Title()) })
		e.Field("type", func(e *jx.Encoder) { e.Str(rom.Type().String()) })
		e.Field("type_code", func(e *jx.Encoder) { e.Int(int(rom.Type())) })
		e.Field("cgb", func(e *jx.Encoder) { e.Str(rom.CGB().String()) })
		e.Field("rom_size", func(e *jx.Encoder) { e.Int(rom.ROMSize()) })
		e.Field("ram_size", func(e *jx.Encoder) { e.Int(rom.RAMSize()) })
		e.Field("checksum_ok", func(e *jx.Encoder) { e.Bool(rom.ChecksumOK()) })
		e.Field("xxhash", func(e *jx.Encoder) { e.Str(fmt.Sprintf("%016x", rom.Hash())) })
	})
}
