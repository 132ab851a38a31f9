// Package snapshot defines the serializable state of the emulated hardware.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/go-faster/jx"
)

const Version = 1

var ErrVersion = errors.New("unsupported snapshot version")

// Cart is the state of a cartridge controller.
type Cart struct {
	Version    int
	Mapper     string
	ColorMode  bool
	ROMBank    uint32
	RAMBank    uint32
	RAMEnabled bool
	RTC        RTC
	RAM        []byte
}

type RTC struct {
	Register uint8
	Latched  bool
	Prev     uint8
}

// Marshal encodes the state as JSON.
func (c *Cart) Marshal() []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(c.Version) })
		e.Field("mapper", func(e *jx.Encoder) { e.Str(c.Mapper) })
		e.Field("color_mode", func(e *jx.Encoder) { e.Bool(c.ColorMode) })
		e.Field("rom_bank", func(e *jx.Encoder) { e.UInt32(c.ROMBank) })
		e.Field("ram_bank", func(e *jx.Encoder) { e.UInt32(c.RAMBank) })
		e.Field("ram_enabled", func(e *jx.Encoder) { e.Bool(c.RAMEnabled) })
		e.Field("rtc", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("register", func(e *jx.Encoder) { e.UInt8(c.RTC.Register) })
				e.Field("latched", func(e *jx.Encoder) { e.Bool(c.RTC.Latched) })
				e.Field("prev", func(e *jx.Encoder) { e.UInt8(c.RTC.Prev) })
			})
		})
		if len(c.RAM) > 0 {
			e.Field("ram", func(e *jx.Encoder) { e.Base64(c.RAM) })
		}
	})
	return e.Bytes()
}

// Unmarshal decodes a state encoded by Marshal. Unknown keys are ignored.
func (c *Cart) Unmarshal(buf []byte) error {
	var tmp Cart
	d := jx.DecodeBytes(buf)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			tmp.Version, err = d.Int()
		case "mapper":
			tmp.Mapper, err = d.Str()
		case "color_mode":
			tmp.ColorMode, err = d.Bool()
		case "rom_bank":
			tmp.ROMBank, err = d.UInt32()
		case "ram_bank":
			tmp.RAMBank, err = d.UInt32()
		case "ram_enabled":
			tmp.RAMEnabled, err = d.Bool()
		case "rtc":
			err = tmp.RTC.decode(d)
		case "ram":
			tmp.RAM, err = d.Base64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("decode cartridge state: %w", err)
	}
	if tmp.Version != Version {
		return fmt.Errorf("%w: %d", ErrVersion, tmp.Version)
	}
	*c = tmp
	return nil
}

func (r *RTC) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "register":
			r.Register, err = d.UInt8()
		case "latched":
			r.Latched, err = d.Bool()
		case "prev":
			r.Prev, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
}
