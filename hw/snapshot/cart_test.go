package snapshot

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCartMarshal(t *testing.T) {
	want := Cart{
		Version:    Version,
		Mapper:     "MBC3",
		ColorMode:  true,
		ROMBank:    0x7F,
		RAMBank:    3,
		RAMEnabled: true,
		RTC:        RTC{Register: 0x0A, Latched: true, Prev: 1},
		RAM:        []byte{0x00, 0x42, 0xFF, 0x10},
	}

	var got Cart
	if err := got.Unmarshal(want.Marshal()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestCartUnmarshalErrors(t *testing.T) {
	var c Cart
	err := c.Unmarshal([]byte(`{"version":2,"mapper":"MBC3"}`))
	if !errors.Is(err, ErrVersion) {
		t.Errorf("Unmarshal() = %v, want ErrVersion", err)
	}
	if c.Mapper != "" {
		t.Errorf("failed Unmarshal modified the state")
	}

	if err := c.Unmarshal([]byte(`{"version":1,"rom_bank":"x"}`)); err == nil {
		t.Errorf("Unmarshal() should fail on a bad rom_bank")
	}

	if err := c.Unmarshal([]byte(`{"version":1,"extra":[1,2],"rom_bank":5}`)); err != nil {
		t.Fatalf("unknown keys should be skipped: %v", err)
	}
	if c.ROMBank != 5 {
		t.Errorf("ROMBank = %d, want 5", c.ROMBank)
	}
}
