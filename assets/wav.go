package assets

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var errNotWAV = errors.New("not a wav file")

// checkWAV walks the RIFF chunks of b and requires a usable "fmt " chunk
// followed by a "data" chunk whose samples are all present.
func checkWAV(b []byte) error {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return errNotWAV
	}

	haveFmt := false
	for off := 12; len(b)-off >= 8; {
		id := string(b[off : off+4])
		size := binary.LittleEndian.Uint32(b[off+4 : off+8])
		body := b[off+8:]

		switch id {
		case "fmt ":
			if size < 16 || len(body) < 16 {
				return fmt.Errorf("short fmt chunk")
			}
			channels := binary.LittleEndian.Uint16(body[2:4])
			rate := binary.LittleEndian.Uint32(body[4:8])
			if channels == 0 || rate == 0 {
				return fmt.Errorf("fmt chunk has %d channels at %d Hz", channels, rate)
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return fmt.Errorf("data chunk before fmt chunk")
			}
			// Streaming writers leave the size at 0xffffffff.
			if size != 0xffffffff && uint64(size) > uint64(len(body)) {
				return fmt.Errorf("data chunk truncated: %d of %d bytes", len(body), size)
			}
			return nil
		}

		next := uint64(off) + 8 + uint64(size) + uint64(size&1)
		if next > uint64(len(b)) {
			break
		}
		off = int(next)
	}

	if !haveFmt {
		return fmt.Errorf("missing fmt chunk")
	}
	return fmt.Errorf("missing data chunk")
}
