package buddy

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/buddykit/internal/format"
)

// Report writes one row per class 0..MaxClass (class, block size, free count,
// used count) followed by one line per used block, rendered according to
// opts.Payloads. It does not modify the allocator.
func (a *Allocator) Report(w io.Writer, opts *ReportOptions) error {
	if opts == nil {
		opts = &ReportOptions{}
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "--- memory ---")
	fmt.Fprintf(bw, "%-2s | %-12s | %-6s | %s\n", "n", "true size", "free", "used")
	for c := 0; c <= int(a.maxClass); c++ {
		fmt.Fprintf(bw, "%2d | %12d | %6d | %6d\n", c, format.BlockSize(uint8(c)), a.freeN[c], a.usedN[c])
	}

	if opts.Payloads != PayloadNone {
		fmt.Fprintln(bw, "--- used ---")
		for c := 0; c <= int(a.maxClass); c++ {
			for off, seen := a.used[c], 0; off != format.NilOffset && seen < a.usedN[c]; seen++ {
				h, err := a.header(off)
				if err != nil {
					bw.Flush()
					return err
				}
				fmt.Fprintf(bw, "%2d: %s\n", c, a.renderPayload(h, opts))
				off = h.Next
			}
		}
	}
	return bw.Flush()
}

func (a *Allocator) renderPayload(h format.Header, opts *ReportOptions) string {
	payload := a.arena[h.Payload():h.End()]
	switch opts.Payloads {
	case PayloadHex:
		n := opts.HexBytes
		if n <= 0 {
			n = defaultHexBytes
		}
		n = min(n, len(payload))
		return hex.EncodeToString(payload[:n])
	default:
		if !h.Text() {
			return fmt.Sprintf("<%d bytes>", len(payload))
		}
		return renderText(payload)
	}
}

// renderText returns the NUL-terminated prefix of p. Bytes that are not valid
// UTF-8 are decoded as Windows-1252; text with control characters is quoted.
func renderText(p []byte) string {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	s := string(p)
	if !utf8.Valid(p) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(p)
		if err != nil {
			return strconv.Quote(s)
		}
		s = string(decoded)
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}
	return s
}
