package ffmpeg

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText decodes a chunk of diagnostic output defensively. ffmpeg writes
// stderr in the host's locale encoding, which cannot be detected reliably:
// try UTF-8 first and fall back to Windows-1252 when the bytes are not valid
// UTF-8. A chunk boundary can split a multi-byte rune and trip the fallback
// for that one chunk; the progress markers are ASCII, so parsing survives.
func DecodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
