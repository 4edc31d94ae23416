// Package encoding normalises uploaded text files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type Charset string

const (
	UTF8        Charset = "UTF-8"
	ISO88591    Charset = "ISO-8859-1"
	Windows1252 Charset = "windows-1252"
)

const sniffLen = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Decode returns a UTF-8 view of r and the charset it was read as.
//
// A UTF-8 BOM is dropped. Input that is already valid UTF-8 passes through.
// Anything else goes through chardet, and Windows-1252 is assumed when the
// detector cannot tell, since it is a superset of the printable ISO-8859-1 range.
func Decode(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing charset: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, UTF8, nil
	}

	if utf8.Valid(trimPartialRune(head)) {
		return br, UTF8, nil
	}

	switch detect(head) {
	case ISO88591:
		return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), ISO88591, nil
	default:
		return transform.NewReader(br, charmap.Windows1252.NewDecoder()), Windows1252, nil
	}
}

func detect(head []byte) Charset {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return Windows1252
	}

	if result.Charset == string(ISO88591) {
		return ISO88591
	}

	return Windows1252
}

// trimPartialRune drops a multi-byte sequence cut off by the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
