package mail

import "bytes"

const crlf = "\r\n"

func writeHeaderLine(b *bytes.Buffer, h, v string) {
	b.WriteString(h)
	b.WriteString(": ")
	b.WriteString(v)
	b.WriteString(crlf)
}

// AppendPartHeaders appends header lines of H to b, keys sorted,
// values of each key in their stored order. Header block terminator
// is not appended.
func AppendPartHeaders(b *bytes.Buffer, H Headers) {
	for _, k := range H.SortedKeys() {
		for _, v := range H[k] {
			writeHeaderLine(b, k, v)
		}
	}
}
