package mdast

import "bytes"

// maxDims is the longest raw "WxH" string that is parsed.
const maxDims = 30

// ParseDims reads an image's raw "WxH" dimensions. Leading digits are
// taken for each side and trailing text is ignored, so "100x50px" yields
// both sides. count is 0 when no width was found, 1 for a width alone
// and 2 when the height was read too.
func ParseDims(dims []byte) (width, height, count int) {
	if len(dims) == 0 || len(dims) > maxDims {
		return 0, 0, 0
	}

	width, rest, ok := readUint(dims)
	if !ok {
		return 0, 0, 0
	}
	rest, found := bytes.CutPrefix(rest, []byte("x"))
	if !found {
		return width, 0, 1
	}
	height, _, ok = readUint(rest)
	if !ok {
		return width, 0, 1
	}
	return width, height, 2
}

func readUint(b []byte) (int, []byte, bool) {
	b = bytes.TrimLeft(b, " \t\n")
	n, i := 0, 0
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		n = n*10 + int(b[i]-'0')
	}
	return n, b[i:], i > 0
}
