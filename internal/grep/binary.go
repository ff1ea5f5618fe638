package grep

// binarySampleSize is the number of leading bytes inspected to classify a file.
const binarySampleSize = 300

// maxNonTextRatio is the share of non-text bytes above which a file is binary.
const maxNonTextRatio = 0.01

func isTextByte(b byte) bool {
	switch {
	case b >= 0x20 && b <= 0x7e:
		return true
	case b == '\t', b == '\n', b == '\v', b == '\f', b == '\r':
		return true
	default:
		return false
	}
}

// isBinary reports whether more than 1% of sample lies outside printable ASCII and ASCII whitespace.
// An empty sample is text.
func isBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	nonText := 0

	for _, b := range sample {
		if !isTextByte(b) {
			nonText++
		}
	}

	return float64(nonText)/float64(len(sample)) > maxNonTextRatio
}
