package layout

import "fmt"

// Checksum computes tmux's 16-bit rotate-and-sum layout checksum over body,
// bit-for-bit per spec.md §4.3: for every byte b, csum = ((csum>>1) |
// ((csum&1)<<15)) + b, mod 2^16, starting at 0.
func Checksum(body string) uint16 {
	var csum uint16
	for i := 0; i < len(body); i++ {
		csum = (csum >> 1) | ((csum & 1) << 15)
		csum += uint16(body[i])
	}
	return csum
}

// WithChecksum renders the full layout string "<csum>,<body>" with the
// checksum formatted as 4 lowercase hex digits.
func WithChecksum(body string) string {
	return fmt.Sprintf("%04x,%s", Checksum(body), body)
}
