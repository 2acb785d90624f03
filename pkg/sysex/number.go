package sysex

// MaxNumber is the largest value that fits into two 7-bit data bytes.
const MaxNumber = 1<<14 - 1

// Encode14 splits the low 14 bits of n into a big-endian pair of 7-bit bytes.
func Encode14(n int) [2]byte {
	return [2]byte{byte(n>>7) & 0x7F, byte(n) & 0x7F}
}

// Decode14 is the inverse of Encode14. High bits of either byte are ignored.
func Decode14(b [2]byte) int {
	return int(b[0]&0x7F)<<7 | int(b[1]&0x7F)
}

// Checksum sums the bytes and keeps the low 14 bits, encoded like a number.
func Checksum(data []byte) [2]byte {
	var sum int
	for _, b := range data {
		sum += int(b)
	}
	return Encode14(sum & MaxNumber)
}
