package utils

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// GetNthBit finds the bit in the byte array bs
// at offset offset, and determines whether it is 1 or 0.
// return true if the nth bit is 1, false otherwise.
// from MSB to LSB order
func GetNthBit(bs []byte, offset uint32) bool {
	arrayOffset := offset / 8
	bitOfByte := offset % 8

	masked := int(bs[arrayOffset] & (1 << uint(7-bitOfByte)))
	return masked != 0
}

// FlipNthBit inverts the bit of bs at offset offset, in MSB to LSB order.
// bs is modified in place.
func FlipNthBit(bs []byte, offset uint32) {
	bs[offset/8] ^= 1 << uint(7-offset%8)
}

// MaskBits zeroes every bit of bs after the first n bits.
// bs is modified in place.
func MaskBits(bs []byte, n uint32) {
	full := n / 8
	if full >= uint32(len(bs)) {
		return
	}
	if rem := n % 8; rem != 0 {
		bs[full] &= 0xff << uint(8-rem)
		full++
	}
	for i := full; i < uint32(len(bs)); i++ {
		bs[i] = 0
	}
}

// ULongToBytes converts an uint64 variable to byte array
// in little endian format
func ULongToBytes(num uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, num)
	return buf
}

// WriteFile writes buf to a file whose path is indicated by filename.
func WriteFile(filename string, buf []byte, perm os.FileMode) error {
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("Can't write file. File '%s' already exists\n",
			filename)
	}

	return os.WriteFile(filename, buf, perm)
}

// ResolvePath returns the absolute path of file.
// This will use other as a base path if file is just a file name.
func ResolvePath(file, other string) string {
	if !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(other), file)
	}
	return file
}
