// Package buffer implements methods for writing and reading fixed-width
// values and slices to and from io.Writer and io.Reader.
package buffer

import (
	"encoding/binary"
	"io"
)

// WriteUint8 writes c on w.
func WriteUint8(w io.Writer, c uint8) (n int64, err error) {
	nint, err := w.Write([]byte{c})
	return int64(nint), err
}

// WriteUint64 writes c on w.
func WriteUint64(w io.Writer, c uint64) (n int64, err error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, c)
	nint, err := w.Write(buff)
	return int64(nint), err
}

// WriteUint64Slice writes the length of s followed by its values on w.
func WriteUint64Slice(w io.Writer, s []uint64) (n int64, err error) {

	var inc int64

	if n, err = WriteUint64(w, uint64(len(s))); err != nil {
		return
	}

	for i := range s {
		if inc, err = WriteUint64(w, s[i]); err != nil {
			return n + inc, err
		}
		n += inc
	}

	return
}

// ReadUint8 reads a uint8 from r on c.
func ReadUint8(r io.Reader, c *uint8) (n int64, err error) {
	buff := make([]byte, 1)
	nint, err := io.ReadFull(r, buff)
	*c = buff[0]
	return int64(nint), err
}

// ReadUint64 reads a uint64 from r on c.
func ReadUint64(r io.Reader, c *uint64) (n int64, err error) {
	buff := make([]byte, 8)
	nint, err := io.ReadFull(r, buff)
	*c = binary.LittleEndian.Uint64(buff)
	return int64(nint), err
}

// ReadUint64Slice reads a length-prefixed []uint64 from r on s.
func ReadUint64Slice(r io.Reader, s *[]uint64) (n int64, err error) {

	var inc int64
	var size uint64

	if n, err = ReadUint64(r, &size); err != nil {
		return
	}

	if uint64(len(*s)) != size {
		*s = make([]uint64, size)
	}

	for i := range *s {
		if inc, err = ReadUint64(r, &(*s)[i]); err != nil {
			return n + inc, err
		}
		n += inc
	}

	return
}
