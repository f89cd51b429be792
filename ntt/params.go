package ntt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fhelab/hekl/utils/buffer"
)

// ParametersLiteral stores the minimum information to uniquely identify an
// NTT instance and reconstruct it efficiently. Its purpose is to
// facilitate marshalling, the tables being re-derived from the root.
type ParametersLiteral struct {
	LogN  uint8
	Q     uint64
	Omega uint64
}

// ParametersLiteral returns the ParametersLiteral of the instance.
func (ntt *NTT) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogN:  uint8(ntt.logN),
		Q:     ntt.q,
		Omega: ntt.omega,
	}
}

// NewNTTFromParametersLiteral creates an NTT instance from the provided
// ParametersLiteral, re-validating the root.
func NewNTTFromParametersLiteral(p ParametersLiteral) (*NTT, error) {
	return NewNTTWithRoot(1<<int(p.LogN), p.Q, p.Omega)
}

// BinarySize returns the serialized size of the instance in bytes.
func (ntt *NTT) BinarySize() int {
	return 1 + 8 + 8
}

// WriteTo writes the instance's ParametersLiteral on w.
func (ntt *NTT) WriteTo(w io.Writer) (n int64, err error) {

	var inc int64

	p := ntt.ParametersLiteral()

	if n, err = buffer.WriteUint8(w, p.LogN); err != nil {
		return
	}

	if inc, err = buffer.WriteUint64(w, p.Q); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = buffer.WriteUint64(w, p.Omega); err != nil {
		return n + inc, err
	}
	n += inc

	return
}

// ReadFrom reads a ParametersLiteral from r and rebuilds the instance's
// precomputation from it.
func (ntt *NTT) ReadFrom(r io.Reader) (n int64, err error) {

	var inc int64
	var p ParametersLiteral

	if n, err = buffer.ReadUint8(r, &p.LogN); err != nil {
		return
	}

	if inc, err = buffer.ReadUint64(r, &p.Q); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = buffer.ReadUint64(r, &p.Omega); err != nil {
		return n + inc, err
	}
	n += inc

	other, err := NewNTTFromParametersLiteral(p)
	if err != nil {
		return n, err
	}

	*ntt = *other

	return
}

// MarshalBinary encodes the instance's ParametersLiteral on a byte slice.
func (ntt *NTT) MarshalBinary() (data []byte, err error) {
	buf := bytes.NewBuffer(make([]byte, 0, ntt.BinarySize()))
	_, err = ntt.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a byte slice generated by MarshalBinary and
// rebuilds the instance's precomputation.
func (ntt *NTT) UnmarshalBinary(data []byte) (err error) {
	n, err := ntt.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if int(n) != len(data) {
		return fmt.Errorf("invalid encoding: read %d/%d bytes", n, len(data))
	}
	return nil
}
