// Package sampling implements the pseudo-random number generators used to
// draw uniform residues modulo q.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/bits"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for the generation of random bytes.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG is a PRNG backed by crypto/rand that can be
// shared across threads.
type ThreadSafePRNG struct {
}

// NewPRNG returns a new PRNG that is thread-safe.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read reads random bytes on sum.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG is a PRNG producing a deterministic sequence of random bytes
// from a key, using the hash function blake2b in XOF mode. Two KeyedPRNG
// instantiated with the same key produce the same sequence.
// WARNING: KeyedPRNG should NOT be called by multiple threads, as the
// resulting sequence would not be deterministic for a given key.
type KeyedPRNG struct {
	mutex sync.Mutex
	key   []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil which is treated as key=[]byte{}.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = key
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Key returns a copy of the key used to seed the PRNG.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
}

// RandUniform samples a uniform random value in [0, v-1] by rejection
// sampling under the mask. mask needs to be of the form 2^n - 1 with
// mask >= v-1.
func RandUniform(prng PRNG, v, mask uint64) (randomInt uint64) {
	for {
		randomInt = randInt64(prng, mask)
		if randomInt < v {
			return randomInt
		}
	}
}

// randInt64 samples a uniform variable in the range [0, mask], where mask is of the form 2^n-1, with n in [0, 64].
func randInt64(prng PRNG, mask uint64) uint64 {

	randomBytes := make([]byte, 8)
	if _, err := prng.Read(randomBytes); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	return mask & binary.BigEndian.Uint64(randomBytes)
}

// UniformSampler wraps a PRNG and represents the state of a sampler of
// uniform residues modulo a fixed modulus.
type UniformSampler struct {
	prng    PRNG
	modulus uint64
	mask    uint64
	buff    []byte
	ptr     int
}

// NewUniformSampler creates a new UniformSampler drawing values in
// [0, modulus-1] from the given PRNG.
func NewUniformSampler(prng PRNG, modulus uint64) *UniformSampler {
	return &UniformSampler{
		prng:    prng,
		modulus: modulus,
		mask:    (1 << uint64(bits.Len64(modulus-1))) - 1,
		buff:    make([]byte, 1024),
		ptr:     1024,
	}
}

// Read fills p with uniform values in [0, modulus-1].
func (s *UniformSampler) Read(p []uint64) {

	for i := range p {

		for {

			// Refills the buff if it runs empty
			if s.ptr == len(s.buff) {
				if _, err := s.prng.Read(s.buff); err != nil {
					// Sanity check, this error should not happen.
					panic(err)
				}
				s.ptr = 0
			}

			randomUint := binary.BigEndian.Uint64(s.buff[s.ptr:s.ptr+8]) & s.mask
			s.ptr += 8

			if randomUint < s.modulus {
				p[i] = randomUint
				break
			}
		}
	}
}

// ReadNew samples a new slice of n uniform values in [0, modulus-1].
func (s *UniformSampler) ReadNew(n int) (p []uint64) {
	p = make([]uint64, n)
	s.Read(p)
	return
}
