package bytestring

// Buffer is a mutable byte sequence used as the working buffer of an attack.
// Call Freeze to obtain an immutable Bytes snapshot.
type Buffer struct {
	buf []byte
}

// NewBuffer returns a zeroed buffer of n bytes.
func NewBuffer(n int) *Buffer {
	return &Buffer{buf: make([]byte, n)}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.buf) }

// At returns the byte at position i.
func (b *Buffer) At(i int) byte { return b.buf[i] }

// Set overwrites the byte at position i.
func (b *Buffer) Set(i int, v byte) { b.buf[i] = v }

// Append grows the buffer with the given bytes.
func (b *Buffer) Append(vals ...byte) { b.buf = append(b.buf, vals...) }

// AppendBytes grows the buffer with the content of s.
func (b *Buffer) AppendBytes(s Bytes) { b.buf = append(b.buf, s...) }

// Slice returns an immutable copy of the bytes in [i, j).
func (b *Buffer) Slice(i, j int) Bytes { return Bytes(b.buf[i:j]) }

// Freeze returns an immutable copy of the current content.
func (b *Buffer) Freeze() Bytes { return Bytes(b.buf) }

// Xor xors other into the buffer in place. Both must have the same length.
func (b *Buffer) Xor(other Bytes) error {
	if err := sameLength(len(b.buf), len(other)); err != nil {
		return err
	}
	for i := range b.buf {
		b.buf[i] ^= other[i]
	}
	return nil
}

// XorStream xors the keystream k into the buffer in place.
func (b *Buffer) XorStream(k Keystream) {
	for i := range b.buf {
		b.buf[i] ^= k.At(i)
	}
}

// ShiftLeft is the in-place version of Bytes.ShiftLeft.
func (b *Buffer) ShiftLeft(other Bytes) {
	n := len(other)
	switch {
	case n == 0:
	case n > len(b.buf):
		copy(b.buf, other[n-len(b.buf):])
	default:
		copy(b.buf, b.buf[n:])
		copy(b.buf[len(b.buf)-n:], other)
	}
}
