package common

// WipeByteArray overwrites the buffer with zeros. Use it to scrub password
// bytes once they are no longer needed. Safe to call with nil.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
