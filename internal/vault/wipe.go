package vault

// wipe zeroes a transient plaintext buffer. Nil-safe so it can be
// deferred before the error check on the call that produced the buffer.
func wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
