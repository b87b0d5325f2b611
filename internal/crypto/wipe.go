package crypto

import "runtime"

// Wipe overwrites b with zeros. The garbage collector may still have copied
// the data elsewhere, so this only narrows the window in which a secret is
// readable from memory.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	clear(b)
	runtime.KeepAlive(b)
}
