// Package domain holds key-handling helpers shared by the crypto services.
package domain

// Zero overwrites b with zeros so key material does not outlive its last use.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
