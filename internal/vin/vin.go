package vin

import "math/rand/v2"

// Alphabet contains the characters allowed in a generated chassis number.
// I, O and Q are excluded per the VIN standard to avoid confusion with 1 and 0.
const Alphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

// Length is the fixed length of a chassis number
const Length = 17

// Generator produces candidate chassis numbers. Uniqueness is not guaranteed
// here; the service layer checks each candidate against storage and retries.
type Generator func() string

// New returns a chassis number of Length characters, each drawn independently
// and uniformly from Alphabet.
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(b)
}
