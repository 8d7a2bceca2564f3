package domain

import "crypto/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const CodeLength = 6

// codeByteLimit is the largest multiple of len(codeAlphabet) that fits in
// a byte. Bytes at or above it are rejected so every character is drawn
// uniformly.
const codeByteLimit = 256 - 256%len(codeAlphabet)

// NewTicketCode returns a random 6-character uppercase alphanumeric code.
// Uniqueness is enforced by the database constraint; callers retry on a
// duplicate-key error.
func NewTicketCode() string {
	out := make([]byte, 0, CodeLength)
	buf := make([]byte, 2*CodeLength)
	for len(out) < CodeLength {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		out = appendCodeChars(out, buf)
	}
	return string(out)
}

func appendCodeChars(dst, src []byte) []byte {
	for _, b := range src {
		if len(dst) == CodeLength {
			break
		}
		if int(b) >= codeByteLimit {
			continue
		}
		dst = append(dst, codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return dst
}
