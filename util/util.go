package util

// Unpacks a slice into arguments and returns how many were filled
// If the slice has less elements than variables passed in, the rest of the variables are not modified
// If the slice has more elements than the variables passed in, the additional elements are ignored
func Unpack[T any](toUnpack []T, unpackInto ...*T) int {
	n := min(len(toUnpack), len(unpackInto))
	for i := range n {
		*unpackInto[i] = toUnpack[i]
	}
	return n
}
