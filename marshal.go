package vkbind

import (
	"math"
	"runtime"
)

// callArena owns every temporary allocation made while building the native
// form of one command's parameters. Memory handed to the driver is pinned so
// that Go pointers nested inside native structs stay valid and unmoved for
// the duration of the call; release unpins all of it at once. Nothing
// allocated from an arena may be retained after the call returns.
type callArena struct {
	pinner runtime.Pinner
	pinned int
}

func newCallArena() *callArena {
	return &callArena{}
}

func (a *callArena) pin(p any) {
	a.pinner.Pin(p)
	a.pinned++
}

// release unpins everything allocated so far. It is safe to call on the
// failure path of a partially built struct.
func (a *callArena) release() {
	a.pinner.Unpin()
	a.pinned = 0
}

// arenaNew allocates one zeroed native struct.
func arenaNew[T any](a *callArena) *T {
	p := new(T)
	a.pin(p)
	return p
}

// arenaSlice allocates n zeroed elements and returns them together with a
// pointer to the first one. For n == 0 both are nil: an empty array is never
// represented by a dangling non-nil pointer.
func arenaSlice[T any](a *callArena, n int) ([]T, *T) {
	if n == 0 {
		return nil, nil
	}
	s := make([]T, n)
	a.pin(&s[0])
	return s, &s[0]
}

func checkCount(field string, n int) (uint32, error) {
	if n < 0 || n > math.MaxUint32 {
		return 0, invalidArgument("%s: %d elements do not fit a uint32 count", field, n)
	}
	return uint32(n), nil
}

func pairedLengths(fieldA string, lenA int, fieldB string, lenB int) error {
	if lenA != lenB {
		return invalidArgument("%s has %d elements but %s has %d", fieldA, lenA, fieldB, lenB)
	}
	return nil
}

// marshalSlice converts a managed array into a count and a pointer to its
// native twin, element by element. nil and empty input both produce (0, nil).
// conv is usually a vulkanize method expression.
func marshalSlice[M, N any](a *callArena, field string, in []M, conv func(*M, *callArena, *N) error) (uint32, *N, error) {
	count, err := checkCount(field, len(in))
	if err != nil || count == 0 {
		return 0, nil, err
	}
	out, first := arenaSlice[N](a, len(in))
	for i := range in {
		if err := conv(&in[i], a, &out[i]); err != nil {
			return 0, nil, err
		}
	}
	return count, first, nil
}

// marshalValues copies a slice of plain values whose native form only
// differs in type.
func marshalValues[M ~uint32 | ~int32 | ~float32 | ~uint64, N ~uint32 | ~int32 | ~float32 | ~uint64](a *callArena, field string, in []M) (uint32, *N, error) {
	count, err := checkCount(field, len(in))
	if err != nil || count == 0 {
		return 0, nil, err
	}
	out, first := arenaSlice[N](a, len(in))
	for i, v := range in {
		out[i] = N(v)
	}
	return count, first, nil
}

// handleOwner is anything that wraps a native handle.
type handleOwner interface {
	Handle() Handle
}

// marshalHandles reads the raw handle out of each wrapper. This happens at
// marshal time, immediately before the native call, never when the managed
// parameters were built: a wrapper may have been replaced in between.
func marshalHandles[H handleOwner](a *callArena, field string, in []H) (uint32, *Handle, error) {
	count, err := checkCount(field, len(in))
	if err != nil || count == 0 {
		return 0, nil, err
	}
	out, first := arenaSlice[Handle](a, len(in))
	for i, h := range in {
		if isNilOwner(h) {
			return 0, nil, invalidArgument("%s[%d] is nil", field, i)
		}
		out[i] = h.Handle()
	}
	return count, first, nil
}

// optionalHandle returns the raw handle of an optional wrapper, or NullHandle.
func optionalHandle[H handleOwner](h H) Handle {
	if isNilOwner(h) {
		return NullHandle
	}
	return h.Handle()
}

// cstring encodes one string into arena memory. The empty string maps to a
// nil pointer when optional is set.
func (a *callArena) cstring(field, s string, optional bool) (*byte, error) {
	if s == "" && optional {
		return nil, nil
	}
	buf, err := encodeString(s)
	if err != nil {
		return nil, invalidArgument("%s: %v", field, err)
	}
	a.pin(&buf[0])
	return &buf[0], nil
}

// cstrings encodes an array of strings. Every string gets its own
// allocation; if one fails, the ones already encoded remain owned by the
// arena and are released with it.
func (a *callArena) cstrings(field string, in []string) (uint32, **byte, error) {
	count, err := checkCount(field, len(in))
	if err != nil || count == 0 {
		return 0, nil, err
	}
	ptrs, first := arenaSlice[*byte](a, len(in))
	for i, s := range in {
		p, err := a.cstring(field, s, false)
		if err != nil {
			return 0, nil, err
		}
		ptrs[i] = p
	}
	return count, first, nil
}
