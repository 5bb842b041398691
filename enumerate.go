package vkbind

// enumerate runs a two-call query: call is first made with a nil buffer to
// learn the count, then with a buffer of that size. INCOMPLETE means the
// collection grew in between; the whole sequence is then retried from the
// count query. The result is trimmed to the count reported by the final
// fill call.
func enumerate[T any, C uint32 | uintptr](command string, call func(count *C, out *T) Result) ([]T, error) {
	for {
		var count C
		if _, err := check(command, call(&count, nil)); err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, nil
		}

		items, r := fill(int(count), func(out *T) Result { return call(&count, out) })
		if r == INCOMPLETE {
			continue
		}
		if _, err := check(command, r); err != nil {
			return nil, err
		}
		if int(count) > len(items) {
			count = C(len(items))
		}
		return items[:count], nil
	}
}

// enumerateVoid is enumerate for queries that cannot fail.
func enumerateVoid[T any](call func(count *uint32, out *T)) []T {
	var count uint32
	call(&count, nil)
	if count == 0 {
		return nil
	}
	items, _ := fill(int(count), func(out *T) Result {
		call(&count, out)
		return SUCCESS
	})
	if int(count) > len(items) {
		count = uint32(len(items))
	}
	return items[:count]
}

func fill[T any](n int, call func(out *T) Result) ([]T, Result) {
	a := newCallArena()
	defer a.release()
	items, first := arenaSlice[T](a, n)
	return items, call(first)
}
