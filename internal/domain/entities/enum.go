package entities

type enumEntry[T ~string] struct {
	Value T
	Label string
}

// enumTable is the single source of legal values and display labels for a closed set.
type enumTable[T ~string] []enumEntry[T]

func (t enumTable[T]) has(v T) bool {
	for _, e := range t {
		if e.Value == v {
			return true
		}
	}
	return false
}

func (t enumTable[T]) label(v T) string {
	for _, e := range t {
		if e.Value == v {
			return e.Label
		}
	}
	return string(v)
}

func (t enumTable[T]) values() []T {
	out := make([]T, len(t))
	for i, e := range t {
		out[i] = e.Value
	}
	return out
}
