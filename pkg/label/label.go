// Package label provides the fixed-length names attached to unit
// tests. A Label is built once from a literal and never changes;
// its storage size counts a trailing NUL terminator that is not
// part of the reported length.
package label

// Label is an immutable, fixed-length character sequence. The zero
// value is the empty label. Labels are comparable with == and can
// be used as map keys.
type Label struct {
	// values holds the content without the terminator. The
	// terminator slot is implied and always NUL.
	values string
}

// New creates a Label from a literal. The storage size is
// len(s)+1 and Len reports len(s).
func New(s string) Label {
	return Label{values: s}
}

// Len returns the number of content bytes, excluding the
// terminator.
func (l Label) Len() int {
	return len(l.values)
}

// Size returns the fixed storage size, terminator included.
func (l Label) Size() int {
	return len(l.values) + 1
}

// At returns the byte at index i. Index Len() is the terminator.
// Indexes past the terminator panic.
func (l Label) At(i int) byte {
	if i == len(l.values) {
		return 0
	}
	return l.values[i]
}

// Bytes returns a copy of the full storage, terminator included.
func (l Label) Bytes() []byte {
	b := make([]byte, l.Size())
	copy(b, l.values)
	return b
}

// Equal reports whether two labels have the same size and the same
// bytes in every storage slot.
func (l Label) Equal(other Label) bool {
	if l.Size() != other.Size() {
		return false
	}
	for i := 0; i < l.Size(); i++ {
		if l.At(i) != other.At(i) {
			return false
		}
	}
	return true
}

// Concat joins two labels. The result has size N+M-1: the N-1
// content bytes of l followed by all M bytes of other, so l's
// terminator is dropped and other's is kept.
func (l Label) Concat(other Label) Label {
	buf := make([]byte, 0, l.Size()+other.Size()-1)
	buf = append(buf, l.values...)
	buf = append(buf, other.Bytes()...)
	return Label{values: string(buf[:len(buf)-1])}
}

// Append concatenates a literal after the label.
func (l Label) Append(s string) Label {
	return l.Concat(New(s))
}

// Prepend concatenates a literal before the label.
func Prepend(s string, l Label) Label {
	return New(s).Concat(l)
}

// Concatenate folds the labels left to right with Concat. With no
// arguments it returns the empty label.
func Concatenate(labels ...Label) Label {
	var out Label
	for _, l := range labels {
		out = out.Concat(l)
	}
	return out
}

// String returns the content without the terminator.
func (l Label) String() string {
	return l.values
}

// To converts a label to any string or byte-slice type, built
// from the content only.
func To[S ~string | ~[]byte](l Label) S {
	return S(l.values)
}
