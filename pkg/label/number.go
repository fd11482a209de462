package label

// CountDigits returns the number of characters needed to print n
// in base 10, counting a leading '-' for negative numbers.
func CountDigits(n int64) int {
	count := 0
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
		count++
	}
	for {
		count++
		u /= 10
		if u == 0 {
			break
		}
	}
	return count
}

// FromInt returns a Label holding the decimal representation of n.
func FromInt(n int64) Label {
	digits := CountDigits(n)
	buf := make([]byte, digits)

	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
		buf[0] = '-'
	}

	pos := digits
	for {
		pos--
		buf[pos] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}

	return Label{values: string(buf)}
}

// StrLen returns the number of bytes before the first NUL in b. If
// b has no NUL the whole slice counts.
func StrLen(b []byte) int {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return n
}
