package catalog

// Natural-order comparison: digit runs compare by numeric value, everything
// else byte-wise. "file2" sorts before "file10".

// Compare returns -1, 0, or 1 comparing a and b in natural order.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ia, va := digitRun(a, i)
			jb, vb := digitRun(b, j)
			if va != vb {
				if less := compareNumeric(va, vb); less != 0 {
					return less
				}
			}
			i, j = ia, jb
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return 0
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digitRun returns the index past the digit run starting at i and the run
// with leading zeros stripped.
func digitRun(s string, i int) (int, string) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	run := s[start:i]
	for len(run) > 1 && run[0] == '0' {
		run = run[1:]
	}
	return i, run
}

// compareNumeric compares two digit strings with leading zeros stripped.
// A shorter string is always the smaller number.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
