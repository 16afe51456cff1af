package timeline

// Classify maps a raw key code to the row monitoring it, or RowNone.
//
// The scan is over the live bindings on every event rather than a cached
// map: a user can rebind a row at runtime and the very next event must see
// the new binding.
func Classify(code uint16, keys [RowCount]uint16) Row {
	if code == 0 {
		return RowNone
	}
	for i, k := range keys {
		if k == code {
			return Row(i)
		}
	}
	return RowNone
}
