package attacks

// Search returns the first value in [start, stop) accepted by oracle,
// probing outwards from likely: likely, likely-1, likely+1, likely-2, ...
// A likely equal to start scans forward and one equal to stop scans
// backward. The boolean is false when no value is accepted.
func Search(start, stop, likely int, oracle func(int) (bool, error)) (int, bool, error) {
	if likely < start {
		likely = start
	}
	if likely > stop {
		likely = stop
	}

	hi, lo := likely, likely-1
	for hi < stop || lo >= start {
		if hi < stop {
			ok, err := oracle(hi)
			if err != nil {
				return 0, false, err
			}
			if ok {
				return hi, true, nil
			}
			hi++
		}
		if lo >= start {
			ok, err := oracle(lo)
			if err != nil {
				return 0, false, err
			}
			if ok {
				return lo, true, nil
			}
			lo--
		}
	}
	return 0, false, nil
}

// Middle returns the midpoint of [start, stop), a common likely value for
// Search.
func Middle(start, stop int) int { return (start + stop) / 2 }
