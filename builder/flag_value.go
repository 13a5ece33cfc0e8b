package builder

// FlagValue names a bit position by the value of its mask.
type FlagValue int

const (
	Ox0001 FlagValue = iota
	Ox0002
	Ox0004
	Ox0008
	Ox0010
	Ox0020
	Ox0040
	Ox0080
	Ox0100
	Ox0200
	Ox0400
	Ox0800
	Ox1000
	Ox2000
	Ox4000
	Ox8000
	Ox10000
	Ox20000
	Ox40000
	Ox80000
	Ox100000
	Ox200000
	Ox400000
	Ox800000
	Ox1000000
	Ox2000000
	Ox4000000
	Ox8000000
	Ox10000000
	Ox20000000
	Ox40000000
	Ox80000000
)

// Mask returns the integer with only this bit set.
func (f FlagValue) Mask() uint64 {
	return 1 << uint(f)
}
