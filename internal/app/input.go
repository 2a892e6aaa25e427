package app

// Key is a window-system independent input action.
type Key uint8

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyRotateLeft
	KeyRotateRight
	KeyRotateUp
	KeyRotateDown
	KeyToggleMode
	KeyClear
)

// KeySet is the set of keys held down during a frame.
type KeySet uint32

func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) With(k Key) KeySet { return s | 1<<k }

func (s KeySet) Has(k Key) bool { return s&(1<<k) != 0 }
