package input

import (
	"fmt"
	"strings"
)

// Key is a surface independent key code.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyQ
	KeyE
	KeyW
	KeyF
	KeyEscape
	KeyF1
	KeyF2
	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:   "none",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeySpace:  "space",
	KeyQ:      "q",
	KeyE:      "e",
	KeyW:      "w",
	KeyF:      "f",
	KeyEscape: "escape",
	KeyF1:     "f1",
	KeyF2:     "f2",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// ParseKey resolves a key name, case insensitive.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return Key(k), nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

// Keys lists every known key except KeyNone.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyNone + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}
