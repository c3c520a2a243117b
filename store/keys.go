package store

import (
	"bytes"
	"fmt"
	"strconv"
)

// Neither embedded store has native column families, so families are
// realized by key namespacing: the stored key is <family> 0x00 <key>. The
// separator byte cannot occur in grammar keys, which are printable.
const familySeparator byte = 0x00

// NamespacedKey returns the on-disk key for a family-local key.
func NamespacedKey(family, key string) []byte {
	buf := make([]byte, 0, len(family)+1+len(key))
	buf = append(buf, family...)
	buf = append(buf, familySeparator)
	buf = append(buf, key...)
	return buf
}

// FamilyPrefix returns the prefix shared by every key in a family.
func FamilyPrefix(family string) []byte {
	return NamespacedKey(family, "")
}

// LocalKey strips the family namespace from an on-disk key.
func LocalKey(family string, key []byte) []byte {
	return bytes.TrimPrefix(key, FamilyPrefix(family))
}

// TimestampSeekKey returns the family-local key of the first timestamp
// posting at or after ts.
func TimestampSeekKey(ts int64) string {
	return fmt.Sprintf("%s|%0*d", TimestampFamily, TimestampFieldWidth, ts)
}

// ParseTimestampField slices the zero-padded timestamp out of a
// family-local timestamp-posting key and parses it. The field sits at a
// fixed offset so the whole key never needs parsing.
func ParseTimestampField(localKey []byte) (int64, error) {
	if len(localKey) < TimestampFieldOffset+TimestampFieldWidth {
		return 0, fmt.Errorf("%w: key too short (%d bytes)", ErrBadPostingKey, len(localKey))
	}
	field := localKey[TimestampFieldOffset : TimestampFieldOffset+TimestampFieldWidth]
	ts, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadPostingKey, err)
	}
	return ts, nil
}
