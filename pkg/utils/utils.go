package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
	"slices"

	"github.com/gowebpki/jcs"
	"github.com/modern-go/reflect2"
)

// OptionalDefaulted returns the first non-zero optional argument
// or the default.
func OptionalDefaulted[T any](def T, args ...T) T {
	var _nil T
	for _, e := range args {
		if !reflect.DeepEqual(e, _nil) {
			return e
		}
	}
	return def
}

// HashData returns the hex encoded SHA-256 hash of the canonical
// JSON representation of the given data. Byte slices and strings
// are hashed as they are.
func HashData(d interface{}) string {
	if reflect2.IsNil(d) {
		return ""
	}
	var err error
	var data []byte
	switch b := d.(type) {
	case []byte:
		data = b
	case string:
		data = []byte(b)
	default:
		data, err = json.Marshal(d)
		if err != nil {
			panic(err)
		}
		data, err = jcs.Transform(data)
		if err != nil {
			panic(err)
		}
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Cycle returns the cycle closed by adding id to the given stack
// or nil.
func Cycle[T comparable](id T, stack ...T) []T {
	i := slices.Index(stack, id)
	if i < 0 {
		return nil
	}
	return append(slices.Clone(stack[i:]), id)
}
