package encode

import (
	"bytes"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/tony-format/go-keypath/ir"
)

// EqualJSON reports whether a and b encode to structurally equal JSON.
// Object field order is not significant.
func EqualJSON(a, b *ir.Node) (bool, error) {
	ab := bytes.NewBuffer(nil)
	if err := JSON(a, ab); err != nil {
		return false, err
	}
	bb := bytes.NewBuffer(nil)
	if err := JSON(b, bb); err != nil {
		return false, err
	}
	if ir.Equal(a, b) {
		return true, nil
	}
	return jsonpatch.Equal(ab.Bytes(), bb.Bytes()), nil
}
