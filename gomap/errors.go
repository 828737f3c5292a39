package gomap

import (
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

func typeMismatch(path keypath.KeyPath, want string, node *ir.Node) error {
	got := "nothing"
	if node != nil {
		got = node.Type.String()
	}
	return keypath.Errorf(keypath.ErrTypeMismatch, path, "expected %s, got %s", want, got)
}

func corrupted(path keypath.KeyPath, err error) error {
	return keypath.Wrap(keypath.ErrDataCorrupted, path, err)
}

func mismatch(path keypath.KeyPath, format string, args ...any) error {
	return keypath.Errorf(keypath.ErrTypeMismatch, path, format, args...)
}
