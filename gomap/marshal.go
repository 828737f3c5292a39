package gomap

import (
	"bytes"

	"github.com/signadot/tony-format/go-keypath/encode"
	"github.com/signadot/tony-format/go-keypath/parse"
)

// MarshalJSON converts v to IR and encodes it as JSON using the encode
// options carried by opts.
func MarshalJSON(v any, opts ...MapOption) ([]byte, error) {
	node, err := ToIR(v, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.JSON(node, &buf, ToEncodeOptions(opts...)...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML converts v to IR and encodes it as YAML.
func MarshalYAML(v any, opts ...MapOption) ([]byte, error) {
	node, err := ToIR(v, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.YAML(node, &buf, ToEncodeOptions(opts...)...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON parses d as JSON and stores the result in the value
// pointed to by v.
func UnmarshalJSON(d []byte, v any, opts ...UnmapOption) error {
	node, err := parse.JSON(d)
	if err != nil {
		return err
	}
	return FromIR(node, v, opts...)
}

// UnmarshalYAML parses d as YAML and stores the result in the value
// pointed to by v.
func UnmarshalYAML(d []byte, v any, opts ...UnmapOption) error {
	node, err := parse.YAML(d)
	if err != nil {
		return err
	}
	return FromIR(node, v, opts...)
}
