package parse

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	}
	return "<unknown format>"
}

type parseOpts struct {
	format Format
}

type ParseOption func(*parseOpts)

func ParseJSON() ParseOption {
	return ParseFormat(JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(YAMLFormat)
}
func ParseFormat(f Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
