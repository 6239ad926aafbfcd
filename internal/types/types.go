package types

// DeprecationEvent describes one use of an API marked deprecated.
//
// Every field is optional; an empty string means the field is absent.
// When Message is set it is used verbatim and the other fields are ignored.
type DeprecationEvent struct {
	Message         string
	Method          string
	AlternateMethod string
	CalledFrom      string
}

// DeprecationRule registers one deprecated function or method.
// Type is empty for package-level functions.
type DeprecationRule struct {
	Package     string `yaml:"package" toml:"package"`
	Type        string `yaml:"type,omitempty" toml:"type,omitempty"`
	Function    string `yaml:"function" toml:"function"`
	Alternative string `yaml:"alternative,omitempty" toml:"alternative,omitempty"`
}

// Name returns the qualified name of the deprecated symbol, e.g. "std.GetHeight"
// or "std.Address.Addr".
func (r DeprecationRule) Name() string {
	if r.Type == "" {
		return r.Package + "." + r.Function
	}
	return r.Package + "." + r.Type + "." + r.Function
}
