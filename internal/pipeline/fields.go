package pipeline

import "net/url"

// Kind is the primitive type a product field holds
type Kind int

const (
	KindText Kind = iota
	KindNumeric
)

// String returns the JSON type name used in validation messages
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "number"
	default:
		return "string"
	}
}

// Field describes one recognized product attribute
type Field struct {
	Name string
	Kind Kind
}

// Fields is the fixed set of product attributes the API understands.
// Declaration order is significant: it drives the key order of the
// generated projection and sort stages.
var Fields = []Field{
	{Name: "name", Kind: KindText},
	{Name: "price", Kind: KindNumeric},
	{Name: "description", Kind: KindText},
	{Name: "amount", Kind: KindNumeric},
	{Name: "unit", Kind: KindText},
}

// Lookup returns the recognized field with the given name
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ParamsFromQuery extracts the first value of every recognized field from a
// query string. Unknown keys are dropped.
func ParamsFromQuery(q url.Values) map[string]string {
	params := make(map[string]string, len(Fields))
	for _, f := range Fields {
		if v, ok := q[f.Name]; ok && len(v) > 0 {
			params[f.Name] = v[0]
		}
	}
	return params
}
