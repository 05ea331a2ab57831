package reasoner

import (
	"strings"

	"github.com/c360studio/semtax/resource"
)

// KeyValue holds the values one member has for one key property. Missing is
// set when the member has no value at all for the property.
type KeyValue struct {
	Property resource.Resource
	Values   []resource.Resource
	Missing  bool
}

// KeyValues is the key tuple of one class member.
type KeyValues struct {
	Member resource.Resource
	Keys   []KeyValue
}

// Complete reports whether every key property has at least one value.
func (kv KeyValues) Complete() bool {
	for _, k := range kv.Keys {
		if k.Missing {
			return false
		}
	}
	return true
}

// signature renders the key tuple as a comparable string.
func (kv KeyValues) signature() string {
	var b strings.Builder
	for _, k := range kv.Keys {
		b.WriteString(k.Property.Key())
		b.WriteByte('=')
		for _, v := range k.Values {
			b.WriteString(v.Key())
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	return b.String()
}

// KeyValuesOf returns, for every individual member of c, its values for each
// of c's declared key properties, in member key order. With allowPartial
// unset, members missing a value for any key property are dropped. Classes
// without keys yield nil.
func (r *Reasoner) KeyValuesOf(c resource.Resource, allowPartial bool) []KeyValues {
	if c.IsZero() {
		return nil
	}
	keys := r.ont.Classes.Keys(c)
	if len(keys) == 0 {
		return nil
	}

	x := r.newExtensionCache()
	var out []KeyValues
	for _, m := range x.members(c).Slice() {
		if !m.IsURI() {
			continue
		}
		kv := KeyValues{Member: m, Keys: make([]KeyValue, 0, len(keys))}
		for _, k := range keys {
			values := resource.NewSet()
			for _, p := range x.propertySet(k).Slice() {
				for _, v := range r.ont.Data.Objects(m, p) {
					values.Add(v)
				}
			}
			kv.Keys = append(kv.Keys, KeyValue{
				Property: k,
				Values:   values.Slice(),
				Missing:  len(values) == 0,
			})
		}
		if !allowPartial && !kv.Complete() {
			continue
		}
		out = append(out, kv)
	}
	return out
}
