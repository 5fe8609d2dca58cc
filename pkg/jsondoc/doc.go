// Package jsondoc turns JSON (and YAML) text into a generic tree and back.
//
// A tree is built from *Object (members in document order), []any, string,
// float64, bool and nil. Every number is read as float64 regardless of how it
// was written. Encoders may also place int, int32 and int64 values in a tree.
//
// The typed accessors on Object report missing or mis-typed keys as
// *MalformedError values that carry the dotted key path of the offending
// member, e.g. "domains[1].obstacles[0].shape.radius".
package jsondoc
