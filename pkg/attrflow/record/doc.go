/*
Package record defines the host capabilities the attrflow engine consumes.

The engine never owns records. It reads attribute values through an
Accessor, writes them through a Writer and walks the host object graph
through Object, Table and Row. Hosts implement these interfaces; memhost
provides an in-memory implementation.

# Field types

FieldType is a closed enumeration. Every switch over it in this module is
exhaustive, so adding a host type means adding a constant here and fixing
every switch the compiler's exhaustiveness linters point at:

	TypePlain           ordinary scalar value
	TypeStringFunction  derived value, read through FormattedValue
	TypeValueRange      enumerated value with a language-aware display value
	TypeReference       list of referenced record ids
	TypeFile            list of referenced file ids
	TypeTable           sub-table of rows

# Raw values

The write path accepts a Raw value: either a Template that is resolved
before being written, or Parts carrying up to three unformatted sub-values
for multi-part fields. A nil Raw clears the attribute.
*/
package record
