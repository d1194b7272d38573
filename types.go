// Package ssz computes SSZ hash-tree-roots directly from a byte slice and a
// type descriptor, without materializing an intermediate decoded value.
package ssz

import "fmt"

// Kind names one of the SSZ type shapes a TypeDescriptor can take. The
// string values match the "type" field of the JSON schema a host binding
// uses to cross a process boundary.
type Kind string

const (
	KindUint8     Kind = "uint8"
	KindUint16    Kind = "uint16"
	KindUint32    Kind = "uint32"
	KindUint64    Kind = "uint64"
	KindUint128   Kind = "uint128"
	KindUint256   Kind = "uint256"
	KindBytes32   Kind = "bytes32"
	KindBitlist   Kind = "bitlist"
	KindBitvector Kind = "bitvector"
	KindList      Kind = "list"
	KindVector    Kind = "vector"
	KindContainer Kind = "container"
)

// basicSizes gives the byte width of every fixed-size scalar kind. A kind
// absent from this map is not Basic.
var basicSizes = map[Kind]int{
	KindUint8:   1,
	KindUint16:  2,
	KindUint32:  4,
	KindUint64:  8,
	KindUint128: 16,
	KindUint256: 32,
	KindBytes32: 32,
}

// TypeDescriptor is the recursive value describing the byte layout of an
// SSZ-encoded value. It is read-only for the duration of a root
// computation and carries no behavior beyond classification.
type TypeDescriptor struct {
	Type Kind `json:"type"`

	// Element is the inner type for Vector, List, and describes the
	// bit shape for Bitlist/Bitvector implicitly (Element is nil there).
	Element *TypeDescriptor `json:"elementType,omitempty"`

	// Length is the exact element count for Vector, or the exact bit
	// count for Bitvector.
	Length uint64 `json:"length,omitempty"`

	// Limit is the declared maximum element count for List, or the
	// declared maximum bit count for Bitlist.
	Limit uint64 `json:"limit,omitempty"`

	// Fields is the ordered tuple of field descriptors for Container.
	Fields []TypeDescriptor `json:"fields,omitempty"`
}

// IsBasic reports whether d is a fixed-size scalar.
func (d *TypeDescriptor) IsBasic() bool {
	_, ok := basicSizes[d.Type]
	return ok
}

// BasicSize returns the byte width of a Basic descriptor. ok is false for
// any other kind.
func (d *TypeDescriptor) BasicSize() (size int, ok bool) {
	size, ok = basicSizes[d.Type]
	return
}

// IsVariable reports whether values of this type have a variable encoded
// length (List, Bitlist, or any composite containing one transitively).
func (d *TypeDescriptor) IsVariable() bool {
	_, fixed := d.FixedByteSize()
	return !fixed
}

// FixedByteSize returns the exact encoded byte width of d when it has
// one, and false when d is List, Bitlist, or a composite that contains
// one transitively. This drives the layout parser's choice between
// contiguous partitioning and an offset table (§4.1): List and Bitlist
// are never fixed; a Vector or Container is fixed only when every
// element or field it carries is.
func (d *TypeDescriptor) FixedByteSize() (size int, ok bool) {
	switch d.Type {
	case KindUint8, KindUint16, KindUint32, KindUint64, KindUint128, KindUint256, KindBytes32:
		sz, _ := d.BasicSize()
		return sz, true
	case KindBitvector:
		return int((d.Length + 7) / 8), true
	case KindVector:
		if d.Element == nil {
			return 0, false
		}
		elemSize, ok := d.Element.FixedByteSize()
		if !ok {
			return 0, false
		}
		return elemSize * int(d.Length), true
	case KindContainer:
		total := 0
		for i := range d.Fields {
			sz, ok := d.Fields[i].FixedByteSize()
			if !ok {
				return 0, false
			}
			total += sz
		}
		return total, true
	default: // List, Bitlist
		return 0, false
	}
}

// Validate checks structural well-formedness of a descriptor tree: basic
// kinds need no extra data, Vector needs an Element (a zero Length is
// allowed, as is a zero-length Bitvector), List/Bitlist need a positive
// Limit (and List needs an Element), and Container needs a non-empty
// Fields.
func (d *TypeDescriptor) Validate() error {
	switch d.Type {
	case KindUint8, KindUint16, KindUint32, KindUint64, KindUint128, KindUint256, KindBytes32:
		return nil
	case KindVector:
		if d.Element == nil {
			return fmt.Errorf("ssz: vector descriptor missing elementType")
		}
		return d.Element.Validate()
	case KindBitvector:
		return nil
	case KindList:
		if d.Element == nil {
			return fmt.Errorf("ssz: list descriptor missing elementType")
		}
		if d.Limit == 0 {
			return fmt.Errorf("ssz: list descriptor needs a non-zero limit")
		}
		return d.Element.Validate()
	case KindBitlist:
		if d.Limit == 0 {
			return fmt.Errorf("ssz: bitlist descriptor needs a non-zero limit")
		}
		return nil
	case KindContainer:
		if len(d.Fields) == 0 {
			return fmt.Errorf("ssz: container descriptor needs at least one field")
		}
		for i := range d.Fields {
			if err := d.Fields[i].Validate(); err != nil {
				return fmt.Errorf("ssz: field %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("ssz: unknown type descriptor kind %q", d.Type)
	}
}

// Basic builds a Basic descriptor for the given scalar kind; its byte
// width is looked up from the kind by BasicSize.
func Basic(kind Kind) *TypeDescriptor { return &TypeDescriptor{Type: kind} }

// Vector builds a Vector{element,length} descriptor.
func Vector(element *TypeDescriptor, length uint64) *TypeDescriptor {
	return &TypeDescriptor{Type: KindVector, Element: element, Length: length}
}

// List builds a List{element,limit} descriptor.
func List(element *TypeDescriptor, limit uint64) *TypeDescriptor {
	return &TypeDescriptor{Type: KindList, Element: element, Limit: limit}
}

// Container builds a Container{fields} descriptor.
func Container(fields ...TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{Type: KindContainer, Fields: fields}
}

// Bitlist builds a Bitlist{limit} descriptor.
func Bitlist(limit uint64) *TypeDescriptor { return &TypeDescriptor{Type: KindBitlist, Limit: limit} }

// Bitvector builds a Bitvector{length} descriptor.
func Bitvector(length uint64) *TypeDescriptor {
	return &TypeDescriptor{Type: KindBitvector, Length: length}
}
