package compiler

import (
	"strconv"
	"strings"

	"github.com/thiremani/lgc/types"
	"tlog.app/go/errors"
)

// ParseTypeName decodes a single canonical type name produced by TypeName.
// It expects the grammar:
//
//	name   = { "p" N | "a" N } ( struct | [ "v" N ] scalar ) | { ... } "p" N
//	struct = "s[" [ name { "," name } ] "]"
//	scalar = "f" N | "i" N | "V"
//
// A pointer tag that ends a name (end of input, ',' or ']') is an opaque pointer.
func ParseTypeName(s string) (types.Type, error) {
	t, next, err := parseTypeFrom(s, 0)
	if err != nil {
		return nil, err
	}
	if next != len(s) {
		return nil, errors.Wrap(ErrBadTypeName, "trailing %q in %q", s[next:], s)
	}
	return t, nil
}

// parseTypeFrom parses a single Type starting at position pos.
// It returns the parsed Type and the next index to continue parsing from.
func parseTypeFrom(s string, pos int) (types.Type, int, error) {
	if pos >= len(s) {
		return nil, pos, errors.Wrap(ErrBadTypeName, "unexpected end of %q", s)
	}

	switch s[pos] {
	case PtrTag:
		as, next, err := readCount(s, pos+1, 32)
		if err != nil {
			return nil, next, errors.Wrap(err, "pointer address space")
		}
		if next == len(s) || s[next] == StructSep || s[next] == StructClose {
			return types.Ptr{AddrSpace: uint32(as)}, next, nil
		}
		elem, next, err := parseTypeFrom(s, next)
		if err != nil {
			return nil, next, err
		}
		return types.Ptr{AddrSpace: uint32(as), Elem: elem}, next, nil
	case ArrayTag:
		n, next, err := readCount(s, pos+1, 64)
		if err != nil {
			return nil, next, errors.Wrap(err, "array length")
		}
		elem, next, err := parseTypeFrom(s, next)
		if err != nil {
			return nil, next, err
		}
		return types.Array{Len: n, Elem: elem}, next, nil
	case VectorTag:
		n, next, err := readCount(s, pos+1, 32)
		if err != nil {
			return nil, next, errors.Wrap(err, "vector length")
		}
		elem, next, err := parseScalar(s, next)
		if err != nil {
			return nil, next, errors.Wrap(err, "vector element")
		}
		return types.Vector{Len: uint32(n), Elem: elem}, next, nil
	case StructOpen[0]:
		return parseStruct(s, pos)
	default:
		return parseScalar(s, pos)
	}
}

func parseStruct(s string, pos int) (types.Type, int, error) {
	if !strings.HasPrefix(s[pos:], StructOpen) {
		return nil, pos, errors.Wrap(ErrBadTypeName, "expected %q at %d in %q", StructOpen, pos, s)
	}
	cur := pos + len(StructOpen)
	elems := []types.Type{}
	if cur < len(s) && s[cur] == StructClose {
		return types.Struct{Elems: elems}, cur + 1, nil
	}
	for {
		et, next, err := parseTypeFrom(s, cur)
		if err != nil {
			return nil, next, errors.Wrap(err, "struct element %d", len(elems))
		}
		elems = append(elems, et)
		if next >= len(s) {
			return nil, next, errors.Wrap(ErrBadTypeName, "unterminated struct in %q", s)
		}
		switch s[next] {
		case StructSep:
			cur = next + 1
		case StructClose:
			return types.Struct{Elems: elems}, next + 1, nil
		default:
			return nil, next, errors.Wrap(ErrBadTypeName, "unexpected %q at %d in %q", s[next], next, s)
		}
	}
}

func parseScalar(s string, pos int) (types.Type, int, error) {
	if pos >= len(s) {
		return nil, pos, errors.Wrap(ErrBadTypeName, "missing scalar in %q", s)
	}
	switch s[pos] {
	case VoidTag:
		return types.Void{}, pos + 1, nil
	case IntTag, FloatTag:
		w, next, err := readCount(s, pos+1, 32)
		if err != nil {
			return nil, next, errors.Wrap(err, "scalar width")
		}
		if w == 0 {
			return nil, next, errors.Wrap(ErrBadTypeName, "zero width at %d in %q", pos, s)
		}
		if s[pos] == IntTag {
			return types.Int{Width: uint32(w)}, next, nil
		}
		return types.Float{Width: uint32(w)}, next, nil
	default:
		return nil, pos, errors.Wrap(ErrBadTypeName, "unknown type tag %q at %d in %q", s[pos], pos, s)
	}
}

// readCount reads the decimal number starting at pos. It must fit in bits
// bits: array lengths take 64, everything else 32.
func readCount(s string, pos int, bits int) (uint64, int, error) {
	j := pos
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == pos {
		return 0, pos, errors.Wrap(ErrBadTypeName, "missing count at %d in %q", pos, s)
	}
	val, err := strconv.ParseUint(s[pos:j], 10, bits)
	if err != nil {
		return 0, j, errors.Wrap(ErrBadTypeName, "invalid count %q: %v", s[pos:j], err)
	}
	return val, j, nil
}
