// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must
// implement. Update computes the output fields from the input fields. See
// MakePart.
//
type Updater interface {
	Update()
}

var bitType = reflect.TypeOf(Bit(0))

// port field: field index and array index, or -1 for a single Bit.
//
type portField struct {
	field int
	elem  int
}

// MakePart returns a function that creates new instances of a custom leaf
// component implemented by the struct type of t. Each instance wraps a new
// zero value of that type.
//
// Input and output ports are identified by field tags. The field tag must be
// `hw:"in"` or `hw:"out"`. By default, the port name is the field name in
// lowercase. A specific name can be forced by adding it in the tag:
// `hw:"in,port_name"`.
//
// Port fields must be of type Bit, or arrays of Bit for buses. The ports of
// a bus named "a" are "a[0]", "a[1]", ...
//
// On each call to the component's Update method, the input fields are set,
// the Update method of the struct is called, and the output fields are
// returned. Other fields are left untouched and can hold state. Resetting a
// Composite that holds the component sets the struct back to its zero value.
//
//	type dff struct {
//		D, Clk Bit `hw:"in"`
//		Q      Bit `hw:"out"`
//		prev   Bit
//	}
//
//	func (d *dff) Update() {
//		if d.prev == Low && d.Clk == High {
//			d.Q = d.D
//		}
//		d.prev = d.Clk
//	}
//
//	newDFF, err := MakePart((*dff)(nil))
//
func MakePart(t Updater) (func() Component, error) {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		return nil, errors.Errorf("unsupported type %q for %q", k, typ.Name())
	}
	if !reflect.PtrTo(typ).Implements(reflect.TypeOf((*Updater)(nil)).Elem()) {
		return nil, errors.Errorf("*%s does not implement Updater", typ.Name())
	}

	var names PortNames
	var in, out []portField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		if f.PkgPath != "" {
			return nil, errors.Errorf("unexported port field %q in %q", f.Name, typ.Name())
		}
		name := strings.ToLower(f.Name)
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			return nil, errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name())
		}
		if len(tv) == 2 && tv[1] != "" {
			name = tv[1]
		}
		var isInput bool
		switch tv[0] {
		case "in":
			isInput = true
		case "out":
		default:
			return nil, errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name())
		}

		add := func(pname string, elem int) {
			if isInput {
				names.In = append(names.In, pname)
				in = append(in, portField{i, elem})
			} else {
				names.Out = append(names.Out, pname)
				out = append(out, portField{i, elem})
			}
		}
		ft := f.Type
		switch {
		case ft == bitType:
			add(name, -1)
		case ft.Kind() == reflect.Array && ft.Elem() == bitType:
			// bus
			for j := 0; j < ft.Len(); j++ {
				add(name+"["+strconv.Itoa(j)+"]", j)
			}
		default:
			return nil, errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name())
		}
	}
	if err := names.check(len(names.In), len(names.Out)); err != nil {
		return nil, errors.Wrap(err, typ.Name())
	}

	return func() Component {
		v := reflect.New(typ)
		e := v.Elem()
		values := func(pf []portField) []reflect.Value {
			vs := make([]reflect.Value, len(pf))
			for i, p := range pf {
				fv := e.Field(p.field)
				if p.elem >= 0 {
					fv = fv.Index(p.elem)
				}
				vs[i] = fv
			}
			return vs
		}
		return &reflectPart{
			name:  typ.Name(),
			names: names,
			v:     e,
			u:     v.Interface().(Updater),
			in:    values(in),
			out:   values(out),
		}
	}, nil
}

// reflectPart is a component built by MakePart.
//
type reflectPart struct {
	name  string
	names PortNames
	v     reflect.Value // the wrapped struct
	u     Updater
	in    []reflect.Value
	out   []reflect.Value
}

// reset zeroes the wrapped struct. The port values still point into it.
//
func (r *reflectPart) reset() {
	r.v.Set(reflect.Zero(r.v.Type()))
}

func (r *reflectPart) Update(in []Bit) ([]Bit, error) {
	if err := checkArity(r, in); err != nil {
		return nil, err
	}
	for i, v := range r.in {
		v.SetUint(uint64(in[i]))
	}
	r.u.Update()
	out := make([]Bit, len(r.out))
	for i, v := range r.out {
		out[i] = Bit(v.Uint())
	}
	return out, nil
}

func (r *reflectPart) NumInputs() int       { return len(r.in) }
func (r *reflectPart) NumOutputs() int      { return len(r.out) }
func (r *reflectPart) PortNames() PortNames { return r.names.clone() }
func (r *reflectPart) Probe() [][]Bit       { return nil }
func (r *reflectPart) Name() string         { return r.name }
