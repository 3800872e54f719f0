package session

import (
	"fmt"

	"github.com/jrvillar/esviz"
)

//encValue is the YAML shape of one stored value. One field per kind keeps the
//decoding free of interface{} type sniffing.
type encValue struct {
	Kind    string              `yaml:"kind"`
	Bool    *bool               `yaml:"bool,omitempty"`
	Int     *int                `yaml:"int,omitempty"`
	Float   *float64            `yaml:"float,omitempty"`
	Str     *string             `yaml:"str,omitempty"`
	IntList []int               `yaml:"intlist,omitempty"`
	Range   []float64           `yaml:"range,omitempty"`
	Map     map[string]encValue `yaml:"map,omitempty"`
}

func encode(v esviz.Value) (encValue, error) {
	ev := encValue{Kind: v.Kind().String()}
	switch v.Kind() {
	case esviz.Nil:
		//kind tag alone is enough
	case esviz.Bool:
		b := v.MustBool()
		ev.Bool = &b
	case esviz.Int:
		i := v.MustInt()
		ev.Int = &i
	case esviz.Float:
		f := v.MustFloat()
		ev.Float = &f
	case esviz.String, esviz.Enum:
		s := v.MustStr()
		ev.Str = &s
	case esviz.IntList:
		ev.IntList = v.MustIntList()
		if ev.IntList == nil {
			ev.IntList = []int{}
		}
	case esviz.FloatRange:
		r := v.MustRange()
		ev.Range = []float64{r[0], r[1]}
	case esviz.Mapping:
		m, err := v.Mapping()
		if err != nil {
			return ev, err
		}
		ev.Map = make(map[string]encValue, len(m))
		for k, mv := range m {
			sub, err := encode(mv)
			if err != nil {
				return ev, err
			}
			ev.Map[k] = sub
		}
	default:
		return ev, fmt.Errorf("no encoding for kind %v", v.Kind())
	}
	return ev, nil
}

func decode(ev encValue) (esviz.Value, error) {
	switch ev.Kind {
	case "nil":
		return esviz.NilValue(), nil
	case "bool":
		if ev.Bool == nil {
			return esviz.NilValue(), fmt.Errorf("bool value missing")
		}
		return esviz.BoolValue(*ev.Bool), nil
	case "int":
		if ev.Int == nil {
			return esviz.NilValue(), fmt.Errorf("int value missing")
		}
		return esviz.IntValue(*ev.Int), nil
	case "float":
		if ev.Float == nil {
			return esviz.NilValue(), fmt.Errorf("float value missing")
		}
		return esviz.FloatValue(*ev.Float), nil
	case "string":
		if ev.Str == nil {
			return esviz.NilValue(), fmt.Errorf("string value missing")
		}
		return esviz.StringValue(*ev.Str), nil
	case "enum":
		if ev.Str == nil {
			return esviz.NilValue(), fmt.Errorf("enum value missing")
		}
		return esviz.EnumValue(*ev.Str), nil
	case "intlist":
		return esviz.IntListValue(ev.IntList), nil
	case "range":
		if len(ev.Range) != 2 {
			return esviz.NilValue(), fmt.Errorf("range needs 2 elements, got %d", len(ev.Range))
		}
		return esviz.RangeValue(ev.Range[0], ev.Range[1]), nil
	case "mapping":
		m := make(map[string]esviz.Value, len(ev.Map))
		for k, sub := range ev.Map {
			v, err := decode(sub)
			if err != nil {
				return esviz.NilValue(), err
			}
			m[k] = v
		}
		return esviz.MappingValue(m), nil
	}
	return esviz.NilValue(), fmt.Errorf("unknown kind tag %q", ev.Kind)
}
