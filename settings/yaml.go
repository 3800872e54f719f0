package settings

import (
	"fmt"
	"io"
	"math"

	"github.com/jrvillar/esviz"
	"gopkg.in/yaml.v3"
)

//Schemas can be written as YAML documents instead of Go literals, which is
//handy for plot kinds whose parameter lists are maintained alongside other
//configuration. The document looks like:
//
//	parameters:
//	  - name: spin
//	    kind: enum
//	    choices: [unpolarized, polarized]
//	    default: unpolarized
//	    help: Spin channel selection.
//	  - name: Erange
//	    kind: range
//	    nillable: true
//	  - name: npts
//	    kind: int
//	    min: 2
//	    max: 100000
//	    default: 100

type yamlParam struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	Default  *yaml.Node `yaml:"default"`
	Help     string     `yaml:"help"`
	Choices  []string   `yaml:"choices"`
	Min      *float64   `yaml:"min"`
	Max      *float64   `yaml:"max"`
	Nillable bool       `yaml:"nillable"`
}

type yamlSchema struct {
	Parameters []yamlParam `yaml:"parameters"`
}

var yamlKinds = map[string]esviz.Kind{
	"bool":    esviz.Bool,
	"int":     esviz.Int,
	"float":   esviz.Float,
	"string":  esviz.String,
	"enum":    esviz.Enum,
	"intlist": esviz.IntList,
	"range":   esviz.FloatRange,
}

// LoadSchema reads a YAML schema document from r and compiles it into a
// Schema with kind-, choice- and range-checking validators attached.
func LoadSchema(r io.Reader) (Schema, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseSchema(raw)
}

// ParseSchema compiles a YAML schema document. See the package example in
// yaml_test.go for the accepted layout.
func ParseSchema(raw []byte) (Schema, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("settings: parsing schema: %w", err)
	}
	if len(doc.Parameters) == 0 {
		return nil, fmt.Errorf("settings: schema declares no parameters")
	}
	schema := make(Schema, 0, len(doc.Parameters))
	for _, yp := range doc.Parameters {
		spec, err := compileParam(yp)
		if err != nil {
			return nil, err
		}
		schema = append(schema, spec)
	}
	return schema, nil
}

func compileParam(yp yamlParam) (ParamSpec, error) {
	kind, ok := yamlKinds[yp.Kind]
	if !ok {
		return ParamSpec{}, fmt.Errorf("settings: parameter %q has unknown kind %q", yp.Name, yp.Kind)
	}
	def, err := decodeDefault(yp, kind)
	if err != nil {
		return ParamSpec{}, err
	}
	return ParamSpec{
		Name:     yp.Name,
		Default:  def,
		Validate: compileValidator(yp, kind),
		Help:     yp.Help,
	}, nil
}

func compileValidator(yp yamlParam, kind esviz.Kind) func(esviz.Value) error {
	switch {
	case kind == esviz.Enum:
		return ChoicesValidator(yp.Choices)
	case kind == esviz.Int && (yp.Min != nil || yp.Max != nil):
		min, max := minInt, maxInt
		if yp.Min != nil {
			min = int(*yp.Min)
		}
		if yp.Max != nil {
			max = int(*yp.Max)
		}
		return IntValidator(min, max)
	case kind == esviz.Float && (yp.Min != nil || yp.Max != nil):
		min, max := negInfinity, infinity
		if yp.Min != nil {
			min = *yp.Min
		}
		if yp.Max != nil {
			max = *yp.Max
		}
		return FloatValidator(min, max)
	case kind == esviz.FloatRange:
		return RangeValidator(yp.Nillable)
	default:
		return KindValidator(kind, yp.Nillable)
	}
}

func decodeDefault(yp yamlParam, kind esviz.Kind) (esviz.Value, error) {
	if yp.Default == nil || yp.Default.Tag == "!!null" {
		if yp.Nillable {
			return esviz.NilValue(), nil
		}
		return zeroValue(yp, kind)
	}
	switch kind {
	case esviz.Bool:
		var b bool
		if err := yp.Default.Decode(&b); err != nil {
			return esviz.NilValue(), defaultErr(yp, err)
		}
		return esviz.BoolValue(b), nil
	case esviz.Int:
		var i int
		if err := yp.Default.Decode(&i); err != nil {
			return esviz.NilValue(), defaultErr(yp, err)
		}
		return esviz.IntValue(i), nil
	case esviz.Float:
		var f float64
		if err := yp.Default.Decode(&f); err != nil {
			return esviz.NilValue(), defaultErr(yp, err)
		}
		return esviz.FloatValue(f), nil
	case esviz.String, esviz.Enum:
		var s string
		if err := yp.Default.Decode(&s); err != nil {
			return esviz.NilValue(), defaultErr(yp, err)
		}
		if kind == esviz.Enum {
			return esviz.EnumValue(s), nil
		}
		return esviz.StringValue(s), nil
	case esviz.IntList:
		var l []int
		if err := yp.Default.Decode(&l); err != nil {
			return esviz.NilValue(), defaultErr(yp, err)
		}
		return esviz.IntListValue(l), nil
	case esviz.FloatRange:
		var r []float64
		if err := yp.Default.Decode(&r); err != nil {
			return esviz.NilValue(), defaultErr(yp, err)
		}
		if len(r) != 2 {
			return esviz.NilValue(), fmt.Errorf("settings: parameter %q: range default needs exactly 2 elements", yp.Name)
		}
		return esviz.RangeValue(r[0], r[1]), nil
	}
	return esviz.NilValue(), fmt.Errorf("settings: parameter %q: no default decoder for kind %v", yp.Name, kind)
}

func zeroValue(yp yamlParam, kind esviz.Kind) (esviz.Value, error) {
	switch kind {
	case esviz.Bool:
		return esviz.BoolValue(false), nil
	case esviz.Int:
		return esviz.IntValue(0), nil
	case esviz.Float:
		return esviz.FloatValue(0), nil
	case esviz.String:
		return esviz.StringValue(""), nil
	case esviz.Enum:
		if len(yp.Choices) > 0 {
			return esviz.EnumValue(yp.Choices[0]), nil
		}
		return esviz.NilValue(), fmt.Errorf("settings: enum parameter %q has no choices and no default", yp.Name)
	case esviz.IntList:
		return esviz.IntListValue(nil), nil
	case esviz.FloatRange:
		return esviz.NilValue(), fmt.Errorf("settings: range parameter %q needs a default or nillable: true", yp.Name)
	}
	return esviz.NilValue(), fmt.Errorf("settings: parameter %q: no zero value for kind %v", yp.Name, kind)
}

func defaultErr(yp yamlParam, err error) error {
	return fmt.Errorf("settings: parameter %q: bad default: %w", yp.Name, err)
}

const (
	minInt = math.MinInt
	maxInt = math.MaxInt
)

var (
	infinity    = math.Inf(1)
	negInfinity = math.Inf(-1)
)
