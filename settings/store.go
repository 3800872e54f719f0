package settings

import (
	"fmt"

	"github.com/jrvillar/esviz"
)

//The parameter store only knows what the parameters are and which of them
//changed in a batch. It never recomputes anything; that is the scheduler's
//job in engine.go.

type param struct {
	spec    ParamSpec
	current esviz.Value
}

type store struct {
	params map[string]*param
	order  []string //schema order, for introspection listings
}

func newStore(schema Schema) (*store, error) {
	s := &store{params: make(map[string]*param, len(schema))}
	for _, spec := range schema {
		if spec.Name == "" {
			return nil, fmt.Errorf("settings: schema contains a parameter with an empty name")
		}
		if _, dup := s.params[spec.Name]; dup {
			return nil, fmt.Errorf("settings: parameter %q declared twice in schema", spec.Name)
		}
		if spec.Validate != nil {
			if err := spec.Validate(spec.Default); err != nil {
				return nil, fmt.Errorf("settings: default for parameter %q fails its own validator: %w", spec.Name, err)
			}
		}
		s.params[spec.Name] = &param{spec: spec, current: spec.Default}
		s.order = append(s.order, spec.Name)
	}
	return s, nil
}

func (s *store) get(name string) (esviz.Value, error) {
	p, ok := s.params[name]
	if !ok {
		return esviz.NilValue(), &esviz.UnknownParameter{Name: name}
	}
	return p.current, nil
}

func (s *store) has(name string) bool {
	_, ok := s.params[name]
	return ok
}

// validate checks one candidate without applying it.
func (s *store) validate(name string, v esviz.Value) error {
	p, ok := s.params[name]
	if !ok {
		return &esviz.UnknownParameter{Name: name}
	}
	if p.spec.Validate == nil {
		return nil
	}
	if err := p.spec.Validate(v); err != nil {
		iv, ok := err.(*esviz.InvalidValue)
		if ok && iv.Name == "" {
			iv.Name = name
		}
		return err
	}
	return nil
}

// update applies a batch. The whole batch is validated before anything is
// applied, so a rejected value leaves every parameter untouched
// (all-or-nothing). It returns the names whose values actually changed;
// re-setting a parameter to a value equal to its current one does not count
// as a change.
func (s *store) update(m map[string]esviz.Value) ([]string, error) {
	for name, v := range m {
		if err := s.validate(name, v); err != nil {
			return nil, err
		}
	}
	var changed []string
	for _, name := range s.order {
		v, ok := m[name]
		if !ok {
			continue
		}
		p := s.params[name]
		if p.current.Equal(v) {
			continue
		}
		p.current = v
		changed = append(changed, name)
	}
	return changed, nil
}

func (s *store) info(name string) (Info, error) {
	p, ok := s.params[name]
	if !ok {
		return Info{}, &esviz.UnknownParameter{Name: name}
	}
	return Info{Name: name, Current: p.current, Default: p.spec.Default, Help: p.spec.Help}, nil
}

func (s *store) names() []string {
	c := make([]string, len(s.order))
	copy(c, s.order)
	return c
}
