/*
Package session persists named parameter sets, so a tuned plot can be
reopened later with its settings intact. Sessions live in a single bbolt
database file with one bucket per plot kind; values are encoded as small
kind-tagged YAML documents so they decode back into the right value kind.
*/
package session

import (
	"errors"
	"fmt"

	"github.com/jrvillar/esviz"
	"github.com/jrvillar/esviz/settings"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
)

// ErrNoSession is returned when loading a session name that was never saved.
var ErrNoSession = errors.New("session: no such session")

// Store is a handle to the session database. It is safe to keep open for the
// lifetime of the program; bbolt serializes access itself.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("session: opening %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores a parameter set under (plot, name), overwriting any previous
// session of that name.
func (s *Store) Save(plot, name string, params map[string]esviz.Value) error {
	doc := make(map[string]encValue, len(params))
	for k, v := range params {
		ev, err := encode(v)
		if err != nil {
			return fmt.Errorf("session: parameter %q: %w", k, err)
		}
		doc[k] = ev
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("session: encoding %q: %w", name, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(plot))
		if err != nil {
			return err
		}
		return b.Put([]byte(name), raw)
	})
}

// Load returns the parameter set stored under (plot, name).
func (s *Store) Load(plot, name string) (map[string]esviz.Value, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(plot))
		if b == nil {
			return ErrNoSession
		}
		v := b.Get([]byte(name))
		if v == nil {
			return ErrNoSession
		}
		raw = append(raw, v...) //copy; the slice is only valid inside the tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	var doc map[string]encValue
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("session: decoding %q: %w", name, err)
	}
	out := make(map[string]esviz.Value, len(doc))
	for k, ev := range doc {
		v, err := decode(ev)
		if err != nil {
			return nil, fmt.Errorf("session: parameter %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// List returns the session names saved for a plot kind, in key order.
func (s *Store) List(plot string) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(plot))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Del removes a saved session. Deleting a session that does not exist is not
// an error.
func (s *Store) Del(plot, name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(plot))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(name))
	})
}

// Snapshot captures every parameter of an engine as a savable set.
func Snapshot(e *settings.Engine) map[string]esviz.Value {
	out := make(map[string]esviz.Value)
	for _, name := range e.Params() {
		v, err := e.Get(name)
		if err != nil {
			//Params only returns registered names
			panic(err.Error())
		}
		out[name] = v
	}
	return out
}

// Apply loads a session and feeds it through the engine's normal update path,
// so validation and invalidation run as for any other batch.
func (s *Store) Apply(e *settings.Engine, plot, name string) error {
	params, err := s.Load(plot, name)
	if err != nil {
		return err
	}
	return e.Update(params)
}
