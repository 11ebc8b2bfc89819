// Package option implements a matching protocol for optional value types.
//
// CSS is rich in values which may be unset, auto, relative or concrete.
// Calculations on such values quickly degenerate into chains of
// special-case testing. Option types defer the case distinction to a
// match construct instead:
//
//	w, err := box.W.Match(option.Of{
//	    option.None: css.SomeDimen(0),
//	    css.Auto:    enclosingWidth,
//	    option.Some: box.W,
//	})
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
package option

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.core'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.core")
}

var ErrNoSuchMatchPattern = errors.New("no such match pattern")
var ErrCannotMatchUnsetValue = errors.New("cannot match unset value")
var ErrCannotMatchValue = errors.New("cannot match value")

type MaybeOption int

const (
	None MaybeOption = iota
	Some
	Error
)

// Maybe is a type used for matching of optional types.
// It will match `Some` if a value is set, `None` if it is unset, or `Error`
// if an error occurs.
type Maybe map[MaybeOption]interface{}

// Of is a type used for matching of optional types.
// It will first try to match concrete values, and in case of no match will
// then try a Maybe match.
type Of map[interface{}]interface{}

// Type is a type for optional values.
type Type interface {
	Match(choices interface{}) (interface{}, error)
	Equals(other interface{}) bool
	IsNone() bool
}

// Match will do a standard matching of o against choices.
// It may be used to create a new type of interface option.Type.
//
// choices are expected to be a map type, where keys of the map are either
// concrete values for o, or of type MaybeOption. Values of the map may be
// of any type.
//
// If choices is of unknown kind, nil and ErrNoSuchMatchPattern are returned.
func Match(o Type, choices interface{}) (value interface{}, err error) {
	switch c := choices.(type) {
	case Of:
		return c.Match(o)
	case Maybe:
		return c.Match(o)
	}
	return nil, ErrNoSuchMatchPattern
}

func (of Of) Match(o Type) (value interface{}, err error) {
	if o.IsNone() {
		if expr, ok := of[None]; ok {
			value, err = valueOrExpr(expr, o, None)
		} else {
			err = ErrCannotMatchUnsetValue
		}
		return value, err
	}
	err = ErrCannotMatchValue
	matched := false
	for k, expr := range of {
		if o.Equals(k) {
			matched = true
			value, err = valueOrExpr(expr, o, Some)
		}
	}
	if !matched {
		if expr, ok := of[Some]; ok {
			value, err = valueOrExpr(expr, o, Some)
		}
	}
	if err != nil {
		tracer().Debugf("option match: %v", err)
		if expr, ok := of[Error]; ok {
			value, err = valueOrExpr(expr, o, Error)
		}
	}
	return value, err
}

func (maybe Maybe) Match(o Type) (value interface{}, err error) {
	if o.IsNone() {
		if expr, ok := maybe[None]; ok {
			value, err = valueOrExpr(expr, o, None)
		} else {
			err = ErrCannotMatchUnsetValue
		}
		return value, err
	}
	if expr, ok := maybe[Some]; ok {
		value, err = valueOrExpr(expr, o, Some)
	}
	if err != nil {
		tracer().Debugf("option match: %v", err)
		if expr, ok := maybe[Error]; ok {
			value, err = valueOrExpr(expr, o, Error)
		}
	}
	return value, err
}

func valueOrExpr(op interface{}, value Type, t MaybeOption) (interface{}, error) {
	switch x := op.(type) {
	case func(interface{}, MaybeOption) (interface{}, error):
		return x(value, t)
	case func(interface{}) (interface{}, error):
		return x(value)
	}
	return op, nil
}

// Fail may be used as an option case, causing a Match to fail with an error.
// The error will be returned by Match(…), unless caught with an option.Error
// label.
func Fail(err error) func(interface{}) (interface{}, error) {
	localErr := err
	return func(interface{}) (interface{}, error) {
		return nil, localErr
	}
}

// Safe wraps a Match's return values and drops the error value.
func Safe(x interface{}, err error) interface{} {
	return x
}
