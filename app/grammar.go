package main

import (
	"bytes"
	"fmt"
)

// parser consumes a prefix of in and returns its value together with the
// unconsumed input. A failed parser returns an error wrapping ErrParse and
// nothing else.
type parser[T any] func(in []byte) (T, []byte, error)

type pairOf[A, B any] struct {
	first  A
	second B
}

func tag(lit string) parser[[]byte] {
	return func(in []byte) ([]byte, []byte, error) {
		if !bytes.HasPrefix(in, []byte(lit)) {
			return nil, in, fmt.Errorf("%w: expected %q", ErrParse, lit)
		}
		return in[:len(lit)], in[len(lit):], nil
	}
}

// takeUntil returns everything before the first lit. lit itself is left in
// the input.
func takeUntil(lit string) parser[[]byte] {
	return func(in []byte) ([]byte, []byte, error) {
		i := bytes.Index(in, []byte(lit))
		if i < 0 {
			return nil, in, fmt.Errorf("%w: %q not found", ErrParse, lit)
		}
		return in[:i], in[i:], nil
	}
}

// takeTill never fails; it stops at the first byte matching stop or at the
// end of input.
func takeTill(stop func(byte) bool) parser[[]byte] {
	return func(in []byte) ([]byte, []byte, error) {
		i := 0
		for i < len(in) && !stop(in[i]) {
			i++
		}
		return in[:i], in[i:], nil
	}
}

func takeWhile1(accept func(byte) bool) parser[[]byte] {
	return func(in []byte) ([]byte, []byte, error) {
		i := 0
		for i < len(in) && accept(in[i]) {
			i++
		}
		if i == 0 {
			return nil, in, fmt.Errorf("%w: expected at least one byte", ErrParse)
		}
		return in[:i], in[i:], nil
	}
}

func alt[T any](ps ...parser[T]) parser[T] {
	return func(in []byte) (T, []byte, error) {
		var zero T
		err := fmt.Errorf("%w: no alternative", ErrParse)
		for _, p := range ps {
			v, rest, perr := p(in)
			if perr == nil {
				return v, rest, nil
			}
			err = perr
		}
		return zero, in, err
	}
}

// many0 applies p until it fails. A match that consumes nothing also ends the
// repetition, otherwise it would loop forever.
func many0[T any](p parser[T]) parser[[]T] {
	return func(in []byte) ([]T, []byte, error) {
		var out []T
		for {
			v, rest, err := p(in)
			if err != nil || len(rest) == len(in) {
				return out, in, nil
			}
			out = append(out, v)
			in = rest
		}
	}
}

func pair[A, B any](a parser[A], b parser[B]) parser[pairOf[A, B]] {
	return func(in []byte) (pairOf[A, B], []byte, error) {
		var zero pairOf[A, B]
		va, rest, err := a(in)
		if err != nil {
			return zero, in, err
		}
		vb, rest, err := b(rest)
		if err != nil {
			return zero, in, err
		}
		return pairOf[A, B]{va, vb}, rest, nil
	}
}

func preceded[A, B any](a parser[A], b parser[B]) parser[B] {
	return mapParser(pair(a, b), func(p pairOf[A, B]) B { return p.second })
}

func terminated[A, B any](a parser[A], b parser[B]) parser[A] {
	return mapParser(pair(a, b), func(p pairOf[A, B]) A { return p.first })
}

func mapParser[A, B any](p parser[A], f func(A) B) parser[B] {
	return func(in []byte) (B, []byte, error) {
		var zero B
		v, rest, err := p(in)
		if err != nil {
			return zero, in, err
		}
		return f(v), rest, nil
	}
}

// verify fails unless ok accepts the value produced by p.
func verify[T any](p parser[T], ok func(T) bool) parser[T] {
	return func(in []byte) (T, []byte, error) {
		var zero T
		v, rest, err := p(in)
		if err != nil {
			return zero, in, err
		}
		if !ok(v) {
			return zero, in, fmt.Errorf("%w: rejected %v", ErrParse, v)
		}
		return v, rest, nil
	}
}

func value[A, B any](p parser[A], v B) parser[B] {
	return mapParser(p, func(A) B { return v })
}
