package main

import (
	"errors"
	"testing"
)

func TestTag(t *testing.T) {
	v, rest, err := tag("GET ")([]byte("GET /"))
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "GET ", string(v))
	ExpectEqual(t, "/", string(rest))

	_, rest, err = tag("GET ")([]byte("GE"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
	ExpectEqual(t, "GE", string(rest))
}

func TestTakeUntil(t *testing.T) {
	v, rest, err := takeUntil(": ")([]byte("Host: example"))
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "Host", string(v))
	ExpectEqual(t, ": example", string(rest))

	if _, _, err := takeUntil(": ")([]byte("Host")); !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestTakeTill(t *testing.T) {
	stop := func(b byte) bool { return b == '/' }

	v, rest, _ := takeTill(stop)([]byte("abc/def"))
	ExpectEqual(t, "abc", string(v))
	ExpectEqual(t, "/def", string(rest))

	v, rest, _ = takeTill(stop)([]byte("/def"))
	ExpectEqual(t, "", string(v))
	ExpectEqual(t, "/def", string(rest))

	v, rest, _ = takeTill(stop)([]byte("abc"))
	ExpectEqual(t, "abc", string(v))
	ExpectEqual(t, "", string(rest))
}

func TestTakeWhile1(t *testing.T) {
	digit := func(b byte) bool { return b >= '0' && b <= '9' }

	v, rest, err := takeWhile1(digit)([]byte("42x"))
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "42", string(v))
	ExpectEqual(t, "x", string(rest))

	if _, _, err := takeWhile1(digit)([]byte("x")); !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestAlt(t *testing.T) {
	p := alt(value(tag("a"), 1), value(tag("b"), 2), value(tag("ab"), 3))

	v, rest, err := p([]byte("abc"))
	if err != nil || v != 1 {
		t.Errorf("got %d, %v; want first alternative", v, err)
	}
	ExpectEqual(t, "bc", string(rest))

	v, _, _ = p([]byte("bc"))
	if v != 2 {
		t.Errorf("got %d, want 2", v)
	}

	if _, rest, err := p([]byte("c")); !errors.Is(err, ErrParse) || string(rest) != "c" {
		t.Errorf("got %q, %v; want untouched input and ErrParse", rest, err)
	}
}

func TestMany0(t *testing.T) {
	p := many0(tag("ab"))

	vs, rest, err := p([]byte("ababa"))
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 2 {
		t.Errorf("got %d matches, want 2", len(vs))
	}
	ExpectEqual(t, "a", string(rest))

	vs, rest, err = p([]byte("xyz"))
	if err != nil || len(vs) != 0 {
		t.Errorf("got %v, %v; want empty success", vs, err)
	}
	ExpectEqual(t, "xyz", string(rest))
}

func TestMany0StopsWithoutProgress(t *testing.T) {
	p := many0(takeTill(func(b byte) bool { return b == '/' }))

	vs, rest, err := p([]byte("/x"))
	if err != nil || len(vs) != 0 {
		t.Errorf("got %v, %v; want empty success", vs, err)
	}
	ExpectEqual(t, "/x", string(rest))
}

func TestSequencing(t *testing.T) {
	kv := pair(terminated(takeUntil("="), tag("=")), preceded(tag("["), takeUntil("]")))

	v, rest, err := kv([]byte("k=[v]!"))
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "k", string(v.first))
	ExpectEqual(t, "v", string(v.second))
	ExpectEqual(t, "]!", string(rest))

	_, rest, err = kv([]byte("k=v"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
	ExpectEqual(t, "k=v", string(rest))
}

func TestMapParser(t *testing.T) {
	length := mapParser(takeUntil(";"), func(b []byte) int { return len(b) })

	n, _, err := length([]byte("abcd;"))
	if err != nil || n != 4 {
		t.Errorf("got %d, %v; want 4", n, err)
	}
}

func TestVerify(t *testing.T) {
	short := verify(takeUntil(";"), func(b []byte) bool { return len(b) <= 3 })

	v, rest, err := short([]byte("abc;"))
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "abc", string(v))
	ExpectEqual(t, ";", string(rest))

	_, rest, err = short([]byte("abcd;"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
	ExpectEqual(t, "abcd;", string(rest))
}
