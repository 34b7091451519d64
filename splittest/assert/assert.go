// Package assert provides tiny helpers for writing table driven tests with
// the splitter error registry.
package assert

import (
	"reflect"

	"github.com/holiman/uint256"
	"github.com/iov-one/splitter/errors"
)

// Tester is the subset of testing.TB used by all helpers.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Nil fails the test if given value is not nil. Errors are printed with
// their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Amount fails the test if got is not the decimal amount want.
func Amount(t Tester, want string, got *uint256.Int) {
	t.Helper()
	if got == nil {
		t.Fatalf("want amount %s, got nil", want)
		return
	}
	if s := got.ToBig().String(); s != want {
		t.Fatalf("want amount %s, got %s", want, s)
	}
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got is of the kind want. A nil want expects
// no error.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if want, ok := want.(interface{ Is(error) bool }); ok && want.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// ABCICode fails the test unless a transaction response code is the one
// registered for want. The response log is printed on failure.
func ABCICode(t Tester, want *errors.Error, code uint32, log string) {
	t.Helper()
	if code != want.ABCICode() {
		t.Fatalf("want code %d (%s), got %d: %s", want.ABCICode(), want, code, log)
	}
}

// FieldError ensures that err holds exactly one error for the field, of the
// kind want. A nil want expects no error for the field.
func FieldError(t Tester, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	logAll := func() {
		for i, e := range errs {
			t.Logf("\terror %d: %q", i+1, e)
		}
	}

	switch {
	case want == nil && len(errs) == 0:
	case want == nil:
		logAll()
		t.Fatalf("want no %q error, got %d", fieldName, len(errs))
	case len(errs) == 0:
		t.Fatalf("no %q error found in %+v", fieldName, err)
	case len(errs) > 1:
		logAll()
		t.Fatalf("want one %q error, got %d", fieldName, len(errs))
	case !want.Is(errs[0]):
		t.Fatalf("unexpected %q error: %q", fieldName, errs[0])
	}
}
