package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Admin", ErrEmpty, "required"),
		Field("Royalties.1.Rate", ErrInput, "must not be zero"),
		AppendField(nil, "DecimalPlaces", ErrOverflow),
	)

	cases := map[string]struct {
		field string
		want  *Error
	}{
		"admin":          {field: "Admin", want: ErrEmpty},
		"indexed rate":   {field: "Royalties.1.Rate", want: ErrInput},
		"decimal places": {field: "DecimalPlaces", want: ErrOverflow},
		"unknown field":  {field: "Token", want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			errs := FieldErrors(err, tc.field)
			if tc.want == nil {
				if len(errs) != 0 {
					t.Fatalf("want no errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("want one error, got %d", len(errs))
			}
			if !tc.want.Is(errs[0]) {
				t.Fatalf("unexpected error: %+v", errs[0])
			}
		})
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrInput); err != ErrInput {
		t.Fatalf("single error must be returned as is, got %v", err)
	}

	err := Append(ErrEmpty, Append(ErrInput, ErrState))
	u, ok := err.(unpacker)
	if !ok {
		t.Fatalf("want multi error, got %T", err)
	}
	if n := len(u.Unpack()); n != 3 {
		t.Fatalf("want flat list of 3 errors, got %d", n)
	}
	if code, _ := ABCIInfo(err, false); code != ErrEmpty.ABCICode() {
		t.Fatalf("multi error must use the first error code, got %d", code)
	}
}
