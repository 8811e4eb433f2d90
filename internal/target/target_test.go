package target

import "testing"

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	if err := d.Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
	if d.PtrWidth != 8 || d.IntWidth != 4 || d.LongWidth != 8 {
		t.Fatalf("unexpected LP64 widths: ptr=%d int=%d long=%d", d.PtrWidth, d.IntWidth, d.LongWidth)
	}
}

func TestDecodeProfile(t *testing.T) {
	d, err := Decode(`
name = "ilp32"
ptr_width = 4
bool_width = 1
char_width = 1
short_width = 2
int_width = 4
long_width = 4
long_long_width = 8
float_width = 4
double_width = 8
enum_width = 4
`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Name != "ilp32" || d.PtrWidth != 4 || d.LongWidth != 4 {
		t.Fatalf("unexpected profile: %+v", d)
	}
}

func TestDecodeRejectsBadWidths(t *testing.T) {
	cases := []string{
		// pointer narrower than 4 bytes
		`name = "tiny"
ptr_width = 2
bool_width = 1
char_width = 1
short_width = 2
int_width = 4
long_width = 4
long_long_width = 8
float_width = 4
double_width = 8
enum_width = 4`,
		// non power-of-two scalar
		`name = "odd"
ptr_width = 8
bool_width = 1
char_width = 1
short_width = 3
int_width = 4
long_width = 8
long_long_width = 8
float_width = 4
double_width = 8
enum_width = 4`,
		// long narrower than int
		`name = "inverted"
ptr_width = 8
bool_width = 1
char_width = 1
short_width = 2
int_width = 8
long_width = 4
long_long_width = 8
float_width = 4
double_width = 8
enum_width = 4`,
	}
	for i, src := range cases {
		if _, err := Decode(src); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
