// Package target describes the machine model the middle end lowers against.
//
// A Desc carries the byte widths of the fundamental scalar types. It is the
// only machine knowledge the TAC layer needs: operand widths and the pointer
// classification both derive from it. Profiles for non-default targets are
// loaded from small TOML files.
package target

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Desc holds the scalar widths of one target machine, in bytes.
type Desc struct {
	Name          string `toml:"name"`
	PtrWidth      int64  `toml:"ptr_width"`
	BoolWidth     int64  `toml:"bool_width"`
	CharWidth     int64  `toml:"char_width"`
	ShortWidth    int64  `toml:"short_width"`
	IntWidth      int64  `toml:"int_width"`
	LongWidth     int64  `toml:"long_width"`
	LongLongWidth int64  `toml:"long_long_width"`
	FloatWidth    int64  `toml:"float_width"`
	DoubleWidth   int64  `toml:"double_width"`
	EnumWidth     int64  `toml:"enum_width"`
}

// Default returns the LP64 model used when no profile is given.
func Default() Desc {
	return Desc{
		Name:          "lp64",
		PtrWidth:      8,
		BoolWidth:     1,
		CharWidth:     1,
		ShortWidth:    2,
		IntWidth:      4,
		LongWidth:     8,
		LongLongWidth: 8,
		FloatWidth:    4,
		DoubleWidth:   8,
		EnumWidth:     4,
	}
}

// Load reads and validates a target profile from a TOML file.
func Load(path string) (Desc, error) {
	var d Desc
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return Desc{}, fmt.Errorf("target: decode %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return Desc{}, fmt.Errorf("target: %s: %w", path, err)
	}
	return d, nil
}

// Decode parses a target profile from TOML text.
func Decode(data string) (Desc, error) {
	var d Desc
	if _, err := toml.Decode(data, &d); err != nil {
		return Desc{}, fmt.Errorf("target: decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Desc{}, err
	}
	return d, nil
}

// Validate checks that the widths describe a machine the middle end can
// lower for.
func (d Desc) Validate() error {
	scalars := []struct {
		name  string
		width int64
	}{
		{"bool_width", d.BoolWidth},
		{"char_width", d.CharWidth},
		{"short_width", d.ShortWidth},
		{"int_width", d.IntWidth},
		{"long_width", d.LongWidth},
		{"long_long_width", d.LongLongWidth},
		{"float_width", d.FloatWidth},
		{"double_width", d.DoubleWidth},
		{"enum_width", d.EnumWidth},
		{"ptr_width", d.PtrWidth},
	}
	for _, s := range scalars {
		switch s.width {
		case 1, 2, 4, 8:
		default:
			return fmt.Errorf("%s must be 1, 2, 4 or 8, got %d", s.name, s.width)
		}
	}
	if d.PtrWidth < 4 {
		return fmt.Errorf("ptr_width must be at least 4, got %d", d.PtrWidth)
	}
	if d.ShortWidth > d.IntWidth || d.IntWidth > d.LongWidth || d.LongWidth > d.LongLongWidth {
		return fmt.Errorf("integer widths must be non-decreasing: short=%d int=%d long=%d long long=%d",
			d.ShortWidth, d.IntWidth, d.LongWidth, d.LongLongWidth)
	}
	if d.FloatWidth > d.DoubleWidth {
		return fmt.Errorf("float_width %d exceeds double_width %d", d.FloatWidth, d.DoubleWidth)
	}
	return nil
}
