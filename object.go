// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// A Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([01]?(?:\.\d+)?)\s*)?\)$`)

// ParseColor parses a color written as #rgb, #rrggbb, #rrggbbaa,
// rgb(r, g, b), rgba(r, g, b, a), or an SVG color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		if len(hex) != 8 {
			return Color{}, errors.New("hex color needs 3, 6, or 8 digits")
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, errors.New("invalid hex digits")
		}
		return Color{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
	}
	if m := rgbPattern.FindStringSubmatch(strings.ToLower(s)); m != nil {
		var c [3]uint8
		for i := range c {
			n, err := strconv.Atoi(m[i+1])
			if err != nil || n > 255 {
				return Color{}, fmt.Errorf("color component %s out of range", m[i+1])
			}
			c[i] = uint8(n)
		}
		alpha := uint8(255)
		if m[4] != "" {
			a, err := strconv.ParseFloat(m[4], 64)
			if err != nil || a > 1 {
				return Color{}, fmt.Errorf("alpha %s out of range", m[4])
			}
			alpha = uint8(a*255 + 0.5)
		}
		return Color{c[0], c[1], c[2], alpha}, nil
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{named.R, named.G, named.B, named.A}, nil
	}
	return Color{}, errors.New("not a hex, rgb, or named color")
}

// A SizeUnit is the unit of a [Size].
type SizeUnit int

const (
	Pixel SizeUnit = iota
	Point
	Centimeter
	Millimeter
	Inch
	Percentage
)

var unitNames = map[string]SizeUnit{
	"px": Pixel,
	"pt": Point,
	"cm": Centimeter,
	"mm": Millimeter,
	"in": Inch,
	"%":  Percentage,
}

func (u SizeUnit) String() string {
	for name, v := range unitNames {
		if v == u {
			return name
		}
	}
	return fmt.Sprintf("SizeUnit(%d)", int(u))
}

// A Size is a length with a unit.
type Size struct {
	Value float64
	Unit  SizeUnit
}

func (s Size) String() string {
	return strconv.FormatFloat(s.Value, 'f', -1, 64) + s.Unit.String()
}

var sizePattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+))(px|pt|cm|mm|in|%)?$`)

// ParseSize parses a size: a number followed by an optional unit,
// one of px, pt, cm, mm, in, or %. A bare number is in pixels.
func ParseSize(s string) (Size, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Size{}, errors.New("size must be a number with an optional unit (px, pt, cm, mm, in, %)")
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, err
	}
	unit := Pixel
	if m[2] != "" {
		unit = unitNames[m[2]]
	}
	return Size{Value: v, Unit: unit}, nil
}

// Sizes are the four sides of a box, as for margins and padding.
type Sizes struct {
	Top, Right, Bottom, Left Size
}

func (s Sizes) String() string {
	return fmt.Sprintf("%v %v %v %v", s.Top, s.Right, s.Bottom, s.Left)
}

// ParseSizes parses one, two, or four space-separated sizes.
// One size applies to all sides; two are the vertical and horizontal sizes;
// four are top, right, bottom, and left.
func ParseSizes(s string) (Sizes, error) {
	fields := strings.Fields(s)
	sizes := make([]Size, len(fields))
	for i, f := range fields {
		size, err := ParseSize(f)
		if err != nil {
			return Sizes{}, err
		}
		sizes[i] = size
	}
	switch len(sizes) {
	case 1:
		return Sizes{sizes[0], sizes[0], sizes[0], sizes[0]}, nil
	case 2:
		return Sizes{sizes[0], sizes[1], sizes[0], sizes[1]}, nil
	case 4:
		return Sizes{sizes[0], sizes[1], sizes[2], sizes[3]}, nil
	}
	return Sizes{}, fmt.Errorf("want 1, 2, or 4 sizes, have %d", len(sizes))
}

// A Range is an inclusive range of 1-based indexes, x..y.
// Either end may be open.
type Range struct {
	Start, End int
	Open       RangeOpen
}

// RangeOpen records which ends of a [Range] are unbounded.
type RangeOpen int

const (
	OpenStart RangeOpen = 1 << iota
	OpenEnd
)

func (r Range) String() string {
	var b strings.Builder
	if r.Open&OpenStart == 0 {
		b.WriteString(strconv.Itoa(r.Start))
	}
	b.WriteString("..")
	if r.Open&OpenEnd == 0 {
		b.WriteString(strconv.Itoa(r.End))
	}
	return b.String()
}

// Bounded reports whether both ends of r are set.
func (r Range) Bounded() bool { return r.Open == 0 }

// MaxRangeLen is the largest number of values a range can be iterated into.
const MaxRangeLen = 1 << 20

// Len returns the number of integers in a bounded range.
func (r Range) Len() uint64 {
	return uint64(r.End) - uint64(r.Start) + 1
}

// Values returns the numbers in a bounded range, in order.
// Ranges longer than [MaxRangeLen] are an error.
func (r Range) Values() ([]Value, error) {
	n := r.Len()
	if n == 0 || n > MaxRangeLen {
		return nil, fmt.Errorf("range %s has more than %d values", r, MaxRangeLen)
	}
	out := make([]Value, 0, n)
	for i := uint64(0); i < n; i++ {
		out = append(out, Int(int64(r.Start)+int64(i)))
	}
	return out, nil
}

// ParseRange parses a range x..y, where either end may be omitted.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	lo, hi, ok := strings.Cut(s, "..")
	if !ok {
		return Range{}, errors.New("range must be x..y")
	}
	var r Range
	if lo == "" {
		r.Open |= OpenStart
	} else {
		n, err := strconv.Atoi(lo)
		if err != nil {
			return Range{}, fmt.Errorf("range start %q is not an integer", lo)
		}
		r.Start = n
	}
	if hi == "" {
		r.Open |= OpenEnd
	} else {
		n, err := strconv.Atoi(hi)
		if err != nil {
			return Range{}, fmt.Errorf("range end %q is not an integer", hi)
		}
		r.End = n
	}
	if r.Bounded() && r.End < r.Start {
		return Range{}, fmt.Errorf("range end %d is before start %d", r.End, r.Start)
	}
	return r, nil
}

// An Enum is one of a function parameter's named choices.
type Enum struct {
	Name string
}

func (e Enum) String() string { return e.Name }
