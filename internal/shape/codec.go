package shape

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformed wraps every decode failure.
var ErrMalformed = errors.New("malformed shape record")

const header = "# shapeboard v1"

// A record is one line: the kind followed by key=value fields, e.g.
//
//	polygon id=… vis=1 w=2 c=0,0,1 f=- rot=0,0,0 v=0,0;100,0;50,50
//	circle id=… vis=1 w=2 c=1,0,0 f=1,1,0 rot=0,0,0 v=10,20 r=50,50
//	teapot id=… vis=1 w=2 c=.6,.3,.4 f=- rot=-15,30,0 v=0,0 size=80 z=0
//
// Field order is free on read. Blank lines and lines starting with # are
// skipped.

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fmtFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmtFloat(v)
	}
	return strings.Join(parts, ",")
}

// EncodeRecord renders one shape as a single line without a trailing newline.
func EncodeRecord(s *Shape) string {
	var b strings.Builder
	b.WriteString(s.Kind.String())
	fmt.Fprintf(&b, " id=%s", s.ID)
	vis := 0
	if s.Visible {
		vis = 1
	}
	fmt.Fprintf(&b, " vis=%d w=%d c=%s", vis, s.Width, fmtFloats(s.LineColor.R, s.LineColor.G, s.LineColor.B))
	if s.Fill != nil {
		fmt.Fprintf(&b, " f=%s", fmtFloats(s.Fill.R, s.Fill.G, s.Fill.B))
	} else {
		b.WriteString(" f=-")
	}
	fmt.Fprintf(&b, " rot=%s", fmtFloats(s.Rotation[:]...))
	verts := make([]string, len(s.Vertices))
	for i, v := range s.Vertices {
		verts[i] = fmtFloats(v.X, v.Y)
	}
	fmt.Fprintf(&b, " v=%s", strings.Join(verts, ";"))
	switch s.Kind {
	case Circle, Ellipse:
		fmt.Fprintf(&b, " r=%s", fmtFloats(s.Radii.X, s.Radii.Y))
	case Teapot:
		fmt.Fprintf(&b, " size=%s z=%s", fmtFloat(s.Size), fmtFloat(s.Depth))
	}
	return b.String()
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d numbers in %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseColor(s string) (Color, error) {
	v, err := parseFloats(s, 3)
	if err != nil {
		return Color{}, err
	}
	return Color{v[0], v[1], v[2]}, nil
}

// DecodeRecord parses one line written by EncodeRecord. The result is
// validated; records missing an id get a fresh one.
func DecodeRecord(line string) (*Shape, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty record: %w", ErrMalformed)
	}
	kind, ok := ParseKind(fields[0])
	if !ok {
		return nil, fmt.Errorf("unknown kind %q: %w", fields[0], ErrMalformed)
	}
	s := &Shape{Kind: kind, Visible: true}
	seen := map[string]bool{}
	for _, f := range fields[1:] {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("field %q has no value: %w", f, ErrMalformed)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate field %q: %w", key, ErrMalformed)
		}
		seen[key] = true
		if err := s.decodeField(key, val); err != nil {
			return nil, fmt.Errorf("field %s: %v: %w", key, err, ErrMalformed)
		}
	}
	for _, k := range []string{"w", "c", "v"} {
		if !seen[k] {
			return nil, fmt.Errorf("missing field %q: %w", k, ErrMalformed)
		}
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
	}
	return s, nil
}

func (s *Shape) decodeField(key, val string) error {
	switch key {
	case "id":
		s.ID = val
	case "vis":
		switch val {
		case "0":
			s.Visible = false
		case "1":
			s.Visible = true
		default:
			return fmt.Errorf("want 0 or 1, got %q", val)
		}
	case "w":
		w, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		s.Width = w
	case "c":
		c, err := parseColor(val)
		if err != nil {
			return err
		}
		s.LineColor = c
	case "f":
		if val == "-" {
			s.Fill = nil
			return nil
		}
		c, err := parseColor(val)
		if err != nil {
			return err
		}
		s.Fill = &c
	case "rot":
		v, err := parseFloats(val, 3)
		if err != nil {
			return err
		}
		copy(s.Rotation[:], v)
	case "v":
		for _, p := range strings.Split(val, ";") {
			xy, err := parseFloats(p, 2)
			if err != nil {
				return err
			}
			s.Vertices = append(s.Vertices, Vec2{xy[0], xy[1]})
		}
	case "r":
		v, err := parseFloats(val, 2)
		if err != nil {
			return err
		}
		s.Radii = Vec2{v[0], v[1]}
	case "size":
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		s.Size = v
	case "z":
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		s.Depth = v
	default:
		return errors.New("unknown field")
	}
	return nil
}

// Encode writes a header line followed by one record per shape.
func Encode(w io.Writer, shapes []*Shape) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, s := range shapes {
		if _, err := fmt.Fprintln(bw, EncodeRecord(s)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads every record from r. It fails on the first malformed line
// and returns no shapes in that case.
func Decode(r io.Reader) ([]*Shape, error) {
	var out []*Shape
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := DecodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading shapes: %w", err)
	}
	return out, nil
}

func (l *List) Save(w io.Writer) error {
	return Encode(w, l.shapes)
}

// Load replaces the content of l with the shapes read from r. On error l is
// left as it was.
func (l *List) Load(r io.Reader) error {
	shapes, err := Decode(r)
	if err != nil {
		return err
	}
	l.Replace(shapes)
	return nil
}
