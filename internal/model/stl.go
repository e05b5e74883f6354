// Package model loads the decorative cat mesh and animates it in a small
// inset viewport. Nothing here affects gameplay.
package model

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidMesh is returned for files that are not STL meshes.
var ErrInvalidMesh = errors.New("invalid mesh")

const (
	stlHeaderSize = 80
	stlRecordSize = 50
)

// LoadSTLFile reads a binary or ASCII STL file.
func LoadSTLFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh: %w", err)
	}
	defer f.Close()

	m, err := LoadSTL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadSTL reads a binary or ASCII STL mesh.
func LoadSTL(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read mesh: %w", err)
	}

	// ASCII files start with "solid", but so do some binary headers. A
	// binary file's size always matches its triangle count.
	if len(data) >= stlHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if int64(len(data)) == stlHeaderSize+4+int64(count)*stlRecordSize {
			return parseBinarySTL(data, int(count))
		}
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return parseASCIISTL(data)
	}
	return nil, fmt.Errorf("%w: neither binary nor ASCII STL", ErrInvalidMesh)
}

func parseBinarySTL(data []byte, count int) (*Mesh, error) {
	if count == 0 {
		return nil, fmt.Errorf("%w: no triangles", ErrInvalidMesh)
	}
	m := &Mesh{Triangles: make([]Triangle, 0, count)}
	off := stlHeaderSize + 4
	for i := 0; i < count; i++ {
		rec := data[off : off+stlRecordSize]
		var t Triangle
		t.Normal = readVec3(rec[0:12])
		for v := 0; v < 3; v++ {
			t.V[v] = readVec3(rec[12+v*12 : 24+v*12])
		}
		m.Triangles = append(m.Triangles, t.withNormal())
		off += stlRecordSize
	}
	return m, nil
}

func readVec3(b []byte) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))),
	}
}

func parseASCIISTL(data []byte) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	var (
		cur   Triangle
		verts int
		line  int
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("%w: line %d: malformed facet", ErrInvalidMesh, line)
			}
			n, err := parseFloats(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidMesh, line, err)
			}
			cur = Triangle{Normal: n}
			verts = 0
		case "vertex":
			if len(fields) != 4 || verts >= 3 {
				return nil, fmt.Errorf("%w: line %d: malformed vertex", ErrInvalidMesh, line)
			}
			v, err := parseFloats(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidMesh, line, err)
			}
			cur.V[verts] = v
			verts++
		case "endfacet":
			if verts != 3 {
				return nil, fmt.Errorf("%w: line %d: facet with %d vertices", ErrInvalidMesh, line, verts)
			}
			m.Triangles = append(m.Triangles, cur.withNormal())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan mesh: %w", err)
	}
	if len(m.Triangles) == 0 {
		return nil, fmt.Errorf("%w: no triangles", ErrInvalidMesh)
	}
	return m, nil
}

func parseFloats(fields []string) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, err
		}
		v[i] = x
	}
	return v, nil
}

// WriteBinarySTL writes m as a binary STL file.
func WriteBinarySTL(w io.Writer, m *Mesh) error {
	buf := make([]byte, stlHeaderSize+4, stlHeaderSize+4+len(m.Triangles)*stlRecordSize)
	copy(buf, "binary STL written by arcats")
	binary.LittleEndian.PutUint32(buf[stlHeaderSize:], uint32(len(m.Triangles)))

	rec := make([]byte, stlRecordSize)
	for _, t := range m.Triangles {
		putVec3(rec[0:12], t.Normal)
		for v := 0; v < 3; v++ {
			putVec3(rec[12+v*12:24+v*12], t.V[v])
		}
		rec[48], rec[49] = 0, 0
		buf = append(buf, rec...)
	}
	_, err := w.Write(buf)
	return err
}

func putVec3(b []byte, v mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(float32(v[i])))
	}
}
