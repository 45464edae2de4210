// Package vtk reads legacy VTK files in the ASCII form written by
// foamToVTK: UNSTRUCTURED_GRID volumes and POLYDATA boundary patches
// with SCALARS, VECTORS, NORMALS and FIELD point attributes.
package vtk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// Dataset is the result of reading one legacy VTK file. Exactly one of
// Grid or Poly is set, depending on the DATASET kind.
type Dataset struct {
	Title string
	Grid  *mesh.Grid
	Poly  *mesh.PolyData
}

// ReadFile reads the legacy VTK file at path.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vtk file: %w", err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses a legacy VTK stream.
func Read(r io.Reader) (*Dataset, error) {
	br := bufio.NewReader(r)

	magic, err := br.ReadString('\n')
	if err != nil && magic == "" {
		return nil, &ParseError{Section: "header", Err: ErrNotVTK}
	}
	if !strings.HasPrefix(magic, "# vtk DataFile") {
		return nil, &ParseError{Section: "header", Err: ErrNotVTK}
	}

	title, err := br.ReadString('\n')
	if err != nil && title == "" {
		return nil, &ParseError{Section: "header", Err: fmt.Errorf("missing title line")}
	}

	format, err := br.ReadString('\n')
	if err != nil && format == "" {
		return nil, &ParseError{Section: "header", Err: fmt.Errorf("missing format line")}
	}
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "ASCII":
	case "BINARY":
		return nil, &ParseError{Section: "header", Err: ErrBinary}
	default:
		return nil, &ParseError{Section: "header", Err: fmt.Errorf("unknown format %q", strings.TrimSpace(format))}
	}

	sc := bufio.NewScanner(br)
	sc.Split(bufio.ScanWords)
	p := &parser{sc: sc}
	return p.parse(strings.TrimSpace(title))
}

// sectionKeywords are the top-level tokens the parser recognizes; skip
// logic for METADATA blocks scans forward to the next one of these.
var sectionKeywords = map[string]bool{
	"DATASET": true, "POINTS": true, "CELLS": true, "CELL_TYPES": true,
	"POLYGONS": true, "LINES": true, "VERTICES": true, "TRIANGLE_STRIPS": true,
	"POINT_DATA": true, "CELL_DATA": true, "SCALARS": true, "VECTORS": true,
	"NORMALS": true, "FIELD": true, "LOOKUP_TABLE": true, "METADATA": true,
}

type parser struct {
	sc     *bufio.Scanner
	unread string
}

// attrTarget receives the attribute arrays of a POINT_DATA or
// CELL_DATA section. Cell attributes go to throwaway maps since the
// pipeline works on point data.
type attrTarget struct {
	n       int
	scalars map[string][]float64
	vectors map[string][]geom.Vec3
}

func (p *parser) next() (string, bool) {
	if p.unread != "" {
		w := p.unread
		p.unread = ""
		return w, true
	}
	if !p.sc.Scan() {
		return "", false
	}
	return p.sc.Text(), true
}

func (p *parser) word(section string) (string, error) {
	w, ok := p.next()
	if !ok {
		if err := p.sc.Err(); err != nil {
			return "", &ParseError{Section: section, Err: err}
		}
		return "", &ParseError{Section: section, Err: fmt.Errorf("unexpected end of file")}
	}
	return w, nil
}

func (p *parser) int(section string) (int, error) {
	w, err := p.word(section)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(w)
	if err != nil {
		return 0, &ParseError{Section: section, Err: fmt.Errorf("expected integer, got %q", w)}
	}
	return v, nil
}

func (p *parser) float(section string) (float64, error) {
	w, err := p.word(section)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, &ParseError{Section: section, Err: fmt.Errorf("expected number, got %q", w)}
	}
	return v, nil
}

func (p *parser) floats(section string, n int) ([]float64, error) {
	vals := make([]float64, n)
	for i := range vals {
		v, err := p.float(section)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (p *parser) vecs(section string, n int) ([]geom.Vec3, error) {
	vals, err := p.floats(section, 3*n)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Vec3, n)
	for i := range out {
		out[i] = geom.Vec3{X: vals[3*i], Y: vals[3*i+1], Z: vals[3*i+2]}
	}
	return out, nil
}

// records reads n length-prefixed connectivity records, verifying the
// declared total word count and that every index refers to one of the
// npts declared points.
func (p *parser) records(section string, n, size, npts int) ([][]int, error) {
	if npts < 0 {
		npts = 0
	}
	out := make([][]int, 0, n)
	used := 0
	for i := 0; i < n; i++ {
		cnt, err := p.int(section)
		if err != nil {
			return nil, err
		}
		if cnt < 0 {
			return nil, &ParseError{Section: section, Err: fmt.Errorf("negative record length %d", cnt)}
		}
		rec := make([]int, cnt)
		for j := range rec {
			rec[j], err = p.int(section)
			if err != nil {
				return nil, err
			}
			if rec[j] < 0 || rec[j] >= npts {
				return nil, &ParseError{Section: section, Err: fmt.Errorf("point index %d out of range (%d points)", rec[j], npts)}
			}
		}
		used += cnt + 1
		out = append(out, rec)
	}
	if used != size {
		return nil, &ParseError{Section: section, Err: fmt.Errorf("declared size %d, read %d values", size, used)}
	}
	return out, nil
}

func (p *parser) parse(title string) (*Dataset, error) {
	ds := &Dataset{Title: title}
	var cur *attrTarget
	npts := -1

	setPoints := func(pts []geom.Vec3) error {
		switch {
		case ds.Grid != nil:
			ds.Grid.Points = pts
		case ds.Poly != nil:
			ds.Poly.Points = pts
		default:
			return &ParseError{Section: "points", Err: fmt.Errorf("POINTS before DATASET")}
		}
		npts = len(pts)
		return nil
	}

	for {
		w, ok := p.next()
		if !ok {
			break
		}
		switch strings.ToUpper(w) {
		case "DATASET":
			kind, err := p.word("dataset")
			if err != nil {
				return nil, err
			}
			switch strings.ToUpper(kind) {
			case "UNSTRUCTURED_GRID":
				ds.Grid = mesh.NewGrid()
			case "POLYDATA":
				ds.Poly = mesh.NewPolyData()
			default:
				return nil, &ParseError{Section: "dataset", Err: fmt.Errorf("unsupported dataset kind %q", kind)}
			}

		case "POINTS":
			n, err := p.int("points")
			if err != nil {
				return nil, err
			}
			if _, err := p.word("points"); err != nil { // data type
				return nil, err
			}
			pts, err := p.vecs("points", n)
			if err != nil {
				return nil, err
			}
			if err := setPoints(pts); err != nil {
				return nil, err
			}

		case "CELLS":
			if ds.Grid == nil {
				return nil, &ParseError{Section: "cells", Err: fmt.Errorf("CELLS outside UNSTRUCTURED_GRID")}
			}
			n, err := p.int("cells")
			if err != nil {
				return nil, err
			}
			size, err := p.int("cells")
			if err != nil {
				return nil, err
			}
			cells, err := p.records("cells", n, size, npts)
			if err != nil {
				return nil, err
			}
			ds.Grid.Cells = cells

		case "CELL_TYPES":
			if ds.Grid == nil {
				return nil, &ParseError{Section: "cell_types", Err: fmt.Errorf("CELL_TYPES outside UNSTRUCTURED_GRID")}
			}
			n, err := p.int("cell_types")
			if err != nil {
				return nil, err
			}
			if n != len(ds.Grid.Cells) {
				return nil, &ParseError{Section: "cell_types", Err: fmt.Errorf("%d types for %d cells", n, len(ds.Grid.Cells))}
			}
			types := make([]mesh.CellType, n)
			for i := range types {
				v, err := p.int("cell_types")
				if err != nil {
					return nil, err
				}
				types[i] = mesh.CellType(v)
			}
			ds.Grid.Types = types

		case "POLYGONS":
			if ds.Poly == nil {
				return nil, &ParseError{Section: "polygons", Err: fmt.Errorf("POLYGONS outside POLYDATA")}
			}
			n, err := p.int("polygons")
			if err != nil {
				return nil, err
			}
			size, err := p.int("polygons")
			if err != nil {
				return nil, err
			}
			polys, err := p.records("polygons", n, size, npts)
			if err != nil {
				return nil, err
			}
			ds.Poly.Polys = append(ds.Poly.Polys, polys...)

		case "LINES":
			if ds.Poly == nil {
				return nil, &ParseError{Section: "lines", Err: fmt.Errorf("LINES outside POLYDATA")}
			}
			n, err := p.int("lines")
			if err != nil {
				return nil, err
			}
			size, err := p.int("lines")
			if err != nil {
				return nil, err
			}
			lines, err := p.records("lines", n, size, npts)
			if err != nil {
				return nil, err
			}
			ds.Poly.Lines = append(ds.Poly.Lines, lines...)

		case "VERTICES":
			n, err := p.int("vertices")
			if err != nil {
				return nil, err
			}
			size, err := p.int("vertices")
			if err != nil {
				return nil, err
			}
			if _, err := p.records("vertices", n, size, npts); err != nil {
				return nil, err
			}

		case "TRIANGLE_STRIPS":
			if ds.Poly == nil {
				return nil, &ParseError{Section: "triangle_strips", Err: fmt.Errorf("TRIANGLE_STRIPS outside POLYDATA")}
			}
			n, err := p.int("triangle_strips")
			if err != nil {
				return nil, err
			}
			size, err := p.int("triangle_strips")
			if err != nil {
				return nil, err
			}
			strips, err := p.records("triangle_strips", n, size, npts)
			if err != nil {
				return nil, err
			}
			for _, s := range strips {
				for i := 0; i+2 < len(s); i++ {
					if i%2 == 0 {
						ds.Poly.Polys = append(ds.Poly.Polys, []int{s[i], s[i+1], s[i+2]})
					} else {
						ds.Poly.Polys = append(ds.Poly.Polys, []int{s[i+1], s[i], s[i+2]})
					}
				}
			}

		case "POINT_DATA":
			n, err := p.int("point_data")
			if err != nil {
				return nil, err
			}
			if npts >= 0 && n != npts {
				return nil, &ParseError{Section: "point_data", Err: fmt.Errorf("%d values for %d points", n, npts)}
			}
			switch {
			case ds.Grid != nil:
				cur = &attrTarget{n: n, scalars: ds.Grid.Scalars, vectors: ds.Grid.Vectors}
			case ds.Poly != nil:
				cur = &attrTarget{n: n, scalars: ds.Poly.Scalars, vectors: ds.Poly.Vectors}
			default:
				return nil, &ParseError{Section: "point_data", Err: fmt.Errorf("POINT_DATA before DATASET")}
			}

		case "CELL_DATA":
			n, err := p.int("cell_data")
			if err != nil {
				return nil, err
			}
			cur = &attrTarget{n: n, scalars: map[string][]float64{}, vectors: map[string][]geom.Vec3{}}

		case "SCALARS":
			if cur == nil {
				return nil, &ParseError{Section: "scalars", Err: fmt.Errorf("SCALARS outside a data section")}
			}
			if err := p.parseScalars(cur); err != nil {
				return nil, err
			}

		case "VECTORS", "NORMALS":
			if cur == nil {
				return nil, &ParseError{Section: "vectors", Err: fmt.Errorf("%s outside a data section", w)}
			}
			name, err := p.word("vectors")
			if err != nil {
				return nil, err
			}
			if _, err := p.word("vectors"); err != nil { // data type
				return nil, err
			}
			vecs, err := p.vecs("vectors", cur.n)
			if err != nil {
				return nil, err
			}
			cur.vectors[name] = vecs

		case "FIELD":
			if err := p.parseField(cur); err != nil {
				return nil, err
			}

		case "LOOKUP_TABLE":
			if _, err := p.word("lookup_table"); err != nil { // table name
				return nil, err
			}
			size, err := p.int("lookup_table")
			if err != nil {
				return nil, err
			}
			if _, err := p.floats("lookup_table", 4*size); err != nil {
				return nil, err
			}

		case "METADATA":
			p.skipMetadata()

		default:
			return nil, &ParseError{Section: "body", Err: fmt.Errorf("unexpected keyword %q", w)}
		}
	}
	if err := p.sc.Err(); err != nil {
		return nil, &ParseError{Section: "body", Err: err}
	}
	if ds.Grid == nil && ds.Poly == nil {
		return nil, &ParseError{Section: "body", Err: fmt.Errorf("no DATASET section")}
	}
	return ds, nil
}

// parseScalars handles SCALARS name type [numComp] with an optional
// LOOKUP_TABLE reference line. Single-component arrays are stored as
// scalars, three-component ones as vectors, others are discarded.
func (p *parser) parseScalars(cur *attrTarget) error {
	name, err := p.word("scalars")
	if err != nil {
		return err
	}
	if _, err := p.word("scalars"); err != nil { // data type
		return err
	}

	comp := 1
	w, err := p.word("scalars")
	if err != nil {
		return err
	}
	if c, cerr := strconv.Atoi(w); cerr == nil && c >= 1 && c <= 4 {
		comp = c
		w, err = p.word("scalars")
		if err != nil {
			return err
		}
	}
	if strings.ToUpper(w) == "LOOKUP_TABLE" {
		if _, err := p.word("scalars"); err != nil { // table name
			return err
		}
	} else {
		p.unread = w
	}

	vals, err := p.floats("scalars", cur.n*comp)
	if err != nil {
		return err
	}
	switch comp {
	case 1:
		cur.scalars[name] = vals
	case 3:
		vecs := make([]geom.Vec3, cur.n)
		for i := range vecs {
			vecs[i] = geom.Vec3{X: vals[3*i], Y: vals[3*i+1], Z: vals[3*i+2]}
		}
		cur.vectors[name] = vecs
	}
	return nil
}

// parseField handles FIELD name numArrays sections; foamToVTK writes
// all point attributes this way. A nil target (FIELD before any data
// section) parses and discards.
func (p *parser) parseField(cur *attrTarget) error {
	if _, err := p.word("field"); err != nil { // field name
		return err
	}
	num, err := p.int("field")
	if err != nil {
		return err
	}
	for i := 0; i < num; i++ {
		name, err := p.word("field")
		if err != nil {
			return err
		}
		comp, err := p.int("field")
		if err != nil {
			return err
		}
		tuples, err := p.int("field")
		if err != nil {
			return err
		}
		if _, err := p.word("field"); err != nil { // data type
			return err
		}
		vals, err := p.floats("field", comp*tuples)
		if err != nil {
			return err
		}
		if cur == nil {
			continue
		}
		if tuples != cur.n {
			return &ParseError{Section: "field", Err: fmt.Errorf("array %q has %d tuples for %d entries", name, tuples, cur.n)}
		}
		switch comp {
		case 1:
			cur.scalars[name] = vals
		case 3:
			vecs := make([]geom.Vec3, tuples)
			for j := range vecs {
				vecs[j] = geom.Vec3{X: vals[3*j], Y: vals[3*j+1], Z: vals[3*j+2]}
			}
			cur.vectors[name] = vecs
		}
	}
	return nil
}

// skipMetadata discards a METADATA block by scanning to the next
// section keyword.
func (p *parser) skipMetadata() {
	for {
		w, ok := p.next()
		if !ok {
			return
		}
		if sectionKeywords[strings.ToUpper(w)] {
			p.unread = w
			return
		}
	}
}
