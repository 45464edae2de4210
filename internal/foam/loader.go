// Package foam loads an OpenFOAM case exported with foamToVTK: one
// volume mesh plus the boundary patch surfaces that share a file
// suffix with it.
package foam

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/field"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/vtk"
)

// ErrNotVolume is returned when the volume file parses but does not
// contain an unstructured grid.
var ErrNotVolume = errors.New("foam: volume file is not an unstructured grid")

// Part is one boundary patch surface. Mesh is nil and Err set when the
// file could not be used; loading continues past such parts.
type Part struct {
	Name string
	Path string
	Mesh *mesh.PolyData
	Err  error
}

// Case is a fully loaded simulation export.
type Case struct {
	Dir     string
	Volume  *field.Volume
	Surface *mesh.PolyData
	Parts   []Part
}

// GoodParts returns the parts that loaded successfully.
func (c *Case) GoodParts() []Part {
	var out []Part
	for _, p := range c.Parts {
		if p.Err == nil {
			out = append(out, p)
		}
	}
	return out
}

// FailedParts returns the parts that were skipped, with their errors.
func (c *Case) FailedParts() []Part {
	var out []Part
	for _, p := range c.Parts {
		if p.Err != nil {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the volume mesh at dir/volumeFile and walks dir for every
// other file matching partSuffix, reading each as a part surface, then
// combines the usable parts into one surface mesh. A missing or
// malformed volume is fatal; a bad part is recorded and skipped, and a
// case where no part loads keeps an empty combined surface.
func Load(dir, volumeFile, partSuffix string) (*Case, error) {
	c := &Case{Dir: dir}

	volPath := filepath.Join(dir, volumeFile)
	ds, err := vtk.ReadFile(volPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load volume mesh: %w", err)
	}
	if ds.Grid == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotVolume, volPath)
	}
	vol, err := field.NewVolume(ds.Grid)
	if err != nil {
		return nil, fmt.Errorf("failed to index volume mesh: %w", err)
	}
	c.Volume = vol

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// discovery is best effort; unreadable directories are skipped
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), partSuffix) || d.Name() == volumeFile {
			return nil
		}
		part := Part{
			Name: strings.TrimSuffix(d.Name(), partSuffix),
			Path: path,
		}
		pds, err := vtk.ReadFile(path)
		switch {
		case err != nil:
			part.Err = err
		case pds.Poly == nil:
			part.Err = fmt.Errorf("%s: not a surface mesh", path)
		default:
			part.Mesh = pds.Poly
		}
		c.Parts = append(c.Parts, part)
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, fmt.Errorf("failed to scan case directory: %w", err)
	}

	good := c.GoodParts()
	meshes := make([]*mesh.PolyData, len(good))
	for i, p := range good {
		meshes[i] = p.Mesh
	}
	c.Surface = mesh.Combine(meshes...)
	return c, nil
}
