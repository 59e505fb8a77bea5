package vtk

import (
	"fmt"
	"os"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
)

// Save2 writes the map to path as a legacy ASCII VTK file.
func Save2(path string, m *cmap.CMap2) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vtk: create %s: %w", path, err)
	}
	if err := Write2(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("vtk: close %s: %w", path, err)
	}
	return nil
}

// Load2 reads a legacy ASCII VTK file into a fresh 2-map.
func Load2(path string, opts ...cmap.Option) (*cmap.CMap2, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vtk: open %s: %w", path, err)
	}
	defer f.Close()
	return Read2(f, opts...)
}
