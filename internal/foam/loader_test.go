package foam_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/foam"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/vtk"
)

const volumeSrc = `# vtk DataFile Version 2.0
internalMesh
ASCII
DATASET UNSTRUCTURED_GRID
POINTS 5 float
0 0 0
1 0 0
0 1 0
0 0 1
1 1 1
CELLS 2 10
4 0 1 2 3
4 1 2 3 4
CELL_TYPES 2
10 10
POINT_DATA 5
FIELD attributes 2
p 1 5 float
1 2 3 4 5
U 3 5 float
1 0 0 0 1 0 0 0 1 1 1 0 0 1 1
`

const bodySrc = `# vtk DataFile Version 2.0
motorBike_body
ASCII
DATASET POLYDATA
POINTS 4 float
0 0 0
1 0 0
1 1 0
0 1 0
POLYGONS 1 5
4 0 1 2 3
`

const wheelSrc = `# vtk DataFile Version 2.0
motorBike_wheel
ASCII
DATASET POLYDATA
POINTS 3 float
2 0 0
3 0 0
3 1 0
POLYGONS 1 4
3 0 1 2
`

var _ = Describe("Load", func() {
	var dir string

	write := func(name, src string) {
		GinkgoHelper()
		Expect(os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644)).To(Succeed())
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Context("with a complete case", func() {
		BeforeEach(func() {
			write("motorBike_500.vtk", volumeSrc)
			write("body_500.vtk", bodySrc)
			write("wheel_500.vtk", wheelSrc)
			write("notes.txt", "not a vtk file")
		})

		It("loads the volume and combines the parts", func() {
			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())

			Expect(c.Volume).NotTo(BeNil())
			Expect(c.Volume.NumTets()).To(Equal(2))
			Expect(c.Volume.Grid.Vector("U")).To(HaveLen(5))

			Expect(c.Parts).To(HaveLen(2))
			Expect(c.GoodParts()).To(HaveLen(2))
			Expect(c.FailedParts()).To(BeEmpty())
			Expect(c.Surface.NumPoints()).To(Equal(7))
			Expect(c.Surface.NumCells()).To(Equal(2))
		})

		It("names parts by their file base without the suffix", func() {
			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())

			names := []string{c.Parts[0].Name, c.Parts[1].Name}
			Expect(names).To(ConsistOf("body", "wheel"))
		})

		It("keeps the volume file out of the parts", func() {
			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())

			for _, p := range c.Parts {
				Expect(p.Name).NotTo(Equal("motorBike"))
			}
		})
	})

	Context("with parts in subdirectories", func() {
		BeforeEach(func() {
			write("motorBike_500.vtk", volumeSrc)
			write("body_500.vtk", bodySrc)
			sub := filepath.Join(dir, "patches")
			Expect(os.Mkdir(sub, 0o755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(sub, "wheel_500.vtk"), []byte(wheelSrc), 0o644)).To(Succeed())
		})

		It("walks the whole tree for parts", func() {
			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())

			names := []string{c.Parts[0].Name, c.Parts[1].Name}
			Expect(names).To(ConsistOf("body", "wheel"))
			Expect(c.Surface.NumPoints()).To(Equal(7))
		})
	})

	Context("with a corrupt part", func() {
		BeforeEach(func() {
			write("motorBike_500.vtk", volumeSrc)
			write("body_500.vtk", bodySrc)
			write("broken_500.vtk", "this is not a vtk file")
		})

		It("records the failure and keeps loading", func() {
			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())

			Expect(c.Parts).To(HaveLen(2))
			Expect(c.GoodParts()).To(HaveLen(1))

			failed := c.FailedParts()
			Expect(failed).To(HaveLen(1))
			Expect(failed[0].Name).To(Equal("broken"))
			Expect(errors.Is(failed[0].Err, vtk.ErrNotVTK)).To(BeTrue())
			Expect(c.Surface.NumPoints()).To(Equal(4))
		})
	})

	Context("with a volume grid posing as a part", func() {
		BeforeEach(func() {
			write("motorBike_500.vtk", volumeSrc)
			write("body_500.vtk", bodySrc)
			write("extra_500.vtk", volumeSrc)
		})

		It("skips the part that is not a surface", func() {
			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())

			failed := c.FailedParts()
			Expect(failed).To(HaveLen(1))
			Expect(failed[0].Name).To(Equal("extra"))
			Expect(failed[0].Err.Error()).To(ContainSubstring("not a surface mesh"))
		})
	})

	Context("with no loadable parts", func() {
		It("keeps an empty surface when nothing matches the suffix", func() {
			write("motorBike_500.vtk", volumeSrc)

			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Parts).To(BeEmpty())
			Expect(c.Surface.NumPoints()).To(BeZero())
			Expect(c.Volume).NotTo(BeNil())
		})

		It("keeps an empty surface when every part is broken", func() {
			write("motorBike_500.vtk", volumeSrc)
			write("broken_500.vtk", "junk")

			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.GoodParts()).To(BeEmpty())
			Expect(c.FailedParts()).To(HaveLen(1))
			Expect(c.Surface.NumPoints()).To(BeZero())
		})
	})

	Context("with an unreadable subdirectory", func() {
		BeforeEach(func() {
			write("motorBike_500.vtk", volumeSrc)
			write("body_500.vtk", bodySrc)
			locked := filepath.Join(dir, "locked")
			Expect(os.Mkdir(locked, 0o755)).To(Succeed())
			Expect(os.Chmod(locked, 0o000)).To(Succeed())
			DeferCleanup(os.Chmod, locked, os.FileMode(0o755))
		})

		It("skips it and keeps the loaded parts", func() {
			c, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.GoodParts()).To(HaveLen(1))
			Expect(c.Surface.NumPoints()).To(Equal(4))
		})
	})

	Context("with a bad volume", func() {
		It("fails when the volume file is missing", func() {
			write("body_500.vtk", bodySrc)

			_, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("volume"))
		})

		It("fails when the volume file is a surface", func() {
			write("motorBike_500.vtk", bodySrc)
			write("body_500.vtk", bodySrc)

			_, err := foam.Load(dir, "motorBike_500.vtk", "_500.vtk")
			Expect(errors.Is(err, foam.ErrNotVolume)).To(BeTrue())
		})
	})
})
