package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/voxpath/distmap"
	"github.com/katalvlaran/voxpath/store"
)

// CLISuite drives the command against one database per test.
type CLISuite struct {
	suite.Suite
	db     string
	stderr bytes.Buffer
}

func (s *CLISuite) SetupTest() {
	s.db = filepath.Join(s.T().TempDir(), "voxpath.db")
	s.stderr.Reset()
}

func (s *CLISuite) run(args ...string) (string, error) {
	var stdout bytes.Buffer
	err := run(context.Background(), append([]string{"-db", s.db}, args...), &stdout, &s.stderr)
	return stdout.String(), err
}

func (s *CLISuite) mustRun(args ...string) string {
	out, err := s.run(args...)
	s.Require().NoError(err, "voxpath %v", args)
	return out
}

func (s *CLISuite) TestSynthAndList() {
	s.mustRun("synth", "-name", "slab", "-dims", "4,3,2")
	s.mustRun("synth", "-name", "noise", "-shape", "random", "-dims", "3,3,3")
	generated := strings.TrimSpace(s.mustRun("synth", "-shape", "tube", "-dims", "8,5,5"))
	s.Len(generated, 36)

	out := s.mustRun("list")
	s.Contains(out, "grid\tslab\t4x3x2\n")
	s.Contains(out, "grid\tnoise\t3x3x3\n")
	s.Contains(out, "grid\t"+generated+"\t8x5x5\n")
}

func (s *CLISuite) TestStats() {
	s.mustRun("synth", "-name", "tube", "-shape", "tube", "-dims", "6,5,5")
	out := s.mustRun("stats", "-grid", "tube")
	s.Contains(out, "dims: 6x5x5\n")
	// axis plus its four face neighbours in every slice
	s.Contains(out, "admissible: 30 of 150\n")
	s.Contains(out, "components (conn 6): 1\n")
	s.Contains(out, "largest: [30]\n")

	out = s.mustRun("stats", "-grid", "tube", "-threshold", "2")
	s.Contains(out, "admissible: 0 of 150\n")
	s.NotContains(out, "largest")
}

func (s *CLISuite) TestBuildStoresField() {
	s.mustRun("synth", "-name", "slab", "-dims", "10,10,1")
	out := s.mustRun("build", "-grid", "slab", "-conn", "26")
	s.Equal("reached 100 voxels, max distance 9, stored as slab.dist\n", out)

	repo, err := store.OpenSQLite(s.db)
	s.Require().NoError(err)
	defer repo.Close()
	g, err := repo.Grid(context.Background(), "slab.dist")
	s.Require().NoError(err)
	s.Equal(9.0, g.Values()[99])
}

func (s *CLISuite) TestPathGreedy() {
	s.mustRun("synth", "-name", "slab", "-dims", "10,10,1")
	out := s.mustRun("path", "-grid", "slab", "-goal", "9,9,0", "-conn", "26", "-out", "diag")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	s.Len(lines, 11)
	s.Equal("(9,9,0)\t9", lines[0])
	s.Equal("(0,0,0)\t0", lines[9])
	s.Equal("stored 10 points as diag", lines[10])
	s.Contains(s.stderr.String(), `"msg":"path stored"`)

	repo, err := store.OpenSQLite(s.db)
	s.Require().NoError(err)
	defer repo.Close()
	pts, err := repo.Points(context.Background(), "diag")
	s.Require().NoError(err)
	s.Equal(r3.Vec{X: 9, Y: 9}, pts[0])
}

func (s *CLISuite) TestPathThinning() {
	s.mustRun("synth", "-name", "plate", "-dims", "5,3,1")
	out := s.mustRun("path", "-grid", "plate", "-method", "thinning",
		"-seed", "0,1,0", "-goal", "4,1,0", "-out", "centre")
	s.Equal("(4,1,0)\t4\n(3,1,0)\t3\n(2,1,0)\t2\n(1,1,0)\t1\n(0,1,0)\t0\nstored 5 points as centre\n", out)
}

func (s *CLISuite) TestPathPhysical() {
	s.mustRun("synth", "-name", "fine", "-dims", "5,1,1", "-spacing", "0.5,1,1")
	out := s.mustRun("path", "-grid", "fine", "-physical", "-seed", "0.1,0,0", "-goal", "1.9,0,0", "-out", "p")
	s.True(strings.HasPrefix(out, "(4,0,0)\t4\n"), out)

	_, err := s.run("path", "-grid", "fine", "-physical", "-goal", "9,0,0")
	s.ErrorContains(err, "outside the grid")
}

func (s *CLISuite) TestPathErrors() {
	s.mustRun("synth", "-name", "slab", "-dims", "3,3,1")
	_, err := s.run("path", "-grid", "slab", "-goal", "2,2,0", "-q", "2")
	s.True(errors.Is(err, distmap.ErrOptionViolation), "got %v", err)

	_, err = s.run("path", "-grid", "slab", "-goal", "2,2,0", "-threshold", "5")
	s.True(errors.Is(err, distmap.ErrSeedNotAdmissible), "got %v", err)

	_, err = s.run("path", "-grid", "slab", "-goal", "2,2")
	s.ErrorContains(err, "three comma-separated values")

	_, err = s.run("path", "-grid", "nothing", "-goal", "0,0,0")
	s.True(errors.Is(err, store.ErrNotFound))
}

func (s *CLISuite) TestRemove() {
	s.mustRun("synth", "-name", "slab", "-dims", "2,2,1")
	s.mustRun("rm", "-name", "slab")
	s.Equal("", s.mustRun("list"))
	_, err := s.run("rm", "-name", "slab")
	s.True(errors.Is(err, store.ErrNotFound))
}

func (s *CLISuite) TestConfigDefaults() {
	cfg := filepath.Join(s.T().TempDir(), "voxpath.json")
	logFile := filepath.Join(s.T().TempDir(), "voxpath.log")
	s.Require().NoError(os.WriteFile(cfg,
		[]byte(`{"connectivity": "26", "log_level": "debug", "log_file": "`+logFile+`"}`), 0o644))

	s.mustRun("synth", "-name", "slab", "-dims", "10,10,1")
	out, err := s.run("-config", cfg, "build", "-grid", "slab")
	s.Require().NoError(err)
	s.Contains(out, "max distance 9,")

	logs, err := os.ReadFile(logFile)
	s.Require().NoError(err)
	s.Contains(string(logs), `"msg":"distance field built"`)
}

func (s *CLISuite) TestUsageErrors() {
	_, err := s.run()
	s.ErrorContains(err, "missing command")
	_, err = s.run("mesh")
	s.ErrorContains(err, `unknown command "mesh"`)
	_, err = s.run("synth", "-shape", "torus")
	s.ErrorContains(err, `unknown shape "torus"`)
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func TestParseTriples(t *testing.T) {
	x, err := parseIndex(" 1, 2 ,3")
	require.NoError(t, err)
	require.Equal(t, 3, x.K)

	v, err := parseVec("0.5,-1,2e1")
	require.NoError(t, err)
	require.Equal(t, r3.Vec{X: 0.5, Y: -1, Z: 20}, v)

	_, err = parseIndex("1,a,3")
	require.Error(t, err)
}
