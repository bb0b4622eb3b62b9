package catalogs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func validFiles() map[string]string {
	return map[string]string{
		"hulls.json": `[
			{"id":1,"name":"Outrider","tech":1,"cost":"40T 20D 5M 50$","engines":1,"max_beams":1,"max_cargo":40},
			{"id":15,"name":"Small Deep Space Freighter","tech":1,"cost":"2T 2D 3M 3$","engines":1,"max_cargo":70},
			{"id":16,"name":"Medium Deep Space Freighter","tech":3,"cost":"T5 D5 M5 $60","engines":2,"max_cargo":200}
		]`,
		"engines.json":   `[{"id":1,"name":"StarDrive 1","tech":1,"cost":"1T 1D 1M 1$"},{"id":9,"name":"Transwarp Drive","tech":10,"cost":"3T 16D 35M 300$"}]`,
		"beams.json":     `[{"id":1,"name":"Laser","tech":1,"cost":"1T 1$"}]`,
		"torpedoes.json": `[{"id":1,"name":"Mark 1 Photon","tech":1,"cost":"1T 1D 1$","torpedo_cost":"1T 1D 1M 1$"}]`,
		"truehull.json":  `{"1":[1,15,16],"2":[15]}`,
	}
}

func TestLoadShipList(t *testing.T) {
	l, err := Load(writeFiles(t, validFiles()))
	require.NoError(t, err)

	require.Len(t, l.Hulls, 3)
	require.Equal(t, 2, l.Hull(16).NumEngines)
	require.Equal(t, cost.MustParse("5T 5D 5M 60$"), l.Hull(16).Cost)
	require.Equal(t, cost.MustParse("1T 1D 1M 1$"), l.Launcher(1).TorpedoCost)
	require.Equal(t, 2, l.Assignments.Index(1, 15))
	require.Equal(t, 0, l.Assignments.Index(2, 16))
	require.Equal(t, 15, l.Assignments.HullAt(2, 1))
	require.Equal(t, 3, l.Assignments.NumSlots(1))
	require.Len(t, l.Digests, 5)
	require.Len(t, l.Digests["hulls.json"], 64)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"engines.json":  `[{"id":1,"name":"A","tech":1},{"id":1,"name":"B","tech":1}]`,
		"beams.json":    `[{"id":1,"name":"","tech":1}]`,
		"hulls.json":    `[{"id":1,"name":"X","tech":11}]`,
		"truehull.json": `{"1":[99]}`,
	}
	for file, body := range cases {
		files := validFiles()
		files[file] = body
		_, err := Load(writeFiles(t, files))
		require.Error(t, err, file)
	}

	files := validFiles()
	delete(files, "beams.json")
	_, err := Load(writeFiles(t, files))
	require.True(t, os.IsNotExist(err))
}

func TestComponentLookupAndBest(t *testing.T) {
	l := New()
	changes := 0
	l.OnChange().Connect(func() { changes++ })
	l.AddEngine(Component{ID: 1, Name: "E1", Tech: 1})
	l.AddEngine(Component{ID: 5, Name: "E5", Tech: 5})
	l.AddEngine(Component{ID: 7, Name: "E7", Tech: 7})
	l.AddHull(Hull{Component: Component{ID: 3, Name: "H", Tech: 2}})
	l.AssignHull(4, 1, 3)
	require.Equal(t, 5, changes)

	require.Equal(t, 5, l.BestComponent(model.EngineTech, 6))
	require.Equal(t, 7, l.BestComponent(model.EngineTech, 10))
	require.Equal(t, 0, l.BestComponent(model.BeamTech, 10))
	require.Equal(t, "H", l.Component(model.HullTech, 3).Name)
	require.Nil(t, l.Component(model.TorpedoTech, 3))
	require.Equal(t, []int{1, 5, 7}, l.ComponentIDs(model.EngineTech))
	require.Equal(t, 1, l.Assignments.Index(4, 3))
}
