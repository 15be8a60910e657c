package component

import "github.com/milk9111/sandpit/level"

type Terrain struct {
	Kind level.Kind
}

var TerrainComponent = NewComponent[Terrain]()
