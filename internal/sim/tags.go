package sim

// terrainTag annotates solid shapes the cart can touch: static obstacles
// and mechanism platforms. The classifier and the grip model read it off
// the contacted shape.
type terrainTag struct {
	Surface SurfaceType
	Fatal   bool   // Hazard; contact crashes regardless of speed
	Bumper  bool   // Bounces, never crashes
	MechID  string // Owning mechanism, or ""
}

// sensorTag annotates non-blocking sensor shapes: checkpoint regions and
// collectibles.
type sensorTag struct {
	Checkpoint  int    // Area index, or -1
	Collectible string // Collectible ID, or ""
}
