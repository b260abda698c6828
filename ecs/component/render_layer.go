package component

// RenderLayer is used to sort draw order deterministically. Lower indices
// are drawn first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]("render_layer")

// Default layers for entities built without a render_layer prefab entry.
const (
	LayerPlatform   = 10
	LayerPickup     = 20
	LayerHazard     = 50
	LayerProjectile = 60
	LayerParticle   = 70
	LayerPlayer     = 100
)
