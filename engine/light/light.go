package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient adds a constant color to every lit fragment regardless of position or normal.
	LightTypeAmbient LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range, shaped by the decay exponent.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   [3]float32
	color      [3]float32
	intensity  float32
	lightRange float32
	decay      float32
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// Lights contribute to lit materials in both the GPU and CPU pipelines, which evaluate the same
// lambert model: ambient plus, per point light, color * intensity * max(n.l, 0) * falloff where
// falloff = clamp(1 - distance/range, 0, 1)^decay. A range of zero disables the falloff.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient or point)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// Range returns the distance at which a point light reaches zero.
	//
	// Returns:
	//   - float32: the range, 0 for unbounded
	Range() float32

	// Decay returns the falloff exponent of a point light.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// Enabled reports whether the light contributes to rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Radiance returns color multiplied by intensity.
	//
	// Returns:
	//   - [3]float32: the scaled color
	Radiance() [3]float32

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x: the x position component
	//   - y: the y position component
	//   - z: the z position component
	SetPosition(x, y, z float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable the light
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (ambient or point)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		color:      [3]float32{1, 1, 1},
		intensity:  1.0,
		lightRange: 0,
		decay:      2.0,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Radiance() [3]float32 {
	return [3]float32{l.color[0] * l.intensity, l.color[1] * l.intensity, l.color[2] * l.intensity}
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
