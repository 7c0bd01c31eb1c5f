package raster

// RenderMode selects how a mesh is rasterized.
type RenderMode uint8

const (
	RenderSolidFlat RenderMode = iota
	RenderWireframe
	RenderPoints
)

// Material is a minimal physically-flavoured surface description.
type Material struct {
	BaseColor Color

	// Metalness and Roughness are 0..1. Metalness darkens the diffuse term and tints
	// highlights; roughness widens them.
	Metalness Scalar
	Roughness Scalar

	Emissive          Color
	EmissiveIntensity Scalar

	Mode      RenderMode
	PointSize int // RenderPoints only; 0 means 1px.
}

// LightKind defines the supported light types.
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// Light is a fixed scene light.
//
// Directional lights shine from Position towards the origin. Point lights shine from
// Position in all directions without decay.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity Scalar
	Position  Vec3
}

func AmbientLight(c Color, intensity Scalar) Light {
	return Light{Kind: LightAmbient, Color: c, Intensity: intensity}
}

func DirectionalLight(pos Vec3, c Color, intensity Scalar) Light {
	return Light{Kind: LightDirectional, Color: c, Intensity: intensity, Position: pos}
}

func PointLight(pos Vec3, c Color, intensity Scalar) Light {
	return Light{Kind: LightPoint, Color: c, Intensity: intensity, Position: pos}
}

// Camera describes the viewing transform.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVDeg Scalar
	Near   Scalar
	Far    Scalar
}

// DefaultCamera mirrors the page defaults: (0,0,8) looking at the origin, 50° fov.
func DefaultCamera() Camera {
	return Camera{
		Position: V3(0, 0, 8),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FOVDeg:   50,
		Near:     0.1,
		Far:      1000,
	}
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVDeg
	if fov <= 1 || fov >= 179 {
		fov = 50
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 1000
	}
	return Mat4Perspective(DegToRad(fov), aspect, near, far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Mesh is an indexed triangle mesh with an object transform.
//
// Point meshes ignore Indices and draw every vertex.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material
}

// Scene is a collection of meshes and lights to render.
type Scene struct {
	Camera Camera
	Lights []Light

	meshes []Mesh
	alive  []bool
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: DefaultCamera(),
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// RemoveMesh removes a mesh by id.
func (s *Scene) RemoveMesh(id int) {
	if s == nil || id < 0 || id >= len(s.meshes) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Enabled = enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Transform = m
}

// UpdateMeshEmissive changes the emissive intensity of a mesh by id.
func (s *Scene) UpdateMeshEmissive(id int, intensity Scalar) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Material.EmissiveIntensity = intensity
}

// Len returns the number of live meshes.
func (s *Scene) Len() int {
	n := 0
	for _, a := range s.alive {
		if a {
			n++
		}
	}
	return n
}

// Clear removes every mesh.
func (s *Scene) Clear() {
	for i := range s.meshes {
		s.meshes[i] = Mesh{}
		s.alive[i] = false
	}
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}
