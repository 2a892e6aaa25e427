package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"revolve/internal/app"
	"revolve/internal/math3d"
)

var (
	flatVertexShader = `
		#version 410
		layout (location = 0) in vec3 aPos;
		uniform mat4 model;
		uniform mat4 view;
		uniform mat4 projection;
		void main() {
			gl_Position = projection * view * model * vec4(aPos, 1.0);
			gl_PointSize = 8.0;
		}
	`

	flatFragmentShader = `
		#version 410
		uniform vec3 color;
		out vec4 FragColor;
		void main() {
			FragColor = vec4(color, 1.0);
		}
	`

	litVertexShader = `
		#version 410
		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aNormal;
		uniform mat4 model;
		uniform mat4 view;
		uniform mat4 projection;
		out vec3 FragPos;
		out vec3 Normal;
		void main() {
			FragPos = vec3(model * vec4(aPos, 1.0));
			Normal = mat3(transpose(inverse(model))) * aNormal;
			gl_Position = projection * view * vec4(FragPos, 1.0);
		}
	`

	// Phong lighting. Back faces use the flipped normal.
	litFragmentShader = `
		#version 410
		in vec3 FragPos;
		in vec3 Normal;
		uniform vec3 lightPos;
		uniform vec3 lightColor;
		uniform vec3 objectColor;
		uniform vec3 viewPos;
		out vec4 FragColor;
		void main() {
			vec3 ambient = 0.15 * lightColor;

			vec3 norm = normalize(Normal);
			if (!gl_FrontFacing) {
				norm = -norm;
			}
			vec3 lightDir = normalize(lightPos - FragPos);
			vec3 diffuse = max(dot(norm, lightDir), 0.0) * lightColor;

			vec3 viewDir = normalize(viewPos - FragPos);
			vec3 reflectDir = reflect(-lightDir, norm);
			vec3 specular = 0.5 * pow(max(dot(viewDir, reflectDir), 0.0), 32.0) * lightColor;

			FragColor = vec4((ambient + diffuse + specular) * objectColor, 1.0);
		}
	`
)

var (
	LightPosition = math3d.V3(1, 2, 2)
	LightColor    = math3d.V3(1, 1, 1)
	ObjectColor   = math3d.V3(0.5, 0.7, 0.8)

	pointColor = math3d.V3(1, 1, 0)
	curveColor = math3d.V3(0, 1, 0)
)

// Renderer draws an app.State with OpenGL: the profile points and curve in
// input mode, the lit surface in view mode.
type Renderer struct {
	flat *Program
	lit  *Program

	points  *PointBuffer
	curve   *PointBuffer
	surface *MeshBuffer
}

func NewRenderer() (*Renderer, error) {
	flat, err := NewProgram(flatVertexShader, flatFragmentShader)
	if err != nil {
		return nil, err
	}
	lit, err := NewProgram(litVertexShader, litFragmentShader)
	if err != nil {
		flat.Delete()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)

	return &Renderer{
		flat:    flat,
		lit:     lit,
		points:  NewPointBuffer(),
		curve:   NewPointBuffer(),
		surface: NewMeshBuffer(),
	}, nil
}

// Draw clears the framebuffer and draws one frame of s.
func (r *Renderer) Draw(s *app.State, f app.Frame) {
	width, height := s.Size()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if f.SurfaceChanged {
		r.surface.Upload(s.Surface)
	}

	if f.Mode == app.InputPoints {
		r.points.Upload(s.Profile.Points())
		r.curve.Upload(s.Curve)

		r.flat.Use()
		r.flat.SetMat4("projection", f.Projection)
		r.flat.SetMat4("view", f.View)
		r.flat.SetMat4("model", f.Model)

		r.flat.SetVec3("color", curveColor)
		r.curve.DrawLineStrip()
		r.flat.SetVec3("color", pointColor)
		r.points.DrawPoints()
		return
	}

	r.lit.Use()
	r.lit.SetMat4("projection", f.Projection)
	r.lit.SetMat4("view", f.View)
	r.lit.SetMat4("model", f.Model)
	r.lit.SetVec3("lightPos", LightPosition)
	r.lit.SetVec3("lightColor", LightColor)
	r.lit.SetVec3("objectColor", ObjectColor)
	r.lit.SetVec3("viewPos", s.Camera.Position)
	r.surface.Draw()
}

func (r *Renderer) Delete() {
	r.points.Delete()
	r.curve.Delete()
	r.surface.Delete()
	r.flat.Delete()
	r.lit.Delete()
}
