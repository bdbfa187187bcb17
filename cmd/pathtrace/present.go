package main

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// presenter blits an RGBA8 buffer to a fullscreen textured quad — the
// minimal rasterizer surface needed to view the path tracer interactively
// (SPEC_FULL.md's DOMAIN STACK note on github.com/go-gl/gl). Grounded on
// the quad/shader/texture-upload pattern common to the example corpus's
// go-gl demos (vertex attribute 0 carries clip-space position; the
// fragment shader samples a single sampler2D).
type presenter struct {
	program     uint32
	vao         uint32
	texture     uint32
	texW, texH  int
	uTexUniform int32
}

const presentVertexShader = `
#version 410
layout(location = 0) in vec2 vert;
out vec2 texCoord;
void main() {
	texCoord = vec2((vert.x + 1.0) / 2.0, (1.0 - vert.y) / 2.0);
	gl_Position = vec4(vert, 0.0, 1.0);
}
` + "\x00"

const presentFragmentShader = `
#version 410
in vec2 texCoord;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = vec4(texture(tex, texCoord).rgb, 1.0);
}
` + "\x00"

func newPresenter() (*presenter, error) {
	program, err := linkProgram(presentVertexShader, presentFragmentShader)
	if err != nil {
		return nil, err
	}

	// Two triangles covering clip space, no index buffer — six verts drawn
	// directly with gl.DrawArrays.
	vertices := []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, -1,
		1, 1,
		-1, 1,
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return &presenter{
		program:     program,
		vao:         vao,
		texture:     tex,
		uTexUniform: gl.GetUniformLocation(program, gl.Str("tex\x00")),
	}, nil
}

// Upload re-specifies the texture's storage whenever the accumulation
// buffer's dimensions change, otherwise updates in place.
func (p *presenter) Upload(width, height int, rgba []byte) {
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	if width != p.texW || height != p.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
		p.texW, p.texH = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	}
}

// Draw presents the currently bound texture as a fullscreen quad.
func (p *presenter) Draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(p.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.Uniform1i(p.uTexUniform, 0)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func compileShaderSource(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %v", log)
	}
	return shader, nil
}

func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShaderSource(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShaderSource(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link program: %v", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}
