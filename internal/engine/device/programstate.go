package device

// Uniform is one named uniform binding.
type Uniform struct {
	Name  string
	Value any
}

// TextureBinding is one named sampler binding.
type TextureBinding struct {
	Name    string
	Texture Texture
}

// ProgramState collects the uniform and texture bindings of one draw.
// Bindings keep their set order; setting a name again overwrites the
// earlier value in place.
type ProgramState struct {
	uniforms []Uniform
	textures []TextureBinding
}

// SetUniform binds a uniform value by name.
func (s *ProgramState) SetUniform(name string, value any) {
	for i := range s.uniforms {
		if s.uniforms[i].Name == name {
			s.uniforms[i].Value = value
			return
		}
	}
	s.uniforms = append(s.uniforms, Uniform{Name: name, Value: value})
}

// SetTexture binds a texture by sampler name.
func (s *ProgramState) SetTexture(name string, texture Texture) {
	for i := range s.textures {
		if s.textures[i].Name == name {
			s.textures[i].Texture = texture
			return
		}
	}
	s.textures = append(s.textures, TextureBinding{Name: name, Texture: texture})
}

// Clone returns an independent copy of the bindings.
func (s *ProgramState) Clone() ProgramState {
	return ProgramState{
		uniforms: append([]Uniform(nil), s.uniforms...),
		textures: append([]TextureBinding(nil), s.textures...),
	}
}

// Uniform returns a bound uniform value.
func (s *ProgramState) Uniform(name string) (any, bool) {
	for i := range s.uniforms {
		if s.uniforms[i].Name == name {
			return s.uniforms[i].Value, true
		}
	}
	return nil, false
}

// Texture returns a bound texture.
func (s *ProgramState) Texture(name string) (Texture, bool) {
	for i := range s.textures {
		if s.textures[i].Name == name {
			return s.textures[i].Texture, true
		}
	}
	return nil, false
}

// Uniforms returns all uniform bindings in set order.
func (s *ProgramState) Uniforms() []Uniform {
	return s.uniforms
}

// Textures returns all texture bindings in set order.
func (s *ProgramState) Textures() []TextureBinding {
	return s.textures
}
