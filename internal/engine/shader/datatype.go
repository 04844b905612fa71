package shader

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
)

// DataType is the GLSL data type of a declaration.
type DataType int

const (
	TypeInt DataType = iota
	TypeFloat
	TypeVec2f
	TypeVec3f
	TypeVec4f
	TypeVec2i
	TypeVec3i
	TypeVec4i
	TypeMat2f
	TypeMat3f
	TypeMat4f
	TypeColor4f
	TypeSampler2D
)

// Vec2i, Vec3i and Vec4i are integer vector constant values.
type Vec2i [2]int
type Vec3i [3]int
type Vec4i [4]int

// String returns the GLSL type name.
func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeVec2f:
		return "vec2"
	case TypeVec3f:
		return "vec3"
	case TypeVec4f:
		return "vec4"
	case TypeVec2i:
		return "ivec2"
	case TypeVec3i:
		return "ivec3"
	case TypeVec4i:
		return "ivec4"
	case TypeMat2f:
		return "mat2"
	case TypeMat3f:
		return "mat3"
	case TypeMat4f:
		return "mat4"
	case TypeColor4f:
		return "vec4"
	case TypeSampler2D:
		return "sampler2D"
	}
	panic("unknown shader data type")
}

// dataTypeFromString maps a GLSL type keyword back to a DataType.
func dataTypeFromString(str string) (DataType, bool) {
	switch str {
	case "int":
		return TypeInt, true
	case "float":
		return TypeFloat, true
	case "vec2":
		return TypeVec2f, true
	case "vec3":
		return TypeVec3f, true
	case "vec4":
		return TypeVec4f, true
	case "ivec2":
		return TypeVec2i, true
	case "ivec3":
		return TypeVec3i, true
	case "ivec4":
		return TypeVec4i, true
	case "mat2":
		return TypeMat2f, true
	case "mat3":
		return TypeMat3f, true
	case "mat4":
		return TypeMat4f, true
	case "sampler2D":
		return TypeSampler2D, true
	}
	return 0, false
}

// DataTypeFromValue maps a Go constant value to its GLSL data type.
// Unsupported value types are a caller bug. Colors map to vec4, which
// is what they are on the shader side.
func DataTypeFromValue(value any) DataType {
	switch value.(type) {
	case int:
		return TypeInt
	case float32:
		return TypeFloat
	case gfxcolor.Color:
		return TypeVec4f
	case mgl32.Vec2:
		return TypeVec2f
	case mgl32.Vec3:
		return TypeVec3f
	case mgl32.Vec4:
		return TypeVec4f
	case Vec2i:
		return TypeVec2i
	case Vec3i:
		return TypeVec3i
	case Vec4i:
		return TypeVec4i
	case mgl32.Mat2:
		return TypeMat2f
	case mgl32.Mat3:
		return TypeMat3f
	case mgl32.Mat4:
		return TypeMat4f
	}
	panic("value type has no GLSL constant support")
}

// floatLiteral formats a float so GLSL reads it as a float, never as an
// int literal.
func floatLiteral(v float32) string {
	str := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(str, ".e") {
		str += ".0"
	}
	return str
}

func floatList(vals ...float32) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = floatLiteral(v)
	}
	return strings.Join(parts, ",")
}

// constLiteral formats a constant value as a GLSL literal.
func constLiteral(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case float32:
		return floatLiteral(v)
	case gfxcolor.Color:
		lin := v.Linearized()
		return "vec4(" + floatList(lin.R, lin.G, lin.B, lin.A) + ")"
	case mgl32.Vec2:
		return "vec2(" + floatList(v[0], v[1]) + ")"
	case mgl32.Vec3:
		return "vec3(" + floatList(v[0], v[1], v[2]) + ")"
	case mgl32.Vec4:
		return "vec4(" + floatList(v[0], v[1], v[2], v[3]) + ")"
	case Vec2i:
		return "ivec2(" + strconv.Itoa(v[0]) + "," + strconv.Itoa(v[1]) + ")"
	case Vec3i:
		return "ivec3(" + strconv.Itoa(v[0]) + "," + strconv.Itoa(v[1]) + "," + strconv.Itoa(v[2]) + ")"
	case Vec4i:
		return "ivec4(" + strconv.Itoa(v[0]) + "," + strconv.Itoa(v[1]) + "," + strconv.Itoa(v[2]) + "," + strconv.Itoa(v[3]) + ")"
	case mgl32.Mat2:
		return "mat2(" + floatList(v[:]...) + ")"
	case mgl32.Mat3:
		return "mat3(" + floatList(v[:]...) + ")"
	case mgl32.Mat4:
		return "mat4(" + floatList(v[:]...) + ")"
	}
	panic("value type has no GLSL constant support")
}

// defineValue formats a preprocessor definition value.
func defineValue(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case float32:
		return floatLiteral(v)
	case string:
		return v
	}
	panic("value type has no preprocessor definition support")
}
