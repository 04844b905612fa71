// Package shader provides a structured, mergeable representation of one
// shader stage's source. A source is built either top-down through the
// Add* calls or bottom-up by parsing raw GLSL text, and serializes back
// to a single source string with a fixed group emission order.
package shader

import "strings"

// Stage identifies the pipeline stage a source targets.
type Stage int

const (
	StageUnset Stage = iota
	Vertex
	Fragment
)

// Version is the GLSL dialect version.
type Version int

const (
	VersionUnset Version = iota
	GLSL100
	GLSL300
)

// Precision is the default fragment float precision.
type Precision int

const (
	PrecisionUnset Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// Variant selects the serialization flavor. Development keeps comment
// blocks that Production strips.
type Variant int

const (
	Production Variant = iota
	Development
)

// BlockType tags the kind of a shader block.
type BlockType int

const (
	BlockDeclaration BlockType = iota
	BlockPreprocessorDefine
	BlockPreprocessorToken
	BlockComment
	BlockStructDeclaration
	BlockCode
)

// DeclKind is the declaration kind of a data declaration block.
type DeclKind int

const (
	KindAttribute DeclKind = iota
	KindUniform
	KindVarying
	KindConstant
)

// Declaration carries the parsed payload of a data declaration block so
// uniforms and varyings can be reasoned about after the fact.
type Declaration struct {
	Kind  DeclKind
	Type  DataType
	Name  string
	Value any // constant value when Kind == KindConstant
}

// Block is one line (or multi-line run) of shader source tagged with
// its structural meaning.
type Block struct {
	Type BlockType
	Data string
	Decl *Declaration
}

// DebugInfo is a key/value pair emitted as a comment near the top of
// the serialized source.
type DebugInfo struct {
	Key string
	Val string
}

// Emission order of the block groups. Insertion order is preserved
// within a group only.
var groupOrder = [...]string{
	"preprocessor",
	"constants",
	"types",
	"attributes",
	"uniforms",
	"varyings",
	"out",
	"code",
}

// ShaderSource holds the blocks of one shader stage grouped by purpose.
// The zero value is an empty source with no stage, version or precision
// constraint.
type ShaderSource struct {
	stage     Stage
	version   Version
	precision Precision
	groups    map[string][]Block
	debug     []DebugInfo
}

// New returns an empty source for the given stage.
func New(stage Stage) *ShaderSource {
	return &ShaderSource{stage: stage}
}

func (s *ShaderSource) SetStage(stage Stage)             { s.stage = stage }
func (s *ShaderSource) SetVersion(version Version)       { s.version = version }
func (s *ShaderSource) SetPrecision(precision Precision) { s.precision = precision }

func (s *ShaderSource) Stage() Stage         { return s.stage }
func (s *ShaderSource) Version() Version     { return s.version }
func (s *ShaderSource) Precision() Precision { return s.precision }

// IsEmpty is true when the source has no blocks at all.
func (s *ShaderSource) IsEmpty() bool {
	for _, blocks := range s.groups {
		if len(blocks) > 0 {
			return false
		}
	}
	return true
}

// Clear drops all blocks and debug info but keeps stage, version and
// precision.
func (s *ShaderSource) Clear() {
	s.groups = nil
	s.debug = nil
}

// AddDebugInfo records a key/value pair for the serialized header.
func (s *ShaderSource) AddDebugInfo(key, val string) {
	s.debug = append(s.debug, DebugInfo{Key: key, Val: val})
}

// AddShaderName records the human-readable shader name.
func (s *ShaderSource) AddShaderName(name string) {
	s.AddDebugInfo("Name", name)
}

// AddShaderSourceURI records where the source text came from.
func (s *ShaderSource) AddShaderSourceURI(uri string) {
	s.AddDebugInfo("Source", uri)
}

// ShaderName returns the recorded shader name, or "".
func (s *ShaderSource) ShaderName() string {
	for _, info := range s.debug {
		if info.Key == "Name" {
			return info.Val
		}
	}
	return ""
}

func (s *ShaderSource) addBlock(group string, block Block) {
	if s.groups == nil {
		s.groups = make(map[string][]Block)
	}
	s.groups[group] = append(s.groups[group], block)
}

// AddSource appends raw code lines to the code group without any
// structural interpretation.
func (s *ShaderSource) AddSource(source string) {
	for _, line := range strings.Split(strings.TrimRight(source, "\n"), "\n") {
		s.addBlock("code", Block{Type: BlockCode, Data: line})
	}
}

// AddDefine appends a valueless preprocessor definition. No dedup is
// done, callers must avoid re-adding the same symbol.
func (s *ShaderSource) AddDefine(name string) {
	s.addBlock("preprocessor", Block{
		Type: BlockPreprocessorDefine,
		Data: "#define " + name,
	})
}

// AddDefineValue appends a preprocessor definition with a value. The
// value must be an int, a float32 or a string.
func (s *ShaderSource) AddDefineValue(name string, value any) {
	s.addBlock("preprocessor", Block{
		Type: BlockPreprocessorDefine,
		Data: "#define " + name + " " + defineValue(value),
	})
}

// AddAttribute appends a vertex attribute declaration in the syntax of
// the source's version.
func (s *ShaderSource) AddAttribute(name string, typ DataType) {
	var code string
	switch s.version {
	case GLSL100:
		code = "attribute " + typ.String() + " " + name + ";"
	case GLSL300:
		code = "in " + typ.String() + " " + name + ";"
	default:
		panic("shader attribute requires a GLSL version")
	}
	s.addBlock("attributes", Block{
		Type: BlockDeclaration,
		Data: code,
		Decl: &Declaration{Kind: KindAttribute, Type: typ, Name: name},
	})
}

// AddUniform appends a uniform declaration.
func (s *ShaderSource) AddUniform(name string, typ DataType) {
	s.addBlock("uniforms", Block{
		Type: BlockDeclaration,
		Data: "uniform " + typ.String() + " " + name + ";",
		Decl: &Declaration{Kind: KindUniform, Type: typ, Name: name},
	})
}

// AddVarying appends a varying declaration. Under GLSL300 the direction
// keyword depends on the stage, vertex emits "out" and fragment "in".
func (s *ShaderSource) AddVarying(name string, typ DataType) {
	var code string
	switch s.version {
	case GLSL100:
		code = "varying " + typ.String() + " " + name + ";"
	case GLSL300:
		switch s.stage {
		case Vertex:
			code = "out " + typ.String() + " " + name + ";"
		case Fragment:
			code = "in " + typ.String() + " " + name + ";"
		default:
			panic("shader varying requires a stage")
		}
	default:
		panic("shader varying requires a GLSL version")
	}
	s.addBlock("varyings", Block{
		Type: BlockDeclaration,
		Data: code,
		Decl: &Declaration{Kind: KindVarying, Type: typ, Name: name},
	})
}

// AddConstant appends a constant declaration. Color values are
// linearized (sRGB to linear) before being embedded as literals since
// shader-side math happens in linear space.
func (s *ShaderSource) AddConstant(name string, value any) {
	typ := DataTypeFromValue(value)
	s.addBlock("constants", Block{
		Type: BlockDeclaration,
		Data: "const " + typ.String() + " " + name + " = " + constLiteral(value) + ";",
		Decl: &Declaration{Kind: KindConstant, Type: typ, Name: name, Value: value},
	})
}

// FoldUniform rewrites an existing uniform declaration into a constant
// in place, freezing a dynamic parameter into a faster constant. No-op
// when the uniform is absent. A data type mismatch is a caller bug.
func (s *ShaderSource) FoldUniform(name string, value any) {
	uniforms := s.groups["uniforms"]
	for i := range uniforms {
		block := &uniforms[i]
		if block.Type != BlockDeclaration || block.Decl.Name != name {
			continue
		}
		typ := DataTypeFromValue(value)
		if typ.String() != block.Decl.Type.String() {
			panic("uniform fold data type mismatch on " + name)
		}
		block.Decl.Kind = KindConstant
		block.Decl.Value = value
		block.Data = "const " + typ.String() + " " + name + " = " + constLiteral(value) + ";"
		return
	}
}

// FindDataDeclaration returns the declaration with the given name, or
// nil.
func (s *ShaderSource) FindDataDeclaration(name string) *Declaration {
	for _, blocks := range s.groups {
		for i := range blocks {
			if blocks[i].Type != BlockDeclaration || blocks[i].Decl == nil {
				continue
			}
			if blocks[i].Decl.Name == name {
				return blocks[i].Decl
			}
		}
	}
	return nil
}

// HasDataDeclaration checks for a declaration by name and kind.
func (s *ShaderSource) HasDataDeclaration(name string, kind DeclKind) bool {
	for _, blocks := range s.groups {
		for i := range blocks {
			if blocks[i].Type != BlockDeclaration || blocks[i].Decl == nil {
				continue
			}
			if blocks[i].Decl.Name == name && blocks[i].Decl.Kind == kind {
				return true
			}
		}
	}
	return false
}

// HasUniform checks for a uniform declaration by name.
func (s *ShaderSource) HasUniform(name string) bool {
	return s.HasDataDeclaration(name, KindUniform)
}

// HasVarying checks for a varying declaration by name.
func (s *ShaderSource) HasVarying(name string) bool {
	return s.HasDataDeclaration(name, KindVarying)
}

// FindBlock returns the first block whose data contains key, or nil.
func (s *ShaderSource) FindBlock(key string) *Block {
	for _, blocks := range s.groups {
		for i := range blocks {
			if strings.Contains(blocks[i].Data, key) {
				return &blocks[i]
			}
		}
	}
	return nil
}

// HasBlock checks for a block of the given type whose data contains
// key.
func (s *ShaderSource) HasBlock(key string, typ BlockType) bool {
	for _, blocks := range s.groups {
		for i := range blocks {
			if blocks[i].Type == typ && strings.Contains(blocks[i].Data, key) {
				return true
			}
		}
	}
	return false
}

// IsCompatible reports whether the two sources can be merged. For each
// of stage, version and precision that is set on both sides the values
// must match; an unset field places no constraint.
func (s *ShaderSource) IsCompatible(other *ShaderSource) bool {
	if s.stage != StageUnset && other.stage != StageUnset && s.stage != other.stage {
		return false
	}
	if s.version != VersionUnset && other.version != VersionUnset && s.version != other.version {
		return false
	}
	if s.precision != PrecisionUnset && other.precision != PrecisionUnset && s.precision != other.precision {
		return false
	}
	return true
}

// Merge appends every block from every group of other onto this
// source's matching groups. Callers must check IsCompatible first.
// Inter-group order stays fixed by the serializer; within a group the
// merge order decides relative ordering.
func (s *ShaderSource) Merge(other *ShaderSource) {
	for group, blocks := range other.groups {
		for _, block := range blocks {
			if block.Decl != nil {
				decl := *block.Decl
				block.Decl = &decl
			}
			s.addBlock(group, block)
		}
	}
}
