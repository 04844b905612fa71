package shader

import (
	"strings"
	"testing"
)

func TestLoadRawSourceRoundTrip(t *testing.T) {
	// Written in the canonical group order so the serialized output
	// is token-equivalent to the input.
	raw := `#version 300 es
precision highp float;
#define ENABLE_BLOOM
struct Light {
    vec4 color;
};
uniform vec4 kBaseColor;
uniform sampler2D kTexture;
in vec2 vTexCoord;
out vec4 fragOutColor;
void main() {
    fragOutColor = kBaseColor * texture(kTexture, vTexCoord);
}
`
	src, err := FromRawSource(raw, Fragment)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if src.Version() != GLSL300 {
		t.Errorf("expected GLSL300, got %v", src.Version())
	}
	if src.Precision() != PrecisionHigh {
		t.Errorf("expected high precision, got %v", src.Precision())
	}
	if !src.HasUniform("kBaseColor") || !src.HasUniform("kTexture") {
		t.Error("uniform declarations not classified")
	}
	if !src.HasVarying("vTexCoord") {
		t.Error("fragment 'in' not classified as varying")
	}
	if !src.HasBlock("struct Light", BlockStructDeclaration) {
		t.Error("struct block not captured")
	}

	// Whitespace-insensitive token equivalence between input and output
	got := strings.Fields(src.GetSource(Development))
	want := strings.Fields(raw)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d\n%s", len(got), len(want), src.GetSource(Development))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d mismatch: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadRawSourceDeclarationOrder(t *testing.T) {
	raw := `uniform float kAlpha;
uniform vec2 kOffset;
uniform mat4 kModel;
`
	src, err := FromRawSource(raw, Fragment)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	text := src.GetSource(Production)
	a := strings.Index(text, "kAlpha")
	b := strings.Index(text, "kOffset")
	c := strings.Index(text, "kModel")
	if a < 0 || b < 0 || c < 0 || !(a < b && b < c) {
		t.Errorf("relative uniform order not preserved:\n%s", text)
	}
}

func TestLoadRawSourceVertexInOut(t *testing.T) {
	raw := `in vec2 aPosition;
out vec2 vTexCoord;
`
	src, err := FromRawSource(raw, Vertex)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !src.HasDataDeclaration("aPosition", KindAttribute) {
		t.Error("vertex 'in' not classified as attribute")
	}
	if !src.HasDataDeclaration("vTexCoord", KindVarying) {
		t.Error("vertex 'out' not classified as varying")
	}
}

func TestLoadRawSourceGroupMarkers(t *testing.T) {
	raw := `// @uniforms
#ifdef ENABLE_BLOOM
uniform float kBloomThreshold;
#endif
`
	src, err := FromRawSource(raw, Fragment)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !src.HasUniform("kBloomThreshold") {
		t.Error("uniform inside conditional not classified")
	}
	text := src.GetSource(Production)
	i := strings.Index(text, "#ifdef ENABLE_BLOOM")
	j := strings.Index(text, "uniform float kBloomThreshold;")
	k := strings.Index(text, "#endif")
	if i < 0 || j < 0 || k < 0 || !(i < j && j < k) {
		t.Errorf("conditional tokens not kept around the declaration:\n%s", text)
	}
	// the #ifdef gets an extra leading blank line
	if !strings.Contains(text, "\n\n#ifdef ENABLE_BLOOM") {
		t.Errorf("missing blank line before #ifdef:\n%s", text)
	}
}

func TestLoadRawSourceUngroupedConditional(t *testing.T) {
	// No group marker: warn and continue, the token lands in the
	// unnamed group which never serializes.
	raw := `#ifdef FOO
#endif
`
	src, err := FromRawSource(raw, Fragment)
	if err != nil {
		t.Fatalf("expected warn-and-continue, got error: %v", err)
	}
	if strings.Contains(src.GetSource(Production), "#ifdef FOO") {
		t.Error("ungrouped conditional should not serialize")
	}
}

func TestLoadRawSourceBadVersion(t *testing.T) {
	if _, err := FromRawSource("#version 420\n", Fragment); err == nil {
		t.Error("expected error on unsupported version")
	}
}

func TestLoadRawSourceBadDeclaration(t *testing.T) {
	if _, err := FromRawSource("uniform notatype kFoo;\n", Fragment); err == nil {
		t.Error("expected error on unclassifiable declaration")
	}
}

func TestLoadRawSourceConstUnsupported(t *testing.T) {
	if _, err := FromRawSource("const int kFoo = 1;\n", Fragment); err == nil {
		t.Error("expected error on const parsing")
	}
}

func TestLoadRawSourceBlockComment(t *testing.T) {
	if _, err := FromRawSource("/* block comment */\n", Fragment); err == nil {
		t.Error("expected error on block comment")
	}
}

func TestLoadRawSourceLayoutUniformBlock(t *testing.T) {
	raw := `layout(std140) uniform FrameUniforms {
    mat4 kProjection;
    mat4 kView;
};
void main() {}
`
	src, err := FromRawSource(raw, Vertex)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	block := src.FindBlock("FrameUniforms")
	if block == nil {
		t.Fatal("layout uniform block not captured")
	}
	if !strings.Contains(block.Data, "kView") {
		t.Errorf("block scan stopped early:\n%s", block.Data)
	}
	if !strings.Contains(src.GetSource(Production), "void main() {}") {
		t.Error("code after the block lost")
	}
}

func TestLoadRawSourceCodeComments(t *testing.T) {
	raw := `void main() {
    // sample and tint
    frag();
}
`
	src, err := FromRawSource(raw, Fragment)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !src.HasBlock("sample and tint", BlockComment) {
		t.Error("code-section comment not captured as comment block")
	}
	if strings.Contains(src.GetSource(Production), "sample and tint") {
		t.Error("production output kept the code comment")
	}
}
