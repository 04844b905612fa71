package shader

import (
	"fmt"
	"strings"

	"github.com/ember-gfx/ember/internal/logger"
)

// declKindFromString maps a declaration keyword to its kind. The in and
// out keywords depend on the stage.
func declKindFromString(str string, stage Stage) (DeclKind, bool) {
	switch {
	case str == "attribute":
		return KindAttribute, true
	case str == "uniform":
		return KindUniform, true
	case str == "varying":
		return KindVarying, true
	case str == "const":
		return KindConstant, true
	case str == "in" && stage == Vertex:
		return KindAttribute, true
	case str == "out" && stage == Vertex:
		return KindVarying, true
	case str == "in" && stage == Fragment:
		return KindVarying, true
	case str == "out" && stage == Fragment:
		return KindVarying, true
	}
	return 0, false
}

// tokenName extracts the declared name from a token, i.e. everything up
// to the terminating semicolon.
func tokenName(str string) (string, bool) {
	if i := strings.IndexByte(str, ';'); i >= 0 {
		return strings.TrimSpace(str[:i]), true
	}
	return "", false
}

func getToken(tokens []string, index int) string {
	if index >= len(tokens) {
		return ""
	}
	return tokens[index]
}

// LoadRawSource extracts structural information out of raw GLSL text so
// uniforms, varyings and the like can be reasoned about later. It is a
// line-oriented best-effort classifier, not a GLSL parser.
//
// The text is read in two segments. First the declarations: version,
// precision, preprocessor lines and data declarations, with relative
// ordering kept per group. A "// @group-name" marker line assigns the
// following conditional and comment lines to that group. Everything
// after the first unrecognized line is taken as code.
func (s *ShaderSource) LoadRawSource(source string) error {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var group string

	index := 0
loop:
	for ; index < len(lines); index++ {
		line := lines[index]
		if len(line) == 0 {
			continue
		}
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "// @") {
			group = trimmed[4:]
			continue
		} else if strings.HasPrefix(trimmed, "//@") {
			group = trimmed[3:]
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#version"):
			if strings.Contains(trimmed, "100") {
				s.SetVersion(GLSL100)
			} else if strings.Contains(trimmed, "300 es") {
				s.SetVersion(GLSL300)
			} else {
				return fmt.Errorf("unsupported GLSL version %q", trimmed)
			}

		case strings.HasPrefix(trimmed, "#define"):
			target := group
			if target == "" {
				target = "preprocessor"
			}
			s.addBlock(target, Block{Type: BlockPreprocessorDefine, Data: line})

		case strings.HasPrefix(trimmed, "#ifdef"),
			strings.HasPrefix(trimmed, "#ifndef"),
			strings.HasPrefix(trimmed, "#else"),
			strings.HasPrefix(trimmed, "#elif"),
			strings.HasPrefix(trimmed, "#endif"),
			strings.HasPrefix(trimmed, "#if "):
			if group == "" {
				logger.Warn("Empty shader block group for preprocessor conditional.")
				logger.Warn("Your shader will likely not work as expected.")
				logger.Warn("Use '// @group-name' to set the expected shader block group.")
			}
			s.addBlock(group, Block{Type: BlockPreprocessorToken, Data: line})

		case strings.HasPrefix(trimmed, "precision"):
			if strings.Contains(trimmed, "lowp") {
				s.SetPrecision(PrecisionLow)
			} else if strings.Contains(trimmed, "mediump") {
				s.SetPrecision(PrecisionMedium)
			} else if strings.Contains(trimmed, "highp") {
				s.SetPrecision(PrecisionHigh)
			} else {
				logger.Warn("Unsupported GLSL precision: " + trimmed)
			}

		case strings.HasPrefix(trimmed, "attribute"),
			strings.HasPrefix(trimmed, "uniform"),
			strings.HasPrefix(trimmed, "varying"),
			strings.HasPrefix(trimmed, "in "), // space on purpose to distinguish from int
			strings.HasPrefix(trimmed, "out"):
			parts := strings.Fields(trimmed)
			kind, kindOK := declKindFromString(getToken(parts, 0), s.stage)
			typ, typOK := dataTypeFromString(getToken(parts, 1))
			name, nameOK := tokenName(getToken(parts, 2))
			if !kindOK || !typOK || !nameOK {
				return fmt.Errorf("failed to parse GLSL declaration %q", trimmed)
			}

			block := Block{
				Type: BlockDeclaration,
				Data: line,
				Decl: &Declaration{Kind: kind, Type: typ, Name: name},
			}
			switch {
			case strings.HasPrefix(trimmed, "attribute"):
				s.addBlock("attributes", block)
			case strings.HasPrefix(trimmed, "uniform"):
				s.addBlock("uniforms", block)
			case strings.HasPrefix(trimmed, "varying"):
				s.addBlock("varyings", block)
			case strings.HasPrefix(trimmed, "in "):
				switch s.stage {
				case Vertex:
					s.addBlock("attributes", block)
				case Fragment:
					s.addBlock("varyings", block)
				default:
					return fmt.Errorf("failed to parse GLSL declaration %q", trimmed)
				}
			case strings.HasPrefix(trimmed, "out"):
				switch s.stage {
				case Vertex:
					s.addBlock("varyings", block)
				case Fragment:
					s.addBlock("out", block)
				default:
					return fmt.Errorf("failed to parse GLSL declaration %q", trimmed)
				}
			}

		case strings.HasPrefix(trimmed, "const"):
			// would need to handle every spacing of
			// const int foo = 123;
			return fmt.Errorf("unimplemented GLSL constant parsing %q", trimmed)

		case strings.HasPrefix(trimmed, "layout"):
			if strings.Contains(trimmed, "uniform") && strings.Contains(trimmed, "{") {
				data := line + "\n"
				for index++; index < len(lines); index++ {
					line := lines[index]
					trimmed := strings.TrimSpace(line)
					data += line + "\n"
					if strings.HasPrefix(trimmed, "}") && strings.HasSuffix(trimmed, ";") {
						break
					}
				}
				s.addBlock("uniforms", Block{Type: BlockDeclaration, Data: data})
			} else if strings.Contains(trimmed, " out ") {
				s.addBlock("out", Block{Type: BlockDeclaration, Data: line})
			} else {
				return fmt.Errorf("failed to parse GLSL layout declaration %q", trimmed)
			}

		case strings.HasPrefix(trimmed, "struct"):
			data := line + "\n"
			for index++; index < len(lines); index++ {
				line := lines[index]
				trimmed := strings.TrimSpace(line)
				data += line + "\n"
				if strings.HasPrefix(trimmed, "}") && strings.HasSuffix(trimmed, ";") {
					break
				}
			}
			s.addBlock("types", Block{Type: BlockStructDeclaration, Data: data})

		case strings.HasPrefix(trimmed, "//"):
			s.addBlock(group, Block{Type: BlockComment, Data: line})

		case strings.HasPrefix(trimmed, "/*"):
			return fmt.Errorf("unimplemented GLSL block comment parsing %q", trimmed)

		default:
			// start of code
			break loop
		}
	}

	for ; index < len(lines); index++ {
		line := lines[index]
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "//"):
			s.addBlock("code", Block{Type: BlockComment, Data: line})
		case strings.HasPrefix(trimmed, "/*"):
			return fmt.Errorf("unimplemented GLSL block comment parsing %q", trimmed)
		default:
			s.addBlock("code", Block{Type: BlockCode, Data: line})
		}
	}
	return nil
}

// FromRawSource parses raw GLSL text into a new source for the given
// stage.
func FromRawSource(source string, stage Stage) (*ShaderSource, error) {
	out := New(stage)
	if err := out.LoadRawSource(source); err != nil {
		return nil, err
	}
	return out, nil
}
