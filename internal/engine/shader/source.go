package shader

import "strings"

// GetSource serializes the source into a single string. Groups are
// emitted in the fixed order regardless of insertion order, with a
// blank line between groups. Comment blocks are kept only in the
// Development variant.
func (s *ShaderSource) GetSource(variant Variant) string {
	var sb strings.Builder

	switch s.version {
	case GLSL100:
		sb.WriteString("#version 100")
	case GLSL300:
		sb.WriteString("#version 300 es")
	case VersionUnset:
	default:
		panic("missing GLSL version handling")
	}
	sb.WriteString("\n\n")

	if s.stage == Fragment {
		switch s.precision {
		case PrecisionLow:
			sb.WriteString("precision lowp float;")
		case PrecisionMedium:
			sb.WriteString("precision mediump float;")
		case PrecisionHigh:
			sb.WriteString("precision highp float;")
		case PrecisionUnset:
		default:
			panic("missing fragment precision handling")
		}
		sb.WriteString("\n\n")
	}

	// kept out of the very first lines, some drivers choke on
	// leading comments before #version
	for _, debug := range s.debug {
		sb.WriteString("// ")
		sb.WriteString(debug.Key)
		sb.WriteString(" = ")
		sb.WriteString(debug.Val)
		sb.WriteString("\n")
	}

	for _, group := range groupOrder {
		blocks, ok := s.groups[group]
		if !ok {
			continue
		}
		for _, block := range blocks {
			if block.Type == BlockComment {
				if variant == Development {
					sb.WriteString(block.Data)
					sb.WriteString("\n")
				}
				continue
			}
			// give conditional sections a little air, shader text
			// diffing downstream expects this
			if block.Type == BlockPreprocessorToken &&
				strings.HasPrefix(strings.TrimSpace(block.Data), "#ifdef") {
				sb.WriteString("\n")
			}
			sb.WriteString(block.Data)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
