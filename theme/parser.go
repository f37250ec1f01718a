package theme

import (
	"errors"
	"strings"
)

// ErrMissingAnchor is returned when a template has no background anchor.
var ErrMissingAnchor = errors.New("template has no background anchor")

// ParseTemplateMetadata parses metadata from the first CSS comment block
// that declares a Template: key.
func ParseTemplateMetadata(cssContent string) TemplateMetadata {
	var meta TemplateMetadata

	pos := 0
	for pos < len(cssContent) {
		startIdx := strings.Index(cssContent[pos:], "/*")
		if startIdx == -1 {
			return meta
		}
		startIdx += pos

		endIdx := strings.Index(cssContent[startIdx:], "*/")
		if endIdx == -1 {
			return meta
		}
		endIdx += startIdx

		block := cssContent[startIdx+2 : endIdx]
		if strings.Contains(block, "Template:") {
			parseMetadataBlock(block, &meta)
			return meta
		}
		pos = endIdx + 2
	}

	return meta
}

func parseMetadataBlock(block string, meta *TemplateMetadata) {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if strings.HasPrefix(line, "Template:") {
			meta.Template = strings.TrimSpace(strings.TrimPrefix(line, "Template:"))
		} else if strings.HasPrefix(line, "Display:") {
			meta.Display = strings.TrimSpace(strings.TrimPrefix(line, "Display:"))
		} else if strings.HasPrefix(line, "Description:") {
			meta.Description = strings.TrimSpace(strings.TrimPrefix(line, "Description:"))
		}
	}
}

// ParseTemplate reads a base template. The name falls back to fallbackName
// when the metadata does not declare one. The display name falls back to
// a title-cased name.
func ParseTemplate(fallbackName, cssContent string) (TemplateInfo, error) {
	if !strings.Contains(cssContent, AnchorBackground) {
		return TemplateInfo{}, ErrMissingAnchor
	}

	meta := ParseTemplateMetadata(cssContent)
	name := meta.Template
	if name == "" {
		name = fallbackName
	}
	display := meta.Display
	if display == "" {
		display = displayName(name)
	}

	return TemplateInfo{
		Name:        name,
		Display:     display,
		Description: meta.Description,
		CSS:         cssContent,
	}, nil
}

func displayName(name string) string {
	parts := strings.Split(name, "-")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
