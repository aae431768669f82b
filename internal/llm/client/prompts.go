package client

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

var editPromptTemplate = template.Must(template.ParseFS(embeddedPrompts, "prompts/landscape_edit.txt"))

// EditPrompt renders the directive photo-edit prompt for instruction.
func EditPrompt(instruction string) (string, error) {
	var buf bytes.Buffer
	if err := editPromptTemplate.Execute(&buf, struct{ Instruction string }{Instruction: instruction}); err != nil {
		return "", fmt.Errorf("render edit prompt: %w", err)
	}
	return buf.String(), nil
}

func loadPrompt(name string) string {
	data, err := embeddedPrompts.ReadFile("prompts/" + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
