package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

// System is the fixed system prompt. It instructs the model to emit the stop
// marker after the body and to leave out any sign-off or contact block.
//
//go:embed prompts/system.md
var System string

//go:embed prompts/user.md
var userPromptRaw string

// Parsed once at package init; reused on every drafting run.
var userTemplate = template.Must(template.New("user").Parse(userPromptRaw))

// RenderUser builds the user message from the job description and resume.
func RenderUser(jobDescription, resume string) (string, error) {
	var buf bytes.Buffer
	err := userTemplate.Execute(&buf, struct {
		JobDescription string
		Resume         string
	}{
		JobDescription: jobDescription,
		Resume:         resume,
	})
	if err != nil {
		return "", fmt.Errorf("render user prompt: %w", err)
	}
	return buf.String(), nil
}
