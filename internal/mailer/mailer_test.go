package mailer

import (
	"bytes"
	"strings"
	"testing"
	"text/template"
)

func TestDecisionTemplatesRender(t *testing.T) {
	data := map[string]any{
		"ParkName":  "Riverside Commons",
		"ParkID":    int64(42),
		"Upvotes":   12,
		"Downvotes": 3,
	}

	for _, file := range []string{SubmissionApprovedTemplate, SubmissionRejectedTemplate} {
		tmpl, err := template.ParseFS(FS, "templates/"+file)
		if err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}

		subject := new(bytes.Buffer)
		if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
			t.Fatalf("render subject of %s: %v", file, err)
		}
		if !strings.Contains(subject.String(), "Riverside Commons") {
			t.Errorf("%s subject missing park name: %q", file, subject.String())
		}

		body := new(bytes.Buffer)
		if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
			t.Fatalf("render body of %s: %v", file, err)
		}
		if !strings.Contains(body.String(), "12 up / 3 down") {
			t.Errorf("%s body missing tally: %q", file, body.String())
		}
	}
}
