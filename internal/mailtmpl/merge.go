// Package mailtmpl resolves outcome email templates and renders merge fields.
package mailtmpl

import (
	"html"
	"strings"
)

// Merge field tokens recognized in template subjects and bodies.
// Case-sensitive, no escaping mechanism; any other {token} is left untouched.
const (
	tokenApplicantName = "{applicantName}"
	tokenJobTitle      = "{jobTitle}"
)

// ResolvedTemplate is a subject line plus HTML body, with or without
// remaining merge tokens.
type ResolvedTemplate struct {
	Subject  string
	HTMLBody string
}

// MergeData supplies values for the recognized merge fields.
type MergeData struct {
	ApplicantName string
	JobTitle      string
}

// Render substitutes every occurrence of the recognized tokens in the
// subject and body independently. Values inserted into the HTML body are
// escaped so applicant-controlled data cannot inject markup; the subject
// is plain text and substituted verbatim. Rendering is idempotent: the
// output contains no tokens, so rendering it again is a no-op.
func Render(tmpl ResolvedTemplate, data MergeData) ResolvedTemplate {
	return ResolvedTemplate{
		Subject:  substitute(tmpl.Subject, data.ApplicantName, data.JobTitle),
		HTMLBody: substitute(tmpl.HTMLBody, html.EscapeString(data.ApplicantName), html.EscapeString(data.JobTitle)),
	}
}

func substitute(s, applicantName, jobTitle string) string {
	s = strings.ReplaceAll(s, tokenApplicantName, applicantName)
	s = strings.ReplaceAll(s, tokenJobTitle, jobTitle)
	return s
}
