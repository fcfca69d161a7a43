// Package render implements the email rendering pipeline: template
// pre-processing, handlebars substitution and the HTML post-processing
// required by TipTap-authored templates. Everything here is pure and
// deterministic; callers decide what to do with failures.
package render

import (
	"regexp"
	"strings"

	"github.com/mailgun/raymond/v2"
)

var (
	// TipTap wraps block helpers in single-cell table rows; unwrap them so
	// the template engine sees the bare helper.
	reHelperRow = regexp.MustCompile(`(?is)<tr>\s*<td[^>]*>(?:\s*<[^>]+>)*\s*(\{\{[/#!][^}]+\}\})\s*(?:</[^>]+>)*\s*</td>\s*</tr>`)

	// Matches a triple-brace expression or a double-brace expression.
	reExpression = regexp.MustCompile(`\{\{\{[^{}]*\}\}\}|\{\{[^{}]*\}\}`)
)

// Preprocess normalises an authored template before rendering. It unwraps
// helpers from TipTap row markup, removes line breaks glued to helpers, and
// promotes value expressions to triple braces so HTML in the data is not
// escaped. Preprocess is idempotent.
func Preprocess(tpl string) string {
	out := reHelperRow.ReplaceAllString(tpl, "$1")

	out = strings.ReplaceAll(out, "\n{{#", "{{#")
	out = strings.ReplaceAll(out, "\n{{/", "{{/")

	return reExpression.ReplaceAllStringFunc(out, func(m string) string {
		if strings.HasPrefix(m, "{{{") {
			return m
		}
		inner := m[2 : len(m)-2]
		trimmed := strings.TrimSpace(inner)
		if trimmed == "" || trimmed == "else" || strings.ContainsAny(trimmed[:1], "#/!^>&") {
			return m
		}
		return "{{{" + inner + "}}}"
	})
}

// Render substitutes data into the pre-processed template.
func Render(tpl string, data map[string]interface{}) (string, error) {
	return raymond.Render(Preprocess(tpl), data)
}

// Fallback is the two-token substitution used when a template fails to
// render: the raw content with {{nombre}} and {{monto}} replaced.
func Fallback(tpl string, fullName string, amountDue float64) string {
	out := strings.ReplaceAll(tpl, "{{nombre}}", fullName)
	return strings.ReplaceAll(out, "{{monto}}", FormatCurrency(amountDue))
}
