package render

import (
	"regexp"
	"strings"

	"github.com/vanng822/go-premailer/premailer"
)

var (
	reEmptyParagraph = regexp.MustCompile(`(?i)<p([^>]*)>\s*</p>`)
	reInvoiceTable   = regexp.MustCompile(`(?i)<table[^>]*class=[^>]*tiptap-table[^>]*>`)
	reTableClose     = regexp.MustCompile(`(?i)</table>`)
)

// FixEmptyParagraphs keeps empty paragraphs visible. Email clients collapse
// <p></p> to zero height, which loses the author's intentional spacing.
func FixEmptyParagraphs(html string) string {
	return reEmptyParagraph.ReplaceAllStringFunc(html, func(m string) string {
		attrs := reEmptyParagraph.FindStringSubmatch(m)[1]
		if strings.TrimSpace(attrs) == "" {
			return "<p>&nbsp;</p>"
		}
		return "<p" + attrs + ">&nbsp;</p>"
	})
}

// PreserveLineBreaks converts literal newlines surviving the render into
// <br> tags so plain-text runs inside the template keep their shape.
func PreserveLineBreaks(html string) string {
	out := strings.ReplaceAll(html, "\n\n", "<br><br>")
	return strings.ReplaceAll(out, "\n", "<br>")
}

// EnhanceInvoiceTables wraps editor-authored invoice tables in a scrollable
// container so wide tables do not blow out the email width on mobile.
func EnhanceInvoiceTables(html string) string {
	if !reInvoiceTable.MatchString(html) {
		return html
	}
	out := reInvoiceTable.ReplaceAllStringFunc(html, func(tag string) string {
		return `<div style="margin: 0 auto; overflow-x: auto;">` + tag
	})
	return reTableClose.ReplaceAllString(out, "</table></div>")
}

const documentStyles = `<style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 0; -webkit-text-size-adjust: 100%; -ms-text-size-adjust: 100%; line-height: 1.6; }
        table { border-collapse: collapse; mso-table-lspace: 0pt; mso-table-rspace: 0pt; width: 100%; margin: 0 auto; }
        th, td { border: 1px solid #e5e7eb; text-align: left; font-size: 14px; padding: 8px; }
        th { background-color: #f9fafb; font-weight: 600; }
        tr:nth-child(even) { background-color: #f9fafb; }
        img { max-width: 100%; height: auto; display: block; border: 0; outline: none; text-decoration: none; }
        p { margin-top: 0; margin-bottom: 0.75em; min-height: 1em; }
        .preserve-line-breaks { white-space: pre-wrap; }
        blockquote { border-left: 3px solid #e1e4e9; padding-left: 1rem; margin: 1rem 0; font-style: italic; color: #6b7280; }
        .table-no-borders th, .table-no-borders td { border: none; }
        a { color: blue; text-decoration: underline; }
    </style>`

// WrapWithStyles embeds the rendered body in the full email document: a
// centered 700px card on a grey background, with the fixed contact footer.
func WrapWithStyles(htmlBody string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
`)
	b.WriteString(documentStyles)
	b.WriteString(`
</head>
<body style="margin: 0; padding: 0; background-color: #f4f4f4;">
<table role="presentation" style="width: 100%; border-collapse: collapse; border: 0; border-spacing: 0; background-color: #f4f4f4;">
    <tr>
        <td align="center" style="padding: 0;">
            <table role="presentation" style="width: 700px; max-width: 700px; border-collapse: collapse; border: 0; border-spacing: 0; background-color: #ffffff;">
                <tr>
                    <td style="padding: 20px;">
`)
	b.WriteString(htmlBody)
	b.WriteString(`
                    </td>
                </tr>
            </table>
        </td>
    </tr>
</table>
<table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse:separate;width:100%" width="100%">
    <tbody>
    <tr>
        <td style="font-family:sans-serif;vertical-align:top;padding-bottom:10px;padding-top:10px;color:#999999;font-size:12px;text-align:center" valign="top" align="center">
        <span style="color:#999999;font-size:12px;text-align:center">Si tiene dudas o inquietudes,  por favor comuníquese directamente con el comercio a través del contacto compartido</span>
        </td>
    </tr>
    </tbody>
</table>
</body>
</html>`)
	return b.String()
}

// InlineCSS moves the <style> rules onto each element's style attribute.
// Most email clients ignore or strip <head> styles.
func InlineCSS(html string) (string, error) {
	opts := premailer.NewOptions()
	opts.RemoveClasses = false
	opts.KeepBangImportant = true
	p, err := premailer.NewPremailerFromString(html, opts)
	if err != nil {
		return "", err
	}
	return p.Transform()
}
