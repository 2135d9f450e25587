package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Minimal inline HTML templates for the two transactional mails the API
// enqueues. Newsletter content arrives as admin-authored HTML and is wrapped,
// not escaped.

const resetPasswordHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset your password. The link below is valid
  until {{.ExpiresAt}}.</p>
  <p><a href="{{.ResetURL}}" style="background:#111;color:#fff;padding:10px 18px;text-decoration:none;border-radius:4px;">Reset password</a></p>
  <p>If you did not request this, you can safely ignore this email.</p>
</body>
</html>`

const newsletterHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  {{.Content}}
  <hr style="margin-top:32px;border:none;border-top:1px solid #ddd;">
  <p style="font-size:12px;color:#888;">You are receiving this because you
  subscribed to our newsletter.
  <a href="{{.UnsubscribeURL}}">Unsubscribe</a></p>
</body>
</html>`

var tmpls = map[string]*template.Template{
	"reset_password": template.Must(template.New("reset_password").Parse(resetPasswordHTML)),
	"newsletter":     template.Must(template.New("newsletter").Parse(newsletterHTML)),
}

// RenderHTML renders the named template with data.
func RenderHTML(name string, data map[string]any) (string, error) {
	t, ok := tmpls[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	// Newsletter bodies are trusted admin HTML; pass through unescaped.
	if name == "newsletter" {
		if c, ok := data["Content"].(string); ok {
			data = cloneWith(data, "Content", template.HTML(c))
		}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func cloneWith(data map[string]any, key string, val any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	out[key] = val
	return out
}
