package email

import (
	"fmt"
	"html/template"
	"strings"
)

const templateVerification = `
<h2>Добро пожаловать!</h2>
<p>Для подтверждения email используйте токен:</p>
<p><b>{{.Token}}</b></p>
<p>Если вы не регистрировались, просто проигнорируйте это письмо.</p>
`

const templatePasswordReset = `
<h2>Сброс пароля</h2>
<p>Вы запросили сброс пароля. Токен действует один час:</p>
<p><b>{{.Token}}</b></p>
<p>Если это были не вы, проигнорируйте письмо.</p>
`

// renderTemplate рендерит встроенный шаблон с данными
func renderTemplate(templateStr string, data TemplateData) (string, error) {
	tpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
