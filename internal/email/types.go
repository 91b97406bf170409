package email

// Email - одно исходящее письмо.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - данные для шаблонов писем.
type TemplateData map[string]interface{}
