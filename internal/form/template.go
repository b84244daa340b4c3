package form

// Template labels the layout a form was started from. It is presentation
// metadata only; the backend stores and echoes it.
type Template string

const (
	TemplateBlank        Template = "blank"
	TemplateCV           Template = "cv"
	TemplateQuiz         Template = "quiz"
	TemplateRegistration Template = "registration"
)

func (t Template) Valid() bool {
	switch t {
	case TemplateBlank, TemplateCV, TemplateQuiz, TemplateRegistration:
		return true
	}
	return false
}
