package export

import (
	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

// ContactForm returns the starter document: a three-field contact form with
// English and Spanish text.
func ContactForm() Document {
	return Document{
		FormFields: []model.FormField{
			{ID: "1", Type: model.FieldTypeText, Label: "Name", Placeholder: "Enter your name", Required: true},
			{ID: "2", Type: model.FieldTypeEmail, Label: "Email", Placeholder: "Enter your email", Required: true},
			{ID: "3", Type: model.FieldTypeTextarea, Label: "Message", Placeholder: "Enter your message", Required: false},
		},
		Translations: map[string]translation.Translation{
			"en": {
				FormTitle:    "Contact Form",
				SubmitButton: "Submit",
				Fields: map[string]translation.FieldText{
					"1": {Label: "Name", Placeholder: "Enter your name"},
					"2": {Label: "Email", Placeholder: "Enter your email"},
					"3": {Label: "Message", Placeholder: "Enter your message"},
				},
			},
			"es": {
				FormTitle:    "Formulario de Contacto",
				SubmitButton: "Enviar",
				Fields: map[string]translation.FieldText{
					"1": {Label: "Nombre", Placeholder: "Ingrese su nombre"},
					"2": {Label: "Correo electrónico", Placeholder: "Ingrese su correo electrónico"},
					"3": {Label: "Mensaje", Placeholder: "Ingrese su mensaje"},
				},
			},
		},
	}
}
