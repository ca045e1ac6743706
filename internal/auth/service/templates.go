package service

import (
	"embed"
	"io/fs"

	"github.com/dabotcentral/central/pkg/mailx"
)

// OTPEmailTemplate is the registered name of the login code email body.
const OTPEmailTemplate = "otp_email.html"

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates returns a registry holding every embedded email template.
func LoadTemplates() (*mailx.Templates, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	t := mailx.NewTemplates()
	if err := t.RegisterFS(sub, "*.html"); err != nil {
		return nil, err
	}
	return t, nil
}
