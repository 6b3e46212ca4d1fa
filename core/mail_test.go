package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfs "github.com/Axelresells/AxelScale-Formacion/fs"
)

type loginLinkData struct {
	Name         string
	Email        string
	URL          string
	ValidMinutes int
}

func TestEmailMessage_Render(t *testing.T) {
	require.NoError(t, parseTemplates(appfs.FS, true))

	msg := EmailMessage{
		Subject:      "Tu enlace de acceso",
		TemplateName: "login_link",
		TemplateData: loginLinkData{
			Email:        "axel@test.es",
			URL:          "http://localhost:8000/login/verify?uid=abc&token=xyz",
			ValidMinutes: 30,
		},
	}
	require.NoError(t, msg.Render("http://localhost:8000"))

	assert.True(t, msg.HasContent())
	assert.Contains(t, msg.TextContent, "Hola axel@test.es")
	assert.Contains(t, msg.TextContent, "http://localhost:8000/login/verify?uid=abc&token=xyz")
	assert.Contains(t, msg.TextContent, "30 minutos")
	assert.Contains(t, msg.HTMLContent, `href="http://localhost:8000/login/verify?uid=abc&amp;token=xyz"`)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(msg.HTMLContent), "<!DOCTYPE html>"))
}

func TestEmailMessage_RenderBodyStr(t *testing.T) {
	msg := EmailMessage{BodyStr: "plain"}
	require.NoError(t, msg.Render(""))
	assert.Equal(t, "plain", msg.TextContent)
	assert.Empty(t, msg.HTMLContent)
}
