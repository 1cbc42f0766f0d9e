package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/api/http/handlers"
	"github.com/EstebanIM/wololo/internal/invite"
	"github.com/EstebanIM/wololo/internal/mailer"
)

type stubSender struct {
	err  error
	last *mailer.Message
}

func (s *stubSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.last = &msg
	return "msg-1", nil
}

func newMailApp(sender mailer.Sender) *fiber.App {
	tokens := invite.NewTokenIssuer("invite-secret", time.Hour)
	dispatcher := invite.NewDispatcher(sender, tokens, "http://localhost:3001", zap.NewNop())

	app := fiber.New()
	app.Post("/send-email", handlers.NewMailHandler(dispatcher).SendEmail)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestSendEmailSuccess(t *testing.T) {
	sender := &stubSender{}
	app := newMailApp(sender)

	status, body := postJSON(t, app, "/send-email",
		`{"correoAdmin":"admin@brand.com","nombreMarca":"Brand Co","adminId":"admin-123"}`)

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Email sent successfully", body["message"])
	require.Equal(t, "msg-1", body["id"])

	require.NotNil(t, sender.last)
	require.Equal(t, "admin@brand.com", sender.last.To)
	require.Contains(t, sender.last.HTML, "/complete-admin-info/admin-123?token=")
}

func TestSendEmailMissingData(t *testing.T) {
	app := newMailApp(&stubSender{})

	status, body := postJSON(t, app, "/send-email", `{"correoAdmin":"admin@brand.com"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Missing data in request", body["message"])
}

func TestSendEmailTransportFailure(t *testing.T) {
	app := newMailApp(&stubSender{err: errors.New("smtp unreachable")})

	status, body := postJSON(t, app, "/send-email",
		`{"correoAdmin":"admin@brand.com","nombreMarca":"Brand Co","adminId":"admin-123"}`)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "Error sending email", body["message"])
	require.NotEmpty(t, body["error"])
}
