package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	return &Client{sender: s, from: DefaultFrom, logger: &logger}
}

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			body, err := Render(name, data)
			require.NoError(t, err)
			for _, v := range data {
				assert.Contains(t, body, v)
			}
		})
	}
}

func TestRender_EscapesHTML(t *testing.T) {
	body, err := Render(TemplateAthleteRegistered, map[string]string{"AthleteName": "<b>Joe</b>"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<b>Joe</b>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestClient_SendAthleteRegisteredEmail(t *testing.T) {
	fake := &fakeSender{}
	c := newTestClient(fake)

	err := c.SendAthleteRegisteredEmail("coach@example.com", AthleteRegistered{
		Name:           "Joe",
		CPF:            "12345678900",
		Category:       "Scale",
		TrainingCenter: "CT King",
	})
	require.NoError(t, err)

	require.NotNil(t, fake.got)
	assert.Equal(t, []string{"coach@example.com"}, fake.got.To)
	assert.Equal(t, "New athlete registered: Joe", fake.got.Subject)
	assert.Contains(t, fake.got.Html, "CT King")
}

func TestClient_SendFailure(t *testing.T) {
	c := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := c.SendAthleteRegisteredEmail("coach@example.com", AthleteRegistered{Name: "Joe"})
	assert.ErrorContains(t, err, "rate limited")
}
