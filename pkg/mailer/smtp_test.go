package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"travel-booking/pkg/utils"
)

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(utils.EmailConfig{
		Host: "smtp.example.com",
		Port: 587,
		User: "mailer",
		From: "no-reply@example.com",
	}, zaptest.NewLogger(t))

	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.NotNil(t, a)
		return nil
	}

	err := m.Send(context.Background(), "guest@example.com", "Payment Confirmation", "paid")

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"guest@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Payment Confirmation\r\n")
	assert.Contains(t, gotMsg, "\r\n\r\npaid")
}

func TestSMTPMailer_Send_Error(t *testing.T) {
	m := NewSMTPMailer(utils.EmailConfig{Host: "smtp.example.com", Port: 25}, zaptest.NewLogger(t))
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Send(context.Background(), "guest@example.com", "s", "b")

	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPMailer_Send_NoHost(t *testing.T) {
	m := NewSMTPMailer(utils.EmailConfig{}, zaptest.NewLogger(t))
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called without a host")
		return nil
	}

	assert.NoError(t, m.Send(context.Background(), "guest@example.com", "s", "b"))
}
