package core

import "go.uber.org/zap"

// LogMailer writes reset codes to the log instead of sending mail.
// Stands in for SMTP delivery, which is outside this service.
type LogMailer struct {
	Logger *zap.Logger
}

func (m *LogMailer) SendPasswordReset(email, code string) error {
	m.Logger.Info("password reset requested",
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}
