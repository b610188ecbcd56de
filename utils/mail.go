package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

type MailConfig struct {
	From         string
	FromPassword string
	SMTPHost     string
	SMTPAddress  string
}

func (c MailConfig) Configured() bool {
	return c.From != "" && c.SMTPAddress != ""
}

type OrderLineData struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

type OrderConfirmationData struct {
	Name            string
	OrderID         uint
	Items           []OrderLineData
	Subtotal        string
	Discount        string
	Total           string
	ShippingAddress string
	OrdersURL       string
}

func RenderTemplate(templatePath string, data any) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func SendEmail(cfg MailConfig, emailTo string, emailSubject string, data any, templatePath string) error {
	body, err := RenderTemplate(templatePath, data)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		cfg.From,
		emailTo,
		emailSubject,
		body,
	)

	var auth smtp.Auth
	if cfg.FromPassword != "" {
		auth = smtp.PlainAuth("", cfg.From, cfg.FromPassword, cfg.SMTPHost)
	}

	if err := smtp.SendMail(cfg.SMTPAddress, auth, cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
