package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		// Mailer not configured (local/dev); skip silently.
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: EduPlatform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.content h2 { color: #1A2B4C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4CAF50; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4CAF50; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EDUPLATFORM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 EduPlatform. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to EduPlatform"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>EduPlatform</strong>! Your account has been created.</p>
		<p>You can now browse the course catalog and enroll in your first course.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Enrollment confirmation
func SendEnrollmentEmail(email, name, courseName string) {
	subject := "Enrollment Confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Watch all lessons and pass the final test to earn your certificate.
		</div>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful", body))
}

// 3. Certificate issued
func SendCertificateEmail(email, name, courseName, certificateNumber string) {
	subject := "Certificate Issued: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on passing the final test for <strong>%s</strong>!</p>
		<div class="info-box">
			Your certificate number: <strong>%s</strong>
		</div>
		<p>You can download the certificate from your dashboard.</p>
	`, name, courseName, certificateNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate of Completion", body))
}

// 4. Payment receipt
func SendPaymentReceiptEmail(email, name, courseName string, amount, remaining float64) {
	subject := "Payment Received: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received your payment of <strong>%.2f</strong> for <strong>%s</strong>.</p>
		<p>Outstanding balance: <strong>%.2f</strong></p>
	`, name, amount, courseName, remaining)

	go SendEmail([]string{email}, subject, getEmailTemplate("Payment Confirmed", body))
}

// 5. Payment reminder (scheduler)
func SendPaymentReminderEmail(email, name, courseName string, remaining float64) {
	subject := "Payment Reminder: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that your payment for <strong>%s</strong> is not complete.</p>
		<div class="info-box">
			Outstanding balance: <strong>%.2f</strong>
		</div>
		<p>Please settle the remaining amount to keep full access to the course.</p>
	`, name, courseName, remaining)

	go SendEmail([]string{email}, subject, getEmailTemplate("Payment Reminder", body))
}

// 6. New chat message
func SendNewMessageEmail(email, name, senderName string) {
	subject := "New message from " + senderName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p><strong>%s</strong> sent you a new message.</p>
		<p>Log in to your dashboard to read and reply.</p>
	`, name, senderName)

	go SendEmail([]string{email}, subject, getEmailTemplate("New Message", body))
}
