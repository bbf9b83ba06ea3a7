package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"pasar-warga/internal/config"
)

type EmailService interface {
	SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
}

type emailService struct {
	client *resend.Client
	cfg    *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

func (s *emailService) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.cfg.Domain, verificationToken)

	html := fmt.Sprintf(`
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="color: #111827;">Halo, %s!</h2>
	<p>
		Terima kasih telah bergabung dengan <strong>Pasar Warga</strong>.
		Klik tombol di bawah untuk memverifikasi alamat email Anda.
	</p>
	<p style="text-align: center; margin: 30px 0;">
		<a href="%s" style="background-color: #10b981; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">
			Verifikasi Email
		</a>
	</p>
	<p style="font-size: 13px; color: #6b7280;">
		Tautan ini berlaku selama 24 jam. Jika Anda tidak merasa mendaftar, abaikan email ini.
	</p>
</body>`, fullName, verifyURL)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Pasar Warga <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Subject: "Verifikasi Email Pasar Warga",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}

func (s *emailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.cfg.Domain, resetToken)

	html := fmt.Sprintf(`
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="color: #111827;">Halo, %s!</h2>
	<p>
		Kami menerima permintaan untuk mengatur ulang kata sandi akun Anda.
		Klik tombol di bawah untuk melanjutkan.
	</p>
	<p style="text-align: center; margin: 30px 0;">
		<a href="%s" style="background-color: #10b981; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">
			Atur Ulang Kata Sandi
		</a>
	</p>
	<p style="font-size: 13px; color: #6b7280;">
		Tautan ini berlaku selama 1 jam. Jika Anda tidak meminta pengaturan ulang, abaikan email ini.
	</p>
</body>`, fullName, resetURL)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Pasar Warga <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Subject: "Atur Ulang Kata Sandi Pasar Warga",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}
