package app

import (
	"gorm.io/gorm"

	"github.com/xsiva15/Auth/domain"
	"github.com/xsiva15/Auth/internal/config"
	"github.com/xsiva15/Auth/internal/infrastructure/auth"
	"github.com/xsiva15/Auth/internal/infrastructure/database"
	"github.com/xsiva15/Auth/internal/infrastructure/notifications"
	"github.com/xsiva15/Auth/internal/infrastructure/repositories"
	"github.com/xsiva15/Auth/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB *gorm.DB

	UserRepo domain.UserRepository

	PasswordSvc   domain.PasswordService
	TokenSvc      domain.TokenService
	ConfirmTokens domain.LinkTokenService
	ResetTokens   domain.LinkTokenService
	EmailSender   domain.EmailSender
	Mailer        domain.Mailer

	LoginSvc        domain.LoginService
	RegistrationSvc domain.RegistrationService
	RecoverySvc     domain.RecoveryService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}

	container.UserRepo = repositories.NewUserRepository(container.DB)
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptRounds)
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.AccessTTL, c.Config.RefreshTTL)
	c.ConfirmTokens = auth.NewLinkTokenCodec(c.Config.ConfirmBaseURL, c.Config.ConfirmSecret, c.Config.ConfirmLifespan)
	c.ResetTokens = auth.NewLinkTokenCodec(c.Config.ResetBaseURL, c.Config.ResetSecret, c.Config.ResetLifespan)

	c.EmailSender = notifications.NewSMTPService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPFrom,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
	)
	c.Mailer = services.NewMailDispatcher(
		c.EmailSender,
		c.ConfirmTokens,
		c.ResetTokens,
		c.Config.MailRetryAttempts,
		c.Config.MailRetryDelay,
	)

	c.LoginSvc = services.NewLoginService(c.UserRepo, c.PasswordSvc, c.TokenSvc)
	c.RegistrationSvc = services.NewRegistrationService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.ConfirmTokens,
		c.Mailer,
		c.Config.ConfirmedRedirectURL,
		c.Config.ExpiredRedirectURL,
	)
	c.RecoverySvc = services.NewRecoveryService(c.UserRepo, c.PasswordSvc, c.ResetTokens, c.Mailer)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
