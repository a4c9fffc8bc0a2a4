package httpx

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xsiva15/Auth/internal/http/handlers"
)

// phonePattern accepts digits with an optional leading plus; normalization
// to digits-only happens in the handlers before the core is reached.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// RegisterValidators installs custom binding validators into gin's
// validator engine. Safe to call more than once.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", validPhone)
	}
}

func BuildRouter(ah *handlers.AuthHandlers) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	v1 := r.Group("/v1")

	login := v1.Group("/login")
	login.POST("/", ah.Login)
	login.POST("/refresh", ah.Refresh)

	registration := v1.Group("/registration")
	registration.POST("/", ah.Register)
	registration.GET("/confirm-email", ah.ConfirmEmail)

	recovery := v1.Group("/recover")
	recovery.POST("/send_email_for_new_password", ah.RequestReset)
	recovery.PUT("/new_password", ah.ResetPassword)

	return r
}
