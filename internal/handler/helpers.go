package handler

import (
	"errors"
	"html/template"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/middleware"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so validator tags like
	// min=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindForm binds an HTML form and runs validator tags. On failure it returns
// the first human-usable message and false; the caller decides how to render.
func bindForm(c *gin.Context, req interface{}) (string, bool) {
	if err := c.ShouldBind(req); err != nil {
		return "Formulario invalido.", false
	}
	if err := validate.Struct(req); err != nil {
		if fes, ok := err.(validator.ValidationErrors); ok && len(fes) > 0 {
			return "Campo invalido: " + fes[0].Field(), false
		}
		return "Formulario invalido.", false
	}
	return "", true
}

// ── Template data ─────────────────────────────────────────────────────────────

// Vista is the common data envelope every page template receives.
type Vista struct {
	Usuario *model.Usuario
	Alerta  string // blocking-alert equivalent: rendered at the top of the page
	Datos   gin.H
}

func vista(c *gin.Context, alerta string, datos gin.H) Vista {
	var usuario *model.Usuario
	if s := middleware.Sesion(c); s != nil {
		usuario = &s.Usuario
	}
	if datos == nil {
		datos = gin.H{}
	}
	return Vista{Usuario: usuario, Alerta: alerta, Datos: datos}
}

// rutaPanel is the home page for a role.
func rutaPanel(rol string) string {
	if rol == model.RolMesero {
		return "/mesero"
	}
	return "/admin"
}

// salirALogin drops the session cookie and redirects. Used when an API call
// reports the session is gone mid-page.
func salirALogin(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// esSesionPerdida reports whether err means "session cleared, leave the page".
// Both variants (never had a session, or the API revoked it with 401/403)
// force navigation back to login; the call's data is never applied to a view.
func esSesionPerdida(err error) bool {
	return errors.Is(err, apierror.ErrSinSesion) || errors.Is(err, apierror.ErrNoAutorizado)
}

// ── Template functions ────────────────────────────────────────────────────────

var printerES = message.NewPrinter(language.Spanish)

// TemplateFuncs is installed on the gin engine before LoadHTMLGlob.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"moneda": func(d decimal.Decimal) string {
			f, _ := d.Float64()
			return printerES.Sprintf("$%v", number.Decimal(f,
				number.MinFractionDigits(2), number.MaxFractionDigits(2)))
		},
		"fecha": func(t time.Time) string { return t.Format("02/01/2006") },
		"hora":  func(t time.Time) string { return t.Format("15:04") },
	}
}
